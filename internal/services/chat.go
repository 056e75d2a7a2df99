package services

import (
	"errors"
	"strings"
	"time"

	"github.com/collabconnect/backend/internal/models"
	"github.com/collabconnect/backend/pkg/response"
	"gorm.io/gorm"
)

// ChatService reads and appends messages of a project chat. Posting is
// restricted to chat members; membership is granted and revoked by the
// collaboration workflow, not here.
type ChatService struct {
	db *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

type PostMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// MessageView is the read projection of a chat message.
type MessageView struct {
	ID        uint               `json:"id"`
	User      models.UserSummary `json:"user"`
	Body      string             `json:"body"`
	CreatedAt time.Time          `json:"created_at"`
}

// Messages returns a project chat's messages in chronological order.
// A project without a chat yields an empty list, not an error.
func (s *ChatService) Messages(projectID uint) ([]MessageView, error) {
	var chat models.Chat
	if err := s.db.Where("project_id = ?", projectID).First(&chat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []MessageView{}, nil
		}
		return nil, err
	}

	var messages []models.Message
	if err := s.db.Where("chat_id = ?", chat.ID).
		Preload("User").
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}

	views := make([]MessageView, 0, len(messages))
	for _, m := range messages {
		v := MessageView{ID: m.ID, Body: m.Body, CreatedAt: m.CreatedAt}
		if m.User != nil {
			v.User = m.User.Summary()
		}
		views = append(views, v)
	}
	return views, nil
}

// PostMessage appends a message to the project chat on behalf of userID.
func (s *ChatService) PostMessage(projectID, userID uint, req *PostMessageRequest) (*MessageView, error) {
	if strings.TrimSpace(req.Body) == "" {
		return nil, response.NewBadRequest("message content cannot be empty")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	var chat models.Chat
	if err := s.db.Where("project_id = ?", projectID).First(&chat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("chat not found for this project")
		}
		return nil, err
	}

	var membership int64
	s.db.Model(&models.ChatMember{}).
		Where("chat_id = ? AND user_id = ?", chat.ID, userID).
		Count(&membership)
	if membership == 0 {
		return nil, response.NewForbidden("only project collaborators can post in this chat")
	}

	message := models.Message{ChatID: chat.ID, UserID: userID, Body: req.Body}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}

	return &MessageView{
		ID:        message.ID,
		User:      user.Summary(),
		Body:      message.Body,
		CreatedAt: message.CreatedAt,
	}, nil
}
