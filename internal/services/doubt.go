package services

import (
	"errors"
	"strings"
	"time"

	"github.com/collabconnect/backend/internal/models"
	"github.com/collabconnect/backend/pkg/response"
	"gorm.io/gorm"
)

// DoubtService manages questions and their answers.
type DoubtService struct {
	db *gorm.DB
}

func NewDoubtService(db *gorm.DB) *DoubtService {
	return &DoubtService{db: db}
}

type PostDoubtRequest struct {
	Question string   `json:"question" binding:"required"`
	Tags     []string `json:"tags"`
}

type PostAnswerRequest struct {
	DoubtID uint   `json:"doubt_id" binding:"required"`
	Answer  string `json:"answer" binding:"required"`
}

// AnswerView is the read projection of an answer.
type AnswerView struct {
	ID         uint               `json:"id"`
	User       models.UserSummary `json:"user"`
	AnswerText string             `json:"answer_text"`
	Upvote     int                `json:"upvote"`
	Downvote   int                `json:"downvote"`
	CreatedAt  time.Time          `json:"created_at"`
}

// DoubtView is the read projection of a doubt with its answers embedded,
// answers sorted most-upvoted first.
type DoubtView struct {
	ID        uint               `json:"id"`
	User      models.UserSummary `json:"user"`
	Question  string             `json:"question"`
	Tags      []string           `json:"tags"`
	Answers   []AnswerView       `json:"answers"`
	CreatedAt time.Time          `json:"created_at"`
}

// PostDoubt stores a new question for the user.
func (s *DoubtService) PostDoubt(userID uint, req *PostDoubtRequest) (*models.Doubt, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, response.NewBadRequest("question text cannot be empty")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	doubt := models.Doubt{
		UserID:   userID,
		Question: req.Question,
		Tags:     strings.Join(req.Tags, ","),
	}
	if err := s.db.Create(&doubt).Error; err != nil {
		return nil, err
	}

	doubt.User = &user
	return &doubt, nil
}

// PostAnswer stores a new answer on a doubt.
func (s *DoubtService) PostAnswer(userID uint, req *PostAnswerRequest) (*models.Answer, error) {
	if strings.TrimSpace(req.Answer) == "" {
		return nil, response.NewBadRequest("answer text cannot be empty")
	}

	var doubt models.Doubt
	if err := s.db.First(&doubt, req.DoubtID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("question not found")
		}
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	answer := models.Answer{
		DoubtID:    req.DoubtID,
		UserID:     userID,
		AnswerText: req.Answer,
	}
	if err := s.db.Create(&answer).Error; err != nil {
		return nil, err
	}

	answer.User = &user
	return &answer, nil
}

// ListDoubts returns all doubts, newest first, with answers embedded.
func (s *DoubtService) ListDoubts() ([]DoubtView, error) {
	var doubts []models.Doubt
	if err := s.db.Preload("User").
		Order("created_at DESC").
		Find(&doubts).Error; err != nil {
		return nil, err
	}

	views := make([]DoubtView, 0, len(doubts))
	for i := range doubts {
		answers, err := s.ListAnswers(doubts[i].ID)
		if err != nil {
			return nil, err
		}
		views = append(views, newDoubtView(&doubts[i], answers))
	}
	return views, nil
}

// ListAnswers returns a doubt's answers sorted by upvotes, then age.
func (s *DoubtService) ListAnswers(doubtID uint) ([]AnswerView, error) {
	var count int64
	s.db.Model(&models.Doubt{}).Where("id = ?", doubtID).Count(&count)
	if count == 0 {
		return nil, response.NewNotFound("question not found")
	}

	var answers []models.Answer
	if err := s.db.Where("doubt_id = ?", doubtID).
		Preload("User").
		Order("upvote DESC, created_at ASC").
		Find(&answers).Error; err != nil {
		return nil, err
	}

	views := make([]AnswerView, 0, len(answers))
	for _, a := range answers {
		v := AnswerView{
			ID:         a.ID,
			AnswerText: a.AnswerText,
			Upvote:     a.Upvote,
			Downvote:   a.Downvote,
			CreatedAt:  a.CreatedAt,
		}
		if a.User != nil {
			v.User = a.User.Summary()
		}
		views = append(views, v)
	}
	return views, nil
}

func newDoubtView(d *models.Doubt, answers []AnswerView) DoubtView {
	v := DoubtView{
		ID:        d.ID,
		Question:  d.Question,
		Tags:      splitTags(d.Tags),
		Answers:   answers,
		CreatedAt: d.CreatedAt,
	}
	if d.User != nil {
		v.User = d.User.Summary()
	}
	return v
}
