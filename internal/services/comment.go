package services

import (
	"errors"
	"math"

	"github.com/collabconnect/backend/internal/models"
	"github.com/collabconnect/backend/pkg/response"
	"gorm.io/gorm"
)

// CommentService manages project reviews. Each user reviews a project at
// most once; the project rating is the mean of all comment ratings kept to
// one decimal place.
type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

type PostCommentRequest struct {
	Review string `json:"review" binding:"required"`
	Rating int    `json:"rating" binding:"min=0,max=5"`
}

// CommentView is the read projection of a project comment.
type CommentView struct {
	ID     uint               `json:"id"`
	User   models.UserSummary `json:"user"`
	Review string             `json:"review"`
	Rating int                `json:"rating"`
}

// Post adds a comment and recomputes the project rating.
func (s *CommentService) Post(projectID, userID uint, req *PostCommentRequest) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	var existing models.Comment
	err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&existing).Error
	if err == nil {
		return nil, response.NewConflict("you have already reviewed this project")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		comment := models.Comment{
			ProjectID: projectID,
			UserID:    userID,
			Review:    req.Review,
			Rating:    req.Rating,
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}

		var sum, count int64
		row := tx.Model(&models.Comment{}).
			Where("project_id = ?", projectID).
			Select("COALESCE(SUM(rating), 0), COUNT(*)").Row()
		if err := row.Scan(&sum, &count); err != nil {
			return err
		}

		rating := 0.0
		if count > 0 {
			rating = math.Round(float64(sum)/float64(count)*10) / 10
		}
		project.Rating = rating
		return tx.Model(&project).Update("rating", rating).Error
	}); err != nil {
		return nil, err
	}

	return &project, nil
}

// List returns a project's comments, newest first.
func (s *CommentService) List(projectID uint) ([]CommentView, error) {
	var comments []models.Comment
	if err := s.db.Where("project_id = ?", projectID).
		Preload("User").
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}

	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		v := CommentView{ID: c.ID, Review: c.Review, Rating: c.Rating}
		if c.User != nil {
			v.User = c.User.Summary()
		}
		views = append(views, v)
	}
	return views, nil
}
