package services

import (
	"errors"
	"math"
	"strings"

	"github.com/collabconnect/backend/internal/models"
	"github.com/collabconnect/backend/pkg/response"
	"gorm.io/gorm"
)

// CourseService manages shared learning resources and their feedback.
type CourseService struct {
	db *gorm.DB
}

func NewCourseService(db *gorm.DB) *CourseService {
	return &CourseService{db: db}
}

type CreateCourseRequest struct {
	CourseName string   `json:"course_name" binding:"required"`
	CourseDesc string   `json:"course_desc" binding:"required"`
	Link       string   `json:"link" binding:"required"`
	Tags       []string `json:"tags"`
}

type PostFeedbackRequest struct {
	Review string `json:"review"`
	Rating int    `json:"rating" binding:"min=0,max=5"`
}

// List returns all courses, newest first.
func (s *CourseService) List() ([]models.Course, error) {
	var courses []models.Course
	if err := s.db.Preload("AddedBy").
		Order("created_at DESC").
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// GetByID returns a single course.
func (s *CourseService) GetByID(id uint) (*models.Course, error) {
	var course models.Course
	if err := s.db.Preload("AddedBy").First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("course not found")
		}
		return nil, err
	}
	return &course, nil
}

// Create stores a new course shared by userID.
func (s *CourseService) Create(req *CreateCourseRequest, userID uint) (*models.Course, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	course := models.Course{
		CourseName: req.CourseName,
		CourseDesc: req.CourseDesc,
		Link:       req.Link,
		Tags:       strings.Join(req.Tags, ","),
		AddedByID:  userID,
	}
	if err := s.db.Create(&course).Error; err != nil {
		return nil, err
	}

	course.AddedBy = &user
	return &course, nil
}

// PostFeedback adds feedback and recomputes the course rating as the
// rounded mean of all feedback ratings.
func (s *CourseService) PostFeedback(courseID, userID uint, req *PostFeedbackRequest) (*models.Course, error) {
	var course models.Course
	if err := s.db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("course not found")
		}
		return nil, err
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		feedback := models.CourseFeedback{
			CourseID: courseID,
			UserID:   userID,
			Review:   req.Review,
			Rating:   req.Rating,
		}
		if err := tx.Create(&feedback).Error; err != nil {
			return err
		}

		var sum, count int64
		row := tx.Model(&models.CourseFeedback{}).
			Where("course_id = ?", courseID).
			Select("COALESCE(SUM(rating), 0), COUNT(*)").Row()
		if err := row.Scan(&sum, &count); err != nil {
			return err
		}

		rating := 0.0
		if count > 0 {
			rating = math.Round(float64(sum) / float64(count))
		}
		course.Rating = rating
		return tx.Model(&course).Update("rating", rating).Error
	}); err != nil {
		return nil, err
	}

	return &course, nil
}

// ListFeedback returns all feedback of a course, newest first.
func (s *CourseService) ListFeedback(courseID uint) ([]models.CourseFeedback, error) {
	var count int64
	s.db.Model(&models.Course{}).Where("id = ?", courseID).Count(&count)
	if count == 0 {
		return nil, response.NewNotFound("course not found")
	}

	var feedback []models.CourseFeedback
	if err := s.db.Where("course_id = ?", courseID).
		Preload("User").
		Order("created_at DESC").
		Find(&feedback).Error; err != nil {
		return nil, err
	}
	return feedback, nil
}
