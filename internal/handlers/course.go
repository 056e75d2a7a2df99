package handlers

import (
	"strconv"

	"github.com/collabconnect/backend/internal/middleware"
	"github.com/collabconnect/backend/internal/services"
	"github.com/collabconnect/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CourseHandler exposes shared course recommendations and their feedback.
type CourseHandler struct {
	courseService *services.CourseService
}

func NewCourseHandler(db *gorm.DB) *CourseHandler {
	return &CourseHandler{courseService: services.NewCourseService(db)}
}

// List returns all courses, newest first.
// GET /api/courses
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courseService.List()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, courses)
}

// GetByID returns one course.
// GET /api/courses/:id
func (h *CourseHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid course id")
		return
	}

	course, err := h.courseService.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, course)
}

// Create shares a new course under the caller's name.
// POST /api/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req services.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	course, err := h.courseService.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, course)
}

// PostFeedback records the caller's course feedback and returns the
// course with its recomputed rating.
// POST /api/courses/:id/feedback
func (h *CourseHandler) PostFeedback(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid course id")
		return
	}

	var req services.PostFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	course, err := h.courseService.PostFeedback(uint(id), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, course)
}

// ListFeedback returns all feedback entries of a course.
// GET /api/courses/:id/feedback
func (h *CourseHandler) ListFeedback(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid course id")
		return
	}

	feedback, err := h.courseService.ListFeedback(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, feedback)
}
