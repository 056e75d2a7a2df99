package handlers

import (
	"strconv"

	"github.com/collabconnect/backend/internal/middleware"
	"github.com/collabconnect/backend/internal/services"
	"github.com/collabconnect/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CommentHandler handles project reviews (one per user per project).
type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{commentService: services.NewCommentService(db)}
}

// Post adds the caller's review of a project and returns the project
// with its recomputed rating.
// POST /api/projects/:id/comments
func (h *CommentHandler) Post(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	var req services.PostCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.commentService.Post(uint(projectID), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, project)
}

// List returns all reviews of a project.
// GET /api/projects/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	comments, err := h.commentService.List(uint(projectID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, comments)
}
