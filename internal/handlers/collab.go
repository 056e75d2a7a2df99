package handlers

import (
	"strconv"

	"github.com/collabconnect/backend/internal/middleware"
	"github.com/collabconnect/backend/internal/services"
	"github.com/collabconnect/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CollabHandler exposes the collaborator lifecycle: request, approve,
// reject, and the caller's collaboration list.
type CollabHandler struct {
	collabService  *services.CollabService
	projectService *services.ProjectService
}

func NewCollabHandler(db *gorm.DB) *CollabHandler {
	return &CollabHandler{
		collabService:  services.NewCollabService(db),
		projectService: services.NewProjectService(db),
	}
}

type decideCollabRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// RequestToJoin files a pending collaboration request for the caller.
// POST /api/projects/:id/collaborators
func (h *CollabHandler) RequestToJoin(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	collab, err := h.collabService.RequestToJoin(uint(projectID), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, collab)
}

// Approve grants a pending (or rejected) request. Owner or admin only.
// POST /api/projects/:id/collaborators/approve
func (h *CollabHandler) Approve(c *gin.Context) {
	projectID, req, ok := h.bindDecision(c)
	if !ok {
		return
	}

	collab, err := h.collabService.Approve(projectID, req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, collab)
}

// Reject declines a request or revokes an approved collaborator.
// Owner or admin only.
// POST /api/projects/:id/collaborators/reject
func (h *CollabHandler) Reject(c *gin.Context) {
	projectID, req, ok := h.bindDecision(c)
	if !ok {
		return
	}

	collab, err := h.collabService.Reject(projectID, req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, collab)
}

// ListCollabs returns the caller's collaborated projects.
// GET /api/collabs
func (h *CollabHandler) ListCollabs(c *gin.Context) {
	projects, err := h.collabService.ListCollabs(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, projects)
}

// bindDecision parses the project id and request body for an
// approve/reject call and enforces that the caller owns the project or
// is an admin. On failure it writes the error response and returns ok=false.
func (h *CollabHandler) bindDecision(c *gin.Context) (uint, *decideCollabRequest, bool) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return 0, nil, false
	}

	var req decideCollabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return 0, nil, false
	}

	detail, derr := h.projectService.GetDetail(uint(projectID))
	if derr != nil {
		response.Error(c, derr)
		return 0, nil, false
	}
	if detail.Owner.ID != middleware.GetUserID(c) && middleware.GetRole(c) != "admin" {
		response.Forbidden(c, "only the project owner can manage collaborators")
		return 0, nil, false
	}

	return uint(projectID), &req, true
}
