package handlers

import (
	"strconv"

	"github.com/collabconnect/backend/internal/middleware"
	"github.com/collabconnect/backend/internal/services"
	"github.com/collabconnect/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProjectHandler provides project CRUD and completion endpoints.
type ProjectHandler struct {
	projectService *services.ProjectService
	collabService  *services.CollabService
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectService: services.NewProjectService(db),
		collabService:  services.NewCollabService(db),
	}
}

// Create creates a project owned by the caller.
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, project)
}

// List returns a paginated project listing with optional tag/status filters.
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	var req services.ProjectListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.projectService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, resp)
}

// GetByID returns a project detail view with owner and collaborators.
// GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	detail, err := h.projectService.GetDetail(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

// Complete marks a project completed and settles collaborator credits.
// Only the owner or an admin may complete a project.
// POST /api/projects/:id/complete
func (h *ProjectHandler) Complete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	detail, err := h.projectService.GetDetail(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}
	if detail.Owner.ID != middleware.GetUserID(c) && middleware.GetRole(c) != "admin" {
		response.Forbidden(c, "only the project owner can complete the project")
		return
	}

	summary, err := h.collabService.Complete(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, summary)
}
