package services

import (
	"errors"
	"strings"
	"time"

	"github.com/collabconnect/backend/internal/models"
	"github.com/collabconnect/backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type ProjectListRequest struct {
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	Tags     string `form:"tags"` // comma separated, matches any
	Status   string `form:"status" binding:"omitempty,oneof=ongoing completed"`
}

type ProjectListResponse struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []ProjectSummary `json:"items"`
}

type CreateProjectRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description" binding:"required"`
	Tags           []string `json:"tags"`
	GithubLink     string   `json:"github_link"`
	DeployedLink   string   `json:"deployed_link"`
	PerHeadCredits int      `json:"per_head_credits" binding:"min=0"`
}

// ProjectSummary is the list-view projection of a project.
type ProjectSummary struct {
	ID             uint               `json:"id"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Tags           []string           `json:"tags"`
	Status         string             `json:"status"`
	Rating         float64            `json:"rating"`
	PerHeadCredits int                `json:"per_head_credits"`
	Owner          models.UserSummary `json:"owner"`
	CreatedAt      time.Time          `json:"created_at"`
}

// CollaboratorView pairs a collaborator's user summary with their status.
type CollaboratorView struct {
	User   models.UserSummary `json:"user"`
	Status string             `json:"status"`
}

// ProjectDetail is the detail-view projection: the summary plus links and
// the full collaborator list in request order.
type ProjectDetail struct {
	ProjectSummary
	GithubLink    string             `json:"github_link"`
	DeployedLink  string             `json:"deployed_link"`
	Collaborators []CollaboratorView `json:"collaborators"`
}

func newProjectSummary(p *models.Project) ProjectSummary {
	s := ProjectSummary{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		Tags:           splitTags(p.Tags),
		Status:         p.Status,
		Rating:         p.Rating,
		PerHeadCredits: p.PerHeadCredits,
		CreatedAt:      p.CreatedAt,
	}
	if p.Owner != nil {
		s.Owner = p.Owner.Summary()
	}
	return s
}

func splitTags(tags string) []string {
	if tags == "" {
		return []string{}
	}
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Create stores a new project owned by userID. The owner is seeded as an
// approved collaborator, added to their own collabed list, and the project
// chat is created with the owner as its first member, all in one
// transaction.
func (s *ProjectService) Create(req *CreateProjectRequest, userID uint) (*models.Project, error) {
	var owner models.User
	if err := s.db.First(&owner, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("owner user not found")
		}
		return nil, err
	}

	project := models.Project{
		Title:          req.Title,
		Description:    req.Description,
		Tags:           strings.Join(req.Tags, ","),
		GithubLink:     req.GithubLink,
		DeployedLink:   req.DeployedLink,
		Status:         models.ProjectOngoing,
		OwnerID:        userID,
		PerHeadCredits: req.PerHeadCredits,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		ownerCollab := models.ProjectCollaborator{
			ProjectID: project.ID,
			UserID:    userID,
			Status:    models.CollabApproved,
		}
		if err := tx.Create(&ownerCollab).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.CollabedProject{UserID: userID, ProjectID: project.ID}).Error; err != nil {
			return err
		}

		chat := models.Chat{ProjectID: project.ID, Name: project.Title}
		if err := tx.Create(&chat).Error; err != nil {
			return err
		}
		return tx.Create(&models.ChatMember{ChatID: chat.ID, UserID: userID}).Error
	}); err != nil {
		return nil, err
	}

	return &project, nil
}

// List returns paginated project summaries, newest first. A tags filter
// matches projects carrying any of the given tags.
func (s *ProjectService) List(req *ProjectListRequest) (*ProjectListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 10
	}

	query := s.db.Model(&models.Project{})

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Tags != "" {
		var conds []string
		var args []interface{}
		for _, tag := range splitTags(req.Tags) {
			conds = append(conds, "(',' || tags || ',') LIKE ?")
			args = append(args, "%,"+tag+",%")
		}
		if len(conds) > 0 {
			query = query.Where(strings.Join(conds, " OR "), args...)
		}
	}

	var total int64
	query.Count(&total)

	var projects []models.Project
	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("Owner").
		Offset(offset).Limit(req.PageSize).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}

	items := make([]ProjectSummary, 0, len(projects))
	for i := range projects {
		items = append(items, newProjectSummary(&projects[i]))
	}

	return &ProjectListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    items,
	}, nil
}

// ListOwned returns summaries of the projects a user owns, newest first.
func (s *ProjectService) ListOwned(userID uint) ([]ProjectSummary, error) {
	var projects []models.Project
	if err := s.db.Where("owner_id = ?", userID).
		Preload("Owner").
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}

	items := make([]ProjectSummary, 0, len(projects))
	for i := range projects {
		items = append(items, newProjectSummary(&projects[i]))
	}
	return items, nil
}

// GetDetail returns the detail projection of a project, including the
// collaborator list with user summaries.
func (s *ProjectService) GetDetail(id uint) (*ProjectDetail, error) {
	var project models.Project
	if err := s.db.Preload("Owner").First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	var collabs []models.ProjectCollaborator
	if err := s.db.Where("project_id = ?", id).
		Preload("User").
		Order("id ASC").
		Find(&collabs).Error; err != nil {
		return nil, err
	}

	detail := ProjectDetail{
		ProjectSummary: newProjectSummary(&project),
		GithubLink:     project.GithubLink,
		DeployedLink:   project.DeployedLink,
		Collaborators:  make([]CollaboratorView, 0, len(collabs)),
	}
	for _, c := range collabs {
		view := CollaboratorView{Status: c.Status}
		if c.User != nil {
			view.User = c.User.Summary()
		}
		detail.Collaborators = append(detail.Collaborators, view)
	}

	return &detail, nil
}
