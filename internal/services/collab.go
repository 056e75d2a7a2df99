package services

import (
	"errors"
	"fmt"

	"github.com/collabconnect/backend/internal/models"
	"github.com/collabconnect/backend/pkg/response"
	"gorm.io/gorm"
)

// CollabService manages the project-collaborator lifecycle: a record moves
// absent -> pending -> approved or rejected. Reject is also legal on an
// approved collaborator and acts as revocation, stripping the chat
// membership and collabed-project entry granted at approval time.
type CollabService struct {
	db *gorm.DB
}

func NewCollabService(db *gorm.DB) *CollabService {
	return &CollabService{db: db}
}

// SettlementSummary reports the one-time credit award of Complete.
type SettlementSummary struct {
	ProjectID       uint   `json:"project_id"`
	PerHeadCredits  int    `json:"per_head_credits"`
	CreditedUserIDs []uint `json:"credited_user_ids"`
}

// RequestToJoin creates a pending collaborator record for the user.
// The owner cannot request to join, and any existing record for the pair
// blocks a new request regardless of its status.
func (s *CollabService) RequestToJoin(projectID, userID uint) (*models.ProjectCollaborator, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
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

	if project.OwnerID == userID {
		return nil, response.NewConflict("owner cannot request to join their own project")
	}

	var existing models.ProjectCollaborator
	err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&existing).Error
	if err == nil {
		return nil, response.NewConflict(fmt.Sprintf("user already %s for this project", existing.Status))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	collab := models.ProjectCollaborator{
		ProjectID: projectID,
		UserID:    userID,
		Status:    models.CollabPending,
	}
	if err := s.db.Create(&collab).Error; err != nil {
		return nil, err
	}

	return &collab, nil
}

// Approve marks the collaborator record approved and grants membership:
// the project joins the user's collabed list and the user joins the project
// chat. Both grants are idempotent adds, so retrying a partially applied
// approval converges. Runs in a single transaction.
func (s *CollabService) Approve(projectID, userID uint) (*models.ProjectCollaborator, error) {
	var collab models.ProjectCollaborator
	if err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&collab).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("collaborator record not found for this user")
		}
		return nil, err
	}

	if collab.Status == models.CollabApproved {
		return nil, response.NewConflict("collaborator already approved")
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&collab).Update("status", models.CollabApproved).Error; err != nil {
			return err
		}

		if err := tx.Where(models.CollabedProject{UserID: userID, ProjectID: projectID}).
			FirstOrCreate(&models.CollabedProject{UserID: userID, ProjectID: projectID}).Error; err != nil {
			return err
		}

		return addChatMember(tx, projectID, userID)
	}); err != nil {
		return nil, err
	}

	collab.Status = models.CollabApproved
	return &collab, nil
}

// Reject marks the collaborator record rejected. The cleanup removes the
// user's collabed-project entry and chat membership whether or not a prior
// approval granted them, so rejecting a pending request and revoking an
// approved collaborator go through the same transition.
func (s *CollabService) Reject(projectID, userID uint) (*models.ProjectCollaborator, error) {
	var collab models.ProjectCollaborator
	if err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&collab).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("collaborator record not found for this user")
		}
		return nil, err
	}

	if collab.Status == models.CollabRejected {
		return nil, response.NewConflict("collaborator already rejected")
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&collab).Update("status", models.CollabRejected).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ? AND project_id = ?", userID, projectID).
			Delete(&models.CollabedProject{}).Error; err != nil {
			return err
		}

		return removeChatMember(tx, projectID, userID)
	}); err != nil {
		return nil, err
	}

	collab.Status = models.CollabRejected
	return &collab, nil
}

// Complete marks the project completed and awards PerHeadCredits to every
// approved collaborator in one bulk update. The one-way status transition
// guarantees the settlement is applied at most once per project.
func (s *CollabService) Complete(projectID uint) (*SettlementSummary, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if project.Status == models.ProjectCompleted {
		return nil, response.NewConflict("project already completed")
	}

	summary := SettlementSummary{
		ProjectID:      projectID,
		PerHeadCredits: project.PerHeadCredits,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&project).Update("status", models.ProjectCompleted).Error; err != nil {
			return err
		}

		var approvedIDs []uint
		if err := tx.Model(&models.ProjectCollaborator{}).
			Where("project_id = ? AND status = ?", projectID, models.CollabApproved).
			Order("id ASC").
			Pluck("user_id", &approvedIDs).Error; err != nil {
			return err
		}
		summary.CreditedUserIDs = approvedIDs

		if len(approvedIDs) == 0 || project.PerHeadCredits == 0 {
			return nil
		}

		return tx.Model(&models.User{}).
			Where("id IN ?", approvedIDs).
			Update("credit_score", gorm.Expr("credit_score + ?", project.PerHeadCredits)).Error
	}); err != nil {
		return nil, err
	}

	return &summary, nil
}

// ListCollabs returns summaries of the projects on the user's
// collaboration list, newest first.
func (s *CollabService) ListCollabs(userID uint) ([]ProjectSummary, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	var entries []models.CollabedProject
	if err := s.db.Where("user_id = ?", userID).
		Preload("Project").Preload("Project.Owner").
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	summaries := make([]ProjectSummary, 0, len(entries))
	for _, e := range entries {
		if e.Project == nil {
			continue
		}
		summaries = append(summaries, newProjectSummary(e.Project))
	}
	return summaries, nil
}

// addChatMember idempotently adds the user to the project's chat.
func addChatMember(tx *gorm.DB, projectID, userID uint) error {
	var chat models.Chat
	if err := tx.Where("project_id = ?", projectID).First(&chat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // no chat to update
		}
		return err
	}

	return tx.Where(models.ChatMember{ChatID: chat.ID, UserID: userID}).
		FirstOrCreate(&models.ChatMember{ChatID: chat.ID, UserID: userID}).Error
}

// removeChatMember removes the user from the project's chat if present.
func removeChatMember(tx *gorm.DB, projectID, userID uint) error {
	var chat models.Chat
	if err := tx.Where("project_id = ?", projectID).First(&chat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	return tx.Where("chat_id = ? AND user_id = ?", chat.ID, userID).
		Delete(&models.ChatMember{}).Error
}
