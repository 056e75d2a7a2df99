package models

import (
	"time"

	"gorm.io/gorm"
)

// Collaborator status values. A record starts pending and transitions once
// to approved or rejected; rejected may also follow approved (revocation).
// Records are never deleted.
const (
	CollabPending  = "pending"
	CollabApproved = "approved"
	CollabRejected = "rejected"
)

// ProjectCollaborator tracks a user's membership request/grant on a
// project. The project owner gets an approved record at creation time.
type ProjectCollaborator struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProjectID uint           `gorm:"uniqueIndex:idx_project_user;not null" json:"project_id"`
	Project   *Project       `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	UserID    uint           `gorm:"uniqueIndex:idx_project_user;not null" json:"user_id"`
	User      *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status    string         `gorm:"size:20;default:pending" json:"status"` // pending, approved, rejected
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ProjectCollaborator) TableName() string { return "project_collaborators" }

// CollabedProject records a project on the user's collaboration list.
// A row appears on approval and disappears on rejection.
type CollabedProject struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_project;not null" json:"user_id"`
	ProjectID uint      `gorm:"uniqueIndex:idx_user_project;not null" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (CollabedProject) TableName() string { return "collabed_projects" }
