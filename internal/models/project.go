package models

import (
	"time"

	"gorm.io/gorm"
)

// Project status values. The transition is one-way: once completed a
// project never reopens.
const (
	ProjectOngoing   = "ongoing"
	ProjectCompleted = "completed"
)

// Project represents a student project open for collaboration.
type Project struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Title          string         `gorm:"size:200;not null" json:"title"`
	Description    string         `gorm:"type:text;not null" json:"description"`
	Tags           string         `gorm:"size:500" json:"tags"` // comma separated: react,go,ml
	GithubLink     string         `gorm:"size:500" json:"github_link"`
	DeployedLink   string         `gorm:"size:500" json:"deployed_link"`
	Status         string         `gorm:"size:20;default:ongoing" json:"status"` // ongoing, completed
	OwnerID        uint           `gorm:"index;not null" json:"owner_id"`
	Owner          *User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	PerHeadCredits int            `gorm:"default:0" json:"per_head_credits"` // fixed at creation
	Rating         float64        `gorm:"default:0" json:"rating"`           // mean of comment ratings
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Project) TableName() string { return "projects" }
