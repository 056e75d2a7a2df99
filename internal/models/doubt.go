package models

import (
	"time"

	"gorm.io/gorm"
)

// Doubt is a question posted by a student.
type Doubt struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`
	User      *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Question  string         `gorm:"type:text;not null" json:"question"`
	Tags      string         `gorm:"size:500" json:"tags"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Doubt) TableName() string { return "doubts" }

// Vote directions.
const (
	VoteUp   = "upvote"
	VoteDown = "downvote"
)

// Answer is a reply to a doubt. Upvote and Downvote are derived counters:
// they always equal the count of AnswerVote rows in the matching direction
// and are recomputed on every vote, never incremented blindly.
type Answer struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	DoubtID    uint           `gorm:"index;not null" json:"doubt_id"`
	UserID     uint           `gorm:"index;not null" json:"user_id"`
	User       *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AnswerText string         `gorm:"type:text;not null" json:"answer_text"`
	Upvote     int            `gorm:"default:0" json:"upvote"`
	Downvote   int            `gorm:"default:0" json:"downvote"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Answer) TableName() string { return "answers" }

// AnswerVote records a voter's single active vote on an answer. The unique
// (user_id, answer_id) index is what keeps a vote from being both an upvote
// and a downvote at once.
type AnswerVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_answer;not null" json:"user_id"`
	AnswerID  uint      `gorm:"uniqueIndex:idx_user_answer;not null" json:"answer_id"`
	Direction string    `gorm:"size:10;not null" json:"direction"` // upvote, downvote
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AnswerVote) TableName() string { return "answer_votes" }
