package models

import "time"

// Chat is the per-project discussion channel, created with the project.
// Membership mirrors the approved-collaborator set.
type Chat struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"uniqueIndex;not null" json:"project_id"`
	Name      string    `gorm:"size:200" json:"name"` // mirrors project title
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Chat) TableName() string { return "chats" }

// ChatMember grants a user visibility of a chat's messages.
type ChatMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ChatID    uint      `gorm:"uniqueIndex:idx_chat_user;not null" json:"chat_id"`
	UserID    uint      `gorm:"uniqueIndex:idx_chat_user;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (ChatMember) TableName() string { return "chat_members" }

// Message is a single chat message.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ChatID    uint      `gorm:"index;not null" json:"chat_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Message) TableName() string { return "messages" }
