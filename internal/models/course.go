package models

import (
	"time"

	"gorm.io/gorm"
)

// Course is a learning resource shared by a student.
type Course struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CourseName string         `gorm:"size:200;not null" json:"course_name"`
	CourseDesc string         `gorm:"type:text;not null" json:"course_desc"`
	Tags       string         `gorm:"size:500" json:"tags"`
	Link       string         `gorm:"size:500;not null" json:"link"`
	Rating     float64        `gorm:"default:0" json:"rating"` // mean of feedback ratings
	AddedByID  uint           `gorm:"index;not null" json:"added_by_id"`
	AddedBy    *User          `gorm:"foreignKey:AddedByID" json:"added_by,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Course) TableName() string { return "courses" }

// CourseFeedback is a rating and review on a course.
type CourseFeedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CourseID  uint      `gorm:"index;not null" json:"course_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Review    string    `gorm:"type:text" json:"review"`
	Rating    int       `gorm:"not null" json:"rating"` // 0-5
	CreatedAt time.Time `json:"created_at"`
}

func (CourseFeedback) TableName() string { return "course_feedbacks" }
