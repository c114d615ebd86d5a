package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post. A nil ParentCommentID marks a
// top-level comment; comments are never re-parented after creation.
type Comment struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	PostID          uint           `gorm:"not null;index" json:"post_id"`
	UserID          uint           `gorm:"not null" json:"user_id"`
	User            User           `gorm:"foreignKey:UserID" json:"-"`
	ParentCommentID *uint          `gorm:"index" json:"parent_comment_id"`
	Content         string         `gorm:"not null" json:"content"`
	Score           int            `gorm:"not null;default:0" json:"score"`
	CreatedAt       time.Time      `json:"created_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
