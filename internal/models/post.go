package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a forum post. Score is denormalized: it is only ever
// mutated by the vote ledger, in the same transaction as the vote row.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
	Title     string         `gorm:"not null" json:"title"`
	Content   string         `gorm:"not null" json:"content"`
	Score     int            `gorm:"not null;default:0" json:"score"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PostSummary is the flat row served by GET /api/posts, posts joined with
// their author's username.
type PostSummary struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Score     int       `json:"score"`
}

// PostDetail is the post metadata block inside the GET /api/post/:id
// envelope. The field names (notably "body") are what the frontend expects.
type PostDetail struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Score     int       `json:"score"`
}

// PostView combines a post's metadata with its assembled comment forest.
type PostView struct {
	Post     PostDetail     `json:"post"`
	Comments []*CommentNode `json:"comments"`
}
