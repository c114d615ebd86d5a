package repository

import (
	"context"

	"gorm.io/gorm"

	"blueddit/internal/models"
)

// CommentRepository defines the interface for comment data operations.
// Comments are insert-only: never edited, deleted, or re-parented.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	// ListForPost returns the post's flat comment rows joined with author
	// usernames, in insertion order, ready for tree assembly.
	ListForPost(ctx context.Context, postID uint) ([]models.PostComment, error)
	// ParentInPost reports whether parentID names a comment of postID.
	ParentInPost(ctx context.Context, parentID, postID uint) (bool, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) ListForPost(ctx context.Context, postID uint) ([]models.PostComment, error) {
	rows := make([]models.PostComment, 0)
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("comments.id, comments.parent_comment_id, comments.content, users.username, comments.created_at, comments.score").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.post_id = ?", postID).
		Order("comments.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}

func (r *commentRepository) ParentInPost(ctx context.Context, parentID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ? AND post_id = ?", parentID, postID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
