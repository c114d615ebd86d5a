package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"blueddit/internal/models"
)

// PostRepository defines the interface for post data operations.
// Posts are append-only in this API: no update or delete.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Exists(ctx context.Context, id uint) (bool, error)
	// List returns every post joined with its author, highest score first;
	// ties keep insertion order.
	List(ctx context.Context) ([]models.PostSummary, error)
	// GetDetail returns the metadata block for the post view envelope.
	GetDetail(ctx context.Context, id uint) (*models.PostDetail, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *postRepository) List(ctx context.Context) ([]models.PostSummary, error) {
	summaries := make([]models.PostSummary, 0)
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select("posts.id, posts.user_id, users.username AS author, posts.title, posts.content, posts.created_at, posts.updated_at, posts.score").
		Joins("JOIN users ON users.id = posts.user_id").
		Order("posts.score DESC, posts.id ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return summaries, nil
}

func (r *postRepository) GetDetail(ctx context.Context, id uint) (*models.PostDetail, error) {
	var detail models.PostDetail
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select("posts.id, posts.title, posts.content AS body, users.username AS author, posts.created_at, posts.updated_at, posts.score").
		Joins("JOIN users ON users.id = posts.user_id").
		Where("posts.id = ?", id).
		Take(&detail).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Post", id)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &detail, nil
}
