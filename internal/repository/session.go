package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"blueddit/internal/models"
)

// SessionRepository manages opaque login tokens. Issue persists a new
// (token, user) pair, Validate matches both fields exactly, and Revoke
// deletes by token; revoking an unknown token is a no-op.
type SessionRepository interface {
	Issue(ctx context.Context, userID uint) (*models.Session, error)
	// IssueTx issues a session inside a caller-owned transaction, so user
	// and session creation can commit or roll back together.
	IssueTx(tx *gorm.DB, userID uint) (*models.Session, error)
	Validate(ctx context.Context, userID uint, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
}

type sessionRepository struct {
	db  *gorm.DB
	ttl time.Duration // zero means sessions never expire
}

// NewSessionRepository creates a session repository. A zero ttl disables
// expiry entirely (the original behavior).
func NewSessionRepository(db *gorm.DB, ttl time.Duration) SessionRepository {
	return &sessionRepository{db: db, ttl: ttl}
}

func (r *sessionRepository) newSession(userID uint) (*models.Session, error) {
	token, err := models.NewSessionToken()
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	session := &models.Session{Token: token, UserID: userID}
	if r.ttl != 0 {
		expires := time.Now().Add(r.ttl)
		session.ExpiresAt = &expires
	}
	return session, nil
}

func (r *sessionRepository) Issue(ctx context.Context, userID uint) (*models.Session, error) {
	return r.IssueTx(r.db.WithContext(ctx), userID)
}

func (r *sessionRepository) IssueTx(tx *gorm.DB, userID uint) (*models.Session, error) {
	session, err := r.newSession(userID)
	if err != nil {
		return nil, err
	}
	if err := tx.Create(session).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return session, nil
}

func (r *sessionRepository) Validate(ctx context.Context, userID uint, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	var session models.Session
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return !session.Expired(time.Now()), nil
}

func (r *sessionRepository) Revoke(ctx context.Context, token string) error {
	if err := r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
