package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"blueddit/internal/models"
)

// VoteRepository is the vote ledger. Apply runs the full vote transition
// for one (user, target) pair and returns the target's score after it.
//
// Transitions:
//   - no existing vote: insert, score moves by the vote's sign
//   - existing vote of the other type (flip): replace, score moves by
//     twice the new vote's sign
//   - existing vote of the same type (un-vote): remove, score moves by
//     the inverse of the old vote's sign
//
// The vote row and the denormalized score commit in one transaction, and
// the score update is an atomic `score = score + ?` expression, so
// concurrent votes on the same target cannot lose updates. The unique
// (user, target kind, target) index serializes concurrent requests from
// the same user.
type VoteRepository interface {
	Apply(ctx context.Context, kind models.TargetKind, targetID, userID uint, voteType models.VoteType) (int, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// targetModel maps a target kind to the GORM model carrying its score column.
func targetModel(kind models.TargetKind) (any, error) {
	switch kind {
	case models.TargetPost:
		return &models.Post{}, nil
	case models.TargetComment:
		return &models.Comment{}, nil
	}
	return nil, fmt.Errorf("unknown vote target kind %q", kind)
}

func (r *voteRepository) Apply(ctx context.Context, kind models.TargetKind, targetID, userID uint, voteType models.VoteType) (int, error) {
	if !voteType.Valid() {
		return 0, models.NewValidationError("Invalid vote type.")
	}
	target, err := targetModel(kind)
	if err != nil {
		return 0, models.NewInternalError(err)
	}

	var newScore int
	txErr := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		err := tx.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, kind, targetID).
			First(&existing).Error

		var delta int
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.Vote{UserID: userID, TargetType: kind, TargetID: targetID, VoteType: voteType}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			delta = voteType.Sign()
		case err != nil:
			return err
		case existing.VoteType == voteType:
			// un-vote: same type submitted again toggles the vote off
			if err := tx.Delete(&models.Vote{}, existing.ID).Error; err != nil {
				return err
			}
			delta = -voteType.Sign()
		default:
			// flip: replace the opposite vote
			if err := tx.Delete(&models.Vote{}, existing.ID).Error; err != nil {
				return err
			}
			vote := models.Vote{UserID: userID, TargetType: kind, TargetID: targetID, VoteType: voteType}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			delta = 2 * voteType.Sign()
		}

		// UpdateColumn keeps updated_at untouched; voting is not an edit.
		res := tx.Model(target).Where("id = ?", targetID).
			UpdateColumn("score", gorm.Expr("score + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError(kind.Label(), targetID)
		}

		return tx.Model(target).Select("score").Where("id = ?", targetID).Scan(&newScore).Error
	})
	if txErr != nil {
		var appErr *models.AppError
		if errors.As(txErr, &appErr) {
			return 0, appErr
		}
		return 0, models.NewInternalError(txErr)
	}
	return newScore, nil
}
