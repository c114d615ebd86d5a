package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"blueddit/internal/models"
)

func TestRunKeepsScoresConsistent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Session{}, &models.Post{}, &models.Comment{}, &models.Vote{},
	))

	require.NoError(t, Run(context.Background(), db, Options{Users: 5, Posts: 8}))

	var userCount, postCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	assert.EqualValues(t, 5, userCount)
	assert.EqualValues(t, 8, postCount)

	// Every denormalized score equals the signed sum of its ledger rows.
	var posts []models.Post
	require.NoError(t, db.Find(&posts).Error)
	for _, post := range posts {
		assert.Equal(t, ledgerSum(t, db, models.TargetPost, post.ID), post.Score, "post %d", post.ID)
	}
	var comments []models.Comment
	require.NoError(t, db.Find(&comments).Error)
	for _, comment := range comments {
		assert.Equal(t, ledgerSum(t, db, models.TargetComment, comment.ID), comment.Score, "comment %d", comment.ID)
	}
}

func ledgerSum(t *testing.T, db *gorm.DB, kind models.TargetKind, targetID uint) int {
	t.Helper()
	var votes []models.Vote
	require.NoError(t, db.Where("target_type = ? AND target_id = ?", kind, targetID).Find(&votes).Error)
	sum := 0
	for _, vote := range votes {
		sum += vote.VoteType.Sign()
	}
	return sum
}
