// Package seed populates a development database with sample forum data.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"blueddit/internal/models"
	"blueddit/internal/repository"
)

// Options controls how much data the seeder generates.
type Options struct {
	Users int
	Posts int
	Clean bool
}

// Run fills the database with sample users, posts, threaded comments and
// votes. Votes go through the vote store so every score stays equal to the
// signed sum of its ledger rows.
func Run(ctx context.Context, db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	if opts.Clean {
		if err := clean(db); err != nil {
			return fmt.Errorf("cleaning tables: %w", err)
		}
	}

	users, err := seedUsers(db, opts.Users)
	if err != nil {
		return err
	}

	posts, err := seedPosts(db, users, opts.Posts)
	if err != nil {
		return err
	}

	comments, err := seedComments(db, users, posts)
	if err != nil {
		return err
	}

	return seedVotes(ctx, db, users, posts, comments)
}

func clean(db *gorm.DB) error {
	// Children before parents.
	for _, model := range []any{
		&models.Vote{}, &models.Comment{}, &models.Post{},
		&models.Session{}, &models.User{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedUsers(db *gorm.DB, n int) ([]models.User, error) {
	if n <= 0 {
		n = 10
	}

	// One hash for everyone keeps seeding fast; these are throwaway accounts.
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{Username: gofakeit.Username(), Password: string(hashed)}
		if err := db.Create(&user).Error; err != nil {
			if repository.IsUniqueViolation(err) {
				user = models.User{
					Username: fmt.Sprintf("%s_%s", user.Username, uuid.New().String()[:8]),
					Password: string(hashed),
				}
				err = db.Create(&user).Error
			}
			if err != nil {
				return nil, fmt.Errorf("creating user %q: %w", user.Username, err)
			}
		}
		users = append(users, user)
	}
	return users, nil
}

func seedPosts(db *gorm.DB, users []models.User, n int) ([]models.Post, error) {
	if n <= 0 {
		n = 20
	}

	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		post := models.Post{
			UserID:  users[rand.Intn(len(users))].ID,
			Title:   gofakeit.Sentence(5),
			Content: gofakeit.Paragraph(1, 3, 5, "\n"),
		}
		if err := db.Create(&post).Error; err != nil {
			return nil, fmt.Errorf("creating post %q: %w", post.Title, err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func seedComments(db *gorm.DB, users []models.User, posts []models.Post) ([]models.Comment, error) {
	var comments []models.Comment
	for _, post := range posts {
		nRoots := 1 + rand.Intn(3)
		var roots []models.Comment
		for i := 0; i < nRoots; i++ {
			comment := models.Comment{
				PostID:  post.ID,
				UserID:  users[rand.Intn(len(users))].ID,
				Content: gofakeit.Sentence(8),
			}
			if err := db.Create(&comment).Error; err != nil {
				return nil, fmt.Errorf("creating comment: %w", err)
			}
			roots = append(roots, comment)
			comments = append(comments, comment)
		}

		// A few replies to make the trees non-trivial.
		for i := 0; i < rand.Intn(3); i++ {
			parent := roots[rand.Intn(len(roots))]
			reply := models.Comment{
				PostID:          post.ID,
				UserID:          users[rand.Intn(len(users))].ID,
				ParentCommentID: &parent.ID,
				Content:         gofakeit.Sentence(8),
			}
			if err := db.Create(&reply).Error; err != nil {
				return nil, fmt.Errorf("creating reply: %w", err)
			}
			comments = append(comments, reply)
		}
	}
	return comments, nil
}

func seedVotes(ctx context.Context, db *gorm.DB, users []models.User, posts []models.Post, comments []models.Comment) error {
	votes := repository.NewVoteRepository(db)

	cast := func(kind models.TargetKind, targetID uint) error {
		user := users[rand.Intn(len(users))]
		voteType := models.VoteUp
		if rand.Intn(4) == 0 {
			voteType = models.VoteDown
		}
		_, err := votes.Apply(ctx, kind, targetID, user.ID, voteType)
		return err
	}

	for _, post := range posts {
		for i := 0; i < rand.Intn(len(users)+1); i++ {
			if err := cast(models.TargetPost, post.ID); err != nil {
				return fmt.Errorf("voting on post %d: %w", post.ID, err)
			}
		}
	}
	for _, comment := range comments {
		for i := 0; i < rand.Intn(3); i++ {
			if err := cast(models.TargetComment, comment.ID); err != nil {
				return fmt.Errorf("voting on comment %d: %w", comment.ID, err)
			}
		}
	}
	return nil
}
