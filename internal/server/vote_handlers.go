package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"blueddit/internal/models"
)

// VotePost handles POST /api/post_vote
func (s *Server) VotePost(c *fiber.Ctx) error {
	return s.handleVote(c, models.TargetPost)
}

// VoteComment handles POST /api/comment_vote
func (s *Server) VoteComment(c *fiber.Ctx) error {
	return s.handleVote(c, models.TargetComment)
}

// handleVote is the single vote endpoint body, parameterized by target
// kind; post and comment votes differ only in which ID field the request
// carries and which table takes the score delta.
func (s *Server) handleVote(c *fiber.Ctx, kind models.TargetKind) error {
	var req struct {
		Token     string `json:"token"`
		UserID    uint   `json:"user_id"`
		PostID    uint   `json:"post_id"`
		CommentID uint   `json:"comment_id"`
		VoteType  string `json:"vote_type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	targetID := req.PostID
	if kind == models.TargetComment {
		targetID = req.CommentID
	}
	if req.Token == "" || req.UserID == 0 || targetID == 0 || req.VoteType == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Missing required fields"))
	}

	if err := s.requireSession(c, req.UserID, req.Token); err != nil {
		return nil
	}

	voteType := models.VoteType(req.VoteType)
	if !voteType.Valid() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid vote type."))
	}

	newScore, err := s.voteRepo.Apply(c.UserContext(), kind, targetID, req.UserID, voteType)
	if err != nil {
		return respondStoreError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":      fmt.Sprintf("%s %sd successfully.", kind.Label(), voteType),
		kind.IDField(): targetID,
		"new_score":    newScore,
	})
}
