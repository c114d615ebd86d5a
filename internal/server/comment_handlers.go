package server

import (
	"github.com/gofiber/fiber/v2"

	"blueddit/internal/models"
)

// CreateComment handles POST /api/comments. A nil parent_comment_id makes
// a top-level comment. Under the reject orphan policy the parent must be
// an existing comment of the same post; the other policies accept the row
// as-is and resolve dangling parents at read time.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Token           string `json:"token"`
		PostID          uint   `json:"post_id"`
		UserID          uint   `json:"user_id"`
		Content         string `json:"content"`
		ParentCommentID *uint  `json:"parent_comment_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Token == "" || req.PostID == 0 || req.UserID == 0 || req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Missing required fields"))
	}

	if err := s.requireSession(c, req.UserID, req.Token); err != nil {
		return nil
	}

	exists, err := s.postRepo.Exists(ctx, req.PostID)
	if err != nil {
		return respondStoreError(c, err)
	}
	if !exists {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", req.PostID))
	}

	if req.ParentCommentID != nil && s.orphanPolicy == models.OrphanReject {
		ok, err := s.commentRepo.ParentInPost(ctx, *req.ParentCommentID, req.PostID)
		if err != nil {
			return respondStoreError(c, err)
		}
		if !ok {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Parent comment not found in this post"))
		}
	}

	comment := &models.Comment{
		PostID:          req.PostID,
		UserID:          req.UserID,
		ParentCommentID: req.ParentCommentID,
		Content:         req.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return respondStoreError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":           "Comment created successfully.",
		"comment_id":        comment.ID,
		"post_id":           comment.PostID,
		"user_id":           comment.UserID,
		"content":           comment.Content,
		"parent_comment_id": comment.ParentCommentID,
	})
}
