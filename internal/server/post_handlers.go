package server

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"blueddit/internal/models"
)

// GetPosts handles GET /api/posts: every post with its author's username,
// highest score first.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postRepo.List(c.UserContext())
	if err != nil {
		return respondStoreError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/post/:id. The response envelope is keyed by the
// post ID, wrapping the post metadata and the assembled comment forest.
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	detail, err := s.postRepo.GetDetail(ctx, id)
	if err != nil {
		return respondStoreError(c, err)
	}

	rows, err := s.commentRepo.ListForPost(ctx, id)
	if err != nil {
		return respondStoreError(c, err)
	}

	view := models.PostView{
		Post:     *detail,
		Comments: models.BuildCommentForest(rows, s.orphanPolicy),
	}
	return c.JSON(map[string]models.PostView{
		strconv.FormatUint(uint64(id), 10): view,
	})
}

// CreatePost handles POST /api/create_post
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		UserID  uint   `json:"user_id"`
		Token   string `json:"token"`
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	// Content is optional; only the token, author and title are required.
	if req.UserID == 0 || req.Token == "" || req.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Missing required fields"))
	}

	if err := s.requireSession(c, req.UserID, req.Token); err != nil {
		return nil
	}

	post := &models.Post{
		UserID:  req.UserID,
		Title:   req.Title,
		Content: req.Content,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return respondStoreError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post created successfully.",
		"post_id": post.ID,
	})
}
