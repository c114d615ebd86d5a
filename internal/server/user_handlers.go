package server

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"blueddit/internal/cache"
)

// usernameCacheTTL bounds staleness for the username lookup cache.
// Usernames are immutable, so the TTL only limits memory, not correctness.
const usernameCacheTTL = 10 * time.Minute

// GetUsername handles GET /api/username/:userId with a Redis cache-aside;
// without Redis it falls through to the database every time.
func (s *Server) GetUsername(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "userId", "user ID")
	if err != nil {
		return nil
	}

	var resp struct {
		Username string `json:"username"`
	}
	err = cache.CacheAside(ctx, fmt.Sprintf("username:%d", id), &resp, usernameCacheTTL, func() error {
		user, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		resp.Username = user.Username
		return nil
	})
	if err != nil {
		return respondStoreError(c, err)
	}

	return c.JSON(resp)
}
