package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"blueddit/internal/models"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// requireSession checks the (user_id, token) pair against the session
// store. On failure it writes the response and returns errResponseWritten;
// callers should check: if err != nil { return nil }.
func (s *Server) requireSession(c *fiber.Ctx, userID uint, token string) error {
	ok, err := s.sessionRepo.Validate(c.UserContext(), userID, token)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusInternalServerError, err)
		return errResponseWritten
	}
	if !ok {
		_ = models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("Invalid token or user ID."))
		return errResponseWritten
	}

	// For the request logger.
	c.Locals("userID", userID)
	return nil
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx, param, label string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+label))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondStoreError maps repository errors onto the HTTP taxonomy.
func respondStoreError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		case "VALIDATION_ERROR":
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		case "CONFLICT":
			// The original API reported duplicates as plain 400s.
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError,
		models.NewInternalError(err))
}

// setTokenCookie mirrors the cookie the original backend set at
// login/register so browser clients keep working unchanged.
func (s *Server) setTokenCookie(c *fiber.Ctx, token string) {
	cookie := &fiber.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Domain:   s.config.CookieDomain,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if s.config.SessionTTLHours > 0 {
		cookie.Expires = time.Now().Add(time.Duration(s.config.SessionTTLHours) * time.Hour)
	}
	c.Cookie(cookie)
}

func (s *Server) clearTokenCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		Domain:   s.config.CookieDomain,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(0, 0),
	})
}
