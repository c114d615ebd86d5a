package server

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"blueddit/internal/models"
	"blueddit/internal/repository"
	"blueddit/internal/validation"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /api/register. The user row and the first session
// are created in one transaction: a half-registered user with no session
// must never persist.
func (s *Server) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Username == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username and password are required"))
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	existing, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return respondStoreError(c, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewConflictError("Username already exists"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Username: req.Username,
		Password: string(hashed),
	}

	var session *models.Session
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if repository.IsUniqueViolation(err) {
				return models.NewConflictError("Username already exists")
			}
			return err
		}
		var err error
		session, err = s.sessionRepo.IssueTx(tx, user.ID)
		return err
	})
	if txErr != nil {
		return respondStoreError(c, txErr)
	}

	s.setTokenCookie(c, session.Token)
	return c.JSON(fiber.Map{
		"username": user.Username,
		"user_id":  user.ID,
		"token":    session.Token,
	})
}

// Login handles POST /api/login
func (s *Server) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Username == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username and password are required"))
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return respondStoreError(c, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	session, err := s.sessionRepo.Issue(ctx, user.ID)
	if err != nil {
		return respondStoreError(c, err)
	}

	s.setTokenCookie(c, session.Token)
	return c.JSON(fiber.Map{
		"username": user.Username,
		"user_id":  user.ID,
		"token":    session.Token,
	})
}

// Logout handles POST /api/logout. The token comes from the cookie;
// revoking an already-gone session still counts as a successful logout.
func (s *Server) Logout(c *fiber.Ctx) error {
	token := c.Cookies("token")
	if token == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No token provided"))
	}

	if err := s.sessionRepo.Revoke(c.UserContext(), token); err != nil {
		return respondStoreError(c, err)
	}

	s.clearTokenCookie(c)
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}
