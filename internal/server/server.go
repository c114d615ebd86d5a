// Package server contains the HTTP handlers for the forum API.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"blueddit/internal/cache"
	"blueddit/internal/config"
	"blueddit/internal/database"
	"blueddit/internal/middleware"
	"blueddit/internal/models"
	"blueddit/internal/repository"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	sessionRepo    repository.SessionRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	voteRepo       repository.VoteRepository
	orphanPolicy   models.OrphanPolicy
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	srv, err := newServerWithDB(cfg, db, cache.GetClient())
	if err != nil {
		return nil, err
	}

	// Registers against the default Prometheus registry, so only the
	// production constructor does it; tests build many servers per process.
	srv.promMiddleware = middleware.InitMetrics("blueddit-api")
	return srv, nil
}

// newServerWithDB wires a server onto an existing database handle; tests
// use it with an in-memory database and no Redis.
func newServerWithDB(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	policy, err := models.ParseOrphanPolicy(cfg.OrphanCommentPolicy)
	if err != nil {
		return nil, err
	}

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour

	return &Server{
		config:       cfg,
		db:           db,
		redis:        redisClient,
		userRepo:     repository.NewUserRepository(db),
		sessionRepo:  repository.NewSessionRepository(db, sessionTTL),
		postRepo:     repository.NewPostRepository(db),
		commentRepo:  repository.NewCommentRepository(db),
		voteRepo:     repository.NewVoteRepository(db),
		orphanPolicy: policy,
	}, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(requestid.New())

	app.Use(middleware.StructuredLogger())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Prometheus scrape endpoint at the root, outside the /api group.
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	api.Get("/hello", s.Hello)
	api.Get("/health", s.HealthCheck)
	api.Get("/metrics", monitor.New(monitor.Config{
		Title: "Blueddit Backend Metrics",
	}))

	api.Get("/posts", s.GetPosts)
	api.Get("/post/:id", s.GetPost)
	api.Get("/username/:userId", s.GetUsername)

	api.Post("/register", middleware.RateLimit(s.redis, 3, 10*time.Minute, "register"), s.Register)
	api.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	api.Post("/logout", s.Logout)

	api.Post("/create_post", s.CreatePost)
	api.Post("/comments", s.CreateComment)
	api.Post("/post_vote", s.VotePost)
	api.Post("/comment_vote", s.VoteComment)
}

// Hello handles GET /api/hello, the liveness ping the frontend polls.
func (s *Server) Hello(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Hello from Blueddit!"})
}

// HealthCheck handles health check requests
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "Blueddit",
		"status":  "healthy",
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown releases server-held resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr.Error())
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr.Error())
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
