// Package server wires the HTTP surface: routing, session handling and
// request middleware on top of the service layer.
package server

import (
	"context"

	"chirper/internal/cache"
	"chirper/internal/config"
	"chirper/internal/database"
	"chirper/internal/middleware"
	"chirper/internal/observability"
	"chirper/internal/repository"
	"chirper/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds the application dependencies shared by all handlers.
type Server struct {
	config          *config.Config
	db              *gorm.DB
	redis           *redis.Client
	promMiddleware  *fiberprometheus.FiberPrometheus
	tracingShutdown func(context.Context) error

	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
	followRepo  repository.FollowRepository
	likeRepo    repository.LikeRepository

	userService    *service.UserService
	messageService *service.MessageService
	followService  *service.FollowService
	likeService    *service.LikeService
	feedService    *service.FeedService
}

// NewServer connects to Postgres and Redis and builds a fully wired server.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)

	var tracingShutdown func(context.Context) error
	if cfg.TracingEnabled {
		tracingShutdown, err = observability.InitTracing(observability.TracingConfig{
			ServiceName:    "chirper-api",
			ServiceVersion: "1.0.0",
			Environment:    cfg.Env,
			Enabled:        true,
			Exporter:       cfg.TracingExport,
			OTLPEndpoint:   cfg.OTLPEndpoint,
			SamplerRatio:   cfg.TracingRatio,
		})
		if err != nil {
			middleware.Logger.Warn("tracing init failed, continuing without tracing", "error", err)
		}
	}

	s := newServerWithDeps(cfg, db, cache.GetClient())
	s.promMiddleware = middleware.InitMetrics("chirper-api")
	s.tracingShutdown = tracingShutdown
	return s, nil
}

// newServerWithDeps builds a server around already-established
// connections. Tests use it with an in-memory database and an optional
// fake Redis.
func newServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	s := &Server{
		config: cfg,
		db:     db,
		redis:  redisClient,
	}

	s.userRepo = repository.NewUserRepository(db)
	s.messageRepo = repository.NewMessageRepository(db)
	s.followRepo = repository.NewFollowRepository(db)
	s.likeRepo = repository.NewLikeRepository(db)

	s.userService = service.NewUserService(s.userRepo)
	s.messageService = service.NewMessageService(s.messageRepo)
	s.followService = service.NewFollowService(s.followRepo, s.userRepo)
	s.likeService = service.NewLikeService(s.likeRepo, s.messageRepo)
	s.feedService = service.NewFeedService(s.followRepo, s.messageRepo)

	return s
}

// NewServerWithDeps is the exported test seam around newServerWithDeps.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	return newServerWithDeps(cfg, db, redisClient)
}

// SetupMiddleware installs the request pipeline in order: panic
// recovery, request IDs, context propagation, tracing, metrics and
// security headers before the structured access log.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}
	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-CSRF-Token",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))
}

// SetupRoutes registers every route. Static user paths are registered
// before the parameterized ones so "/users/profile" is never captured
// by "/users/:id".
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	app.Post("/signup", s.Signup)
	app.Post("/login", s.Login)
	app.Post("/logout", s.SessionRequired(), s.Logout)

	users := app.Group("/users")
	users.Get("/", s.ListUsers)
	users.Get("/profile", s.SessionRequired(), s.GetProfile)
	users.Put("/profile", s.SessionRequired(), s.CSRFRequired(), s.UpdateProfile)
	users.Post("/follow/:id", s.SessionRequired(), s.CSRFRequired(), s.FollowUser)
	users.Post("/stop-following/:id", s.SessionRequired(), s.CSRFRequired(), s.UnfollowUser)
	users.Get("/:id/following", s.SessionRequired(), s.GetFollowing)
	users.Get("/:id/followers", s.SessionRequired(), s.GetFollowers)
	users.Get("/:id/likes", s.GetLikedMessages)
	users.Post("/:id/delete", s.SessionRequired(), s.CSRFRequired(), s.DeleteUser)
	users.Get("/:id", s.GetUserProfile)

	messages := app.Group("/messages")
	messages.Post("/new", s.SessionRequired(), s.CSRFRequired(), s.CreateMessage)
	messages.Post("/:id/delete", s.SessionRequired(), s.CSRFRequired(), s.DeleteMessage)
	messages.Post("/:id/like", s.SessionRequired(), s.CSRFRequired(), s.ToggleLike)
	messages.Get("/:id", s.GetMessage)

	app.Get("/", s.SessionOptional(), s.HomeFeed)
}

// LivenessCheck reports that the process is up.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck reports whether the database accepts queries.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Context())
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"error":  "database not reachable",
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// Shutdown releases the server's external connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.tracingShutdown != nil {
		if err := s.tracingShutdown(ctx); err != nil {
			middleware.Logger.Warn("tracing shutdown failed", "error", err)
		}
	}
	cache.Close()
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			return sqlDB.Close()
		}
	}
	return nil
}
