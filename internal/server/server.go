// Package server contains the HTTP handlers and routing for the EcoRed
// Comunal API.
package server

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/yomanino/EcoRed-EcoTrama/internal/cache"
	"github.com/yomanino/EcoRed-EcoTrama/internal/config"
	"github.com/yomanino/EcoRed-EcoTrama/internal/database"
	"github.com/yomanino/EcoRed-EcoTrama/internal/middleware"
	"github.com/yomanino/EcoRed-EcoTrama/internal/models"
	"github.com/yomanino/EcoRed-EcoTrama/internal/repository"
	"github.com/yomanino/EcoRed-EcoTrama/internal/seed"
	"github.com/yomanino/EcoRed-EcoTrama/internal/service"
	"github.com/yomanino/EcoRed-EcoTrama/internal/session"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config          *config.Config
	db              *gorm.DB
	redis           *redis.Client
	app             *fiber.App
	promMiddleware  *fiberprometheus.FiberPrometheus
	sessions        session.Store
	userRepo        repository.EcotramaUserRepository
	productRepo     repository.ProductRepository
	blogRepo        repository.BlogRepository
	contactRepo     repository.ContactRepository
	newsletterRepo  repository.NewsletterRepository
	statsRepo       repository.StatsRepository
	ecotramaService *service.EcotramaService
}

// NewServer creates a server instance, establishing its own database and
// Redis connections from the configuration.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.SeedOnStart {
		if err := seed.Run(db, seed.Options{}); err != nil {
			return nil, err
		}
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	var sessions session.Store
	if redisClient != nil {
		sessions = session.NewRedisStore(redisClient, session.DefaultTTL)
	} else {
		middleware.Logger.Warn("Redis unavailable, sessions will not survive restarts")
		sessions = session.NewMemoryStore(session.DefaultTTL)
	}

	return NewServerWithDeps(cfg, db, redisClient, sessions), nil
}

// The Prometheus middleware registers its collectors in the default
// registry, which only tolerates a single registration per process.
var (
	promOnce       sync.Once
	promMiddleware *fiberprometheus.FiberPrometheus
)

func prometheusMiddleware() *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMiddleware = fiberprometheus.New("ecored-api")
	})
	return promMiddleware
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with an in-memory database and session store.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, sessions session.Store) *Server {
	userRepo := repository.NewEcotramaUserRepository(db)
	productRepo := repository.NewProductRepository(db)

	s := &Server{
		config:          cfg,
		db:              db,
		redis:           redisClient,
		promMiddleware:  prometheusMiddleware(),
		sessions:        sessions,
		userRepo:        userRepo,
		productRepo:     productRepo,
		blogRepo:        repository.NewBlogRepository(db),
		contactRepo:     repository.NewContactRepository(db),
		newsletterRepo:  repository.NewNewsletterRepository(db),
		statsRepo:       repository.NewStatsRepository(db),
		ecotramaService: service.NewEcotramaService(userRepo, productRepo),
	}
	return s
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Cookie",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (120 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Demasiadas solicitudes, intenta de nuevo más tarde",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	// Auth
	api.Post("/register", middleware.RateLimit(s.redis, 5, 10*time.Minute, "register"), s.Register)
	api.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	api.Post("/logout", s.Logout)
	api.Get("/user", s.SessionRequired(), s.CurrentUser)

	// Marketing site content
	api.Post("/contact", s.CreateContactMessage)
	api.Get("/contact", s.GetContactMessages)
	api.Post("/newsletter", s.SubscribeNewsletter)
	api.Get("/blog", s.GetBlogPosts)
	api.Post("/blog", s.CreateBlogPost)
	api.Get("/blog/:slug", s.GetBlogPostBySlug)
	api.Get("/recycling-stats", s.GetRecyclingStats)

	// EcoTrama app
	eco := api.Group("/ecotrama")
	eco.Get("/leaderboard", s.GetLeaderboard)
	eco.Get("/products/:barcode", s.GetProductByBarcode)
	// Points-granting operations always require a session; the caller's
	// identity comes from the session, never from the request body.
	eco.Post("/scan", s.SessionRequired(), s.RecordScan)
	eco.Post("/education/complete", s.SessionRequired(), s.CompleteEducation)
	eco.Get("/me/scans", s.SessionRequired(), s.GetMyScans)
}

// SessionRequired returns middleware that resolves the session cookie to a
// user id and rejects requests without a valid session.
func (s *Server) SessionRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(SessionCookie)
		if sid == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("No autenticado"))
		}

		userID, err := s.sessions.Get(c.Context(), sid)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("No autenticado"))
			}
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}

		c.Locals("userID", userID)
		c.Locals("sessionID", sid)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
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
		// The app runs without Redis, just degraded (memory sessions, no cache).
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start runs the HTTP server until shutdown.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "EcoRed Comunal API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server and closes its connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
