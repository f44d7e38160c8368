package routes

import (
	"time"

	"github.com/Raju-02-19/college-voting-system/internal/adapters/http/handlers"
	"github.com/Raju-02-19/college-voting-system/internal/adapters/http/middleware"
	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/repositories"
	"github.com/Raju-02-19/college-voting-system/internal/config"
	"github.com/Raju-02-19/college-voting-system/internal/core/domain"
	"github.com/Raju-02-19/college-voting-system/internal/core/services"
	"github.com/Raju-02-19/college-voting-system/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Options carries the process-wide pieces built before routing
type Options struct {
	Roster   *domain.Roster
	Pending  *services.PendingStore
	Mailer   services.Mailer
	Images   services.ImageStore
	HashCost int // bcrypt cost for new accounts; 0 means password.DefaultCost
}

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, opts Options) {
	// Initialize repositories
	studentRepo := repositories.NewStudentRepository(db)
	adminRepo := repositories.NewAdminRepository(db)
	voteRepo := repositories.NewVoteRepository(db)
	candidateRepo := repositories.NewCandidateRepository(db)

	if opts.Pending == nil {
		opts.Pending = services.NewPendingStore()
	}
	if opts.HashCost == 0 {
		opts.HashCost = password.DefaultCost
	}

	// Initialize services
	registrationService := services.NewRegistrationService(
		opts.Roster,
		studentRepo,
		opts.Pending,
		opts.Mailer,
		cfg.Registration,
		cfg.Mail.FallbackDisplay,
	).WithHashCost(opts.HashCost)
	authService := services.NewAuthService(studentRepo, adminRepo, cfg.SecretKey, cfg.Session.TTL)
	ballotService := services.NewBallotService(voteRepo, studentRepo, candidateRepo, cfg.Election)
	tallyService := services.NewTallyService(voteRepo, candidateRepo)
	candidateService := services.NewCandidateService(candidateRepo, opts.Images)
	studentAdminService := services.NewStudentAdminService(studentRepo, voteRepo, opts.Roster)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg)
	authHandler := handlers.NewAuthHandler(registrationService, authService, cfg)
	ballotHandler := handlers.NewBallotHandler(ballotService)
	adminHandler := handlers.NewAdminHandler(authService, studentAdminService, candidateService, tallyService, cfg)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Candidate portraits
	if cfg.UploadDir != "" {
		app.Use("/images", middleware.PublicCacheHeaders(24*time.Hour))
		app.Static("/images", cfg.UploadDir)
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	authLimiter := middleware.AuthRateLimiter(cfg.RateLimit.Auth)

	// Voter auth routes
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, authService, authLimiter)

	// Ballot routes (voter session)
	ballotRoutes := apiV1.Group("/ballot")
	ballotRoutes.Use(middleware.NoCacheHeaders())
	ballotRoutes.Use(middleware.StudentAuth(authService))
	setupBallotRoutes(ballotRoutes, ballotHandler)

	// Admin routes
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(middleware.NoCacheHeaders())
	setupAdminRoutes(adminRoutes, adminHandler, authService, authLimiter)
}

// setupAuthRoutes configures voter registration and login routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, parser middleware.SessionParser, limiter fiber.Handler) {
	// Public routes
	router.Post("/register", limiter, handler.Register)
	router.Post("/verify", limiter, handler.Verify)
	router.Post("/login", limiter, handler.Login)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.StudentAuth(parser), handler.Me)
}

// setupBallotRoutes configures voting routes
func setupBallotRoutes(router fiber.Router, handler *handlers.BallotHandler) {
	router.Get("/", handler.Form)
	router.Get("/status", handler.Status)
	router.Post("/", handler.Cast)
}

// setupAdminRoutes configures admin routes. Only login and logout are
// reachable without an admin session.
func setupAdminRoutes(router fiber.Router, handler *handlers.AdminHandler, parser middleware.SessionParser, limiter fiber.Handler) {
	router.Post("/auth/login", limiter, handler.Login)
	router.Post("/auth/logout", handler.Logout)

	protected := router.Group("", middleware.AdminAuth(parser))

	// Students
	protected.Get("/students", handler.ListStudents)
	protected.Delete("/students/:id", handler.DeleteStudent)
	protected.Get("/roster", handler.Roster)

	// Candidates
	protected.Get("/candidates", handler.ListCandidates)
	protected.Post("/candidates", handler.AddCandidate)
	protected.Delete("/candidates/:id", handler.DeleteCandidate)

	// Results
	protected.Get("/results", handler.Results)
}
