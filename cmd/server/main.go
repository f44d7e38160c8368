package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Raju-02-19/college-voting-system/internal/adapters/http/middleware"
	"github.com/Raju-02-19/college-voting-system/internal/adapters/http/routes"
	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/models"
	"github.com/Raju-02-19/college-voting-system/internal/adapters/persistence/repositories"
	"github.com/Raju-02-19/college-voting-system/internal/adapters/roster"
	"github.com/Raju-02-19/college-voting-system/internal/adapters/storage"
	"github.com/Raju-02-19/college-voting-system/internal/config"
	"github.com/Raju-02-19/college-voting-system/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"

	_ "github.com/Raju-02-19/college-voting-system/docs" // Swagger docs
)

// @title College Voting API
// @version 1.0
// @description Student council election: roster-gated registration, one ballot per student, admin tally.

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const bodyLimit = 8 * 1024 * 1024

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables and unique indexes if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Bootstrap admin
	seeder := config.NewSeeder(repositories.NewAdminRepository(db), cfg.Admin)
	if err := seeder.Run(context.Background()); err != nil {
		log.Fatalf("❌ Failed to seed admin: %v", err)
	}

	// Eligibility roster (read once)
	eligible, err := roster.Load(cfg.RosterPath)
	if err != nil {
		log.Fatalf("❌ Failed to load roster: %v", err)
	}

	images, err := storage.NewLocalImageStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("❌ Failed to prepare upload dir: %v", err)
	}

	mailer := services.NewNotificationService(cfg.Mail)
	if !mailer.Enabled() {
		log.Println("⚠️ MAIL_USERNAME/MAIL_PASSWORD not set, one-time codes will not be emailed")
	}

	// Drop expired pending registrations
	pending := services.NewPendingStore()
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every 5m", func() {
		if n := pending.Sweep(); n > 0 {
			log.Printf("🧹 Swept %d expired registrations", n)
		}
	}); err != nil {
		log.Fatalf("❌ Failed to schedule sweep: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "College Voting API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    bodyLimit,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, db, cfg, routes.Options{
		Roster:  eligible,
		Pending: pending,
		Mailer:  mailer,
		Images:  images,
	})

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
