package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"library-api/internal/adapters/http/handlers"
	"library-api/internal/adapters/http/middleware"
	"library-api/internal/adapters/http/routes"
	"library-api/internal/adapters/persistence/models"
	"library-api/internal/adapters/persistence/repositories"
	"library-api/internal/config"
	"library-api/internal/core/services"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/robfig/cron/v3"

	_ "library-api/docs" // Swagger docs
)

// @title Library API
// @version 1.0
// @description Book catalog, loans and late loan reminders

// @contact.name API Support
// @contact.email support@library-api.local

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api

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
	defer config.CloseDatabase(db)

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	if cfg.IsDev() && cfg.SeedData {
		if err := config.NewSeeder(db).Run(); err != nil {
			log.Printf("⚠️ Warning: Failed to seed data: %v", err)
		}
	}

	// Initialize repositories
	bookRepo := repositories.NewBookRepository(db)
	loanRepo := repositories.NewLoanRepository(db)

	// Initialize services
	bookService := services.NewBookService(bookRepo)
	loanService := services.NewLoanService(loanRepo, cfg.LateLoans.Days)
	emailService := services.NewEmailService(cfg.Mail)
	notifier := services.NewLateLoanNotifier(loanService, emailService, cfg.LateLoans, cronLogger(cfg))

	// Start late loan reminders (daily by default)
	if cfg.LateLoans.Enabled {
		if err := notifier.Start(); err != nil {
			log.Fatalf("❌ Failed to start late loan notifier: %v", err)
		}
		defer notifier.Stop()
	}

	// Create Fiber app
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	app := fiber.New(fiber.Config{
		AppName:      "Library API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app,
		handlers.NewHealthHandler(db, cfg),
		handlers.NewBookHandler(bookService, loanService),
		handlers.NewLoanHandler(loanService, bookService, notifier),
	)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("❌ Failed to start server: %v", err)
	}
}

// cronLogger logs every scheduler event in dev and only errors in prod
func cronLogger(cfg *config.Config) cron.Logger {
	l := log.New(os.Stdout, "cron: ", log.LstdFlags)
	if cfg.IsDev() {
		return cron.VerbosePrintfLogger(l)
	}
	return cron.PrintfLogger(l)
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
