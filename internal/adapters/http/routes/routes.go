package routes

import (
	"time"

	"library-api/internal/adapters/http/handlers"
	"library-api/internal/adapters/http/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Setup configures all routes for the application
func Setup(
	app *fiber.App,
	healthHandler *handlers.HealthHandler,
	bookHandler *handlers.BookHandler,
	loanHandler *handlers.LoanHandler,
) {
	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", middleware.CacheControl(time.Hour), swagger.HandlerDefault)

	api := app.Group("/api", middleware.NoCache())
	setupBookRoutes(api.Group("/books"), bookHandler)
	setupLoanRoutes(api.Group("/loans"), loanHandler)
}

// setupBookRoutes configures catalog routes
func setupBookRoutes(router fiber.Router, h *handlers.BookHandler) {
	router.Post("/", h.Create)
	router.Get("/", h.Find)
	router.Get("/:id", h.Get)
	router.Put("/:id", h.Update)
	router.Delete("/:id", h.Delete)
	router.Get("/:id/loans", h.Loans)
}

// setupLoanRoutes configures circulation routes
func setupLoanRoutes(router fiber.Router, h *handlers.LoanHandler) {
	router.Post("/", h.Create)
	router.Get("/", h.Find)

	// must precede /:id
	router.Get("/late", h.LateLoans)
	router.Post("/late/notify", h.NotifyLateLoans)

	router.Get("/:id", h.Get)
	router.Patch("/:id", h.ReturnBook)
}
