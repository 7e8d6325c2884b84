package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/NikoCousin/ai-index-market/internal/handler"
	"github.com/NikoCousin/ai-index-market/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Tool   *handler.ToolHandler
	Vote   *handler.VoteHandler
	Stats  *handler.StatsHandler
	Health *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Probes and metrics sit outside the API group
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	listingLimit := middleware.NewListingRateLimiter()
	voteSubmitLimit := middleware.NewVoteSubmitRateLimiter()
	voteDeleteLimit := middleware.NewVoteDeleteRateLimiter()
	statsLimit := middleware.NewStatsRateLimiter()

	// API routes
	api := app.Group("/api")

	// Ranked index routes
	api.Get("/tools", h.Tool.List, listingLimit.Handler())
	api.Get("/tools/:slug", h.Tool.GetBySlug, listingLimit.Handler())
	api.Get("/categories/:categorySlug/tools", h.Tool.ListByCategory, listingLimit.Handler())
	api.Get("/use-cases/:useCaseSlug/tools", h.Tool.ListByUseCase, listingLimit.Handler())

	// Vote routes
	api.Post("/votes", h.Vote.Submit, voteSubmitLimit.Handler())
	api.Delete("/votes", h.Vote.Delete, voteDeleteLimit.Handler())

	// Stats routes
	api.Get("/stats", h.Stats.GetStats, statsLimit.Handler())
}
