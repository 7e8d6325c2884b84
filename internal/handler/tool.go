package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/NikoCousin/ai-index-market/internal/middleware"
	"github.com/NikoCousin/ai-index-market/internal/scoring"
	"github.com/NikoCousin/ai-index-market/internal/service"
)

type ToolHandler struct {
	svc *service.ToolService
}

func NewToolHandler(svc *service.ToolService) *ToolHandler {
	return &ToolHandler{svc: svc}
}

// List handles GET /api/tools — the full ranked index.
func (h *ToolHandler) List(c fiber.Ctx) error {
	start := time.Now()
	data, hit, err := h.svc.RankingCached(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build ranking")
	}

	if !hit && Metrics.RankDuration != nil {
		Metrics.RankDuration.Observe(time.Since(start).Seconds())
	}
	recordCacheOutcome(hit)
	c.Set("X-Cache", cacheHeader(hit))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// GetBySlug handles GET /api/tools/:slug
func (h *ToolHandler) GetBySlug(c fiber.Ctx) error {
	slug, errMsg := middleware.ValidateSlug(c.Params("slug"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	data, hit, err := h.svc.LookupCached(c.Context(), slug)
	if err != nil {
		if errors.Is(err, scoring.ErrToolNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Tool not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch tool")
	}

	recordCacheOutcome(hit)
	c.Set("X-Cache", cacheHeader(hit))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// ListByCategory handles GET /api/categories/:categorySlug/tools
func (h *ToolHandler) ListByCategory(c fiber.Ctx) error {
	slug, errMsg := middleware.ValidateSlug(c.Params("categorySlug"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.ByCategory(c.Context(), slug)
	if err != nil {
		if errors.Is(err, scoring.ErrToolNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Category not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build category listing")
	}

	return c.JSON(resp)
}

// ListByUseCase handles GET /api/use-cases/:useCaseSlug/tools
func (h *ToolHandler) ListByUseCase(c fiber.Ctx) error {
	slug, errMsg := middleware.ValidateSlug(c.Params("useCaseSlug"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.ByUseCase(c.Context(), slug)
	if err != nil {
		if errors.Is(err, scoring.ErrToolNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Use case not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build use-case listing")
	}

	return c.JSON(resp)
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

// recordCacheOutcome feeds the cache hit/miss counters; registration may be
// skipped in tests, so both collectors are nil-checked.
func recordCacheOutcome(hit bool) {
	if hit {
		if Metrics.CacheHits != nil {
			Metrics.CacheHits.Inc()
		}
		return
	}
	if Metrics.CacheMisses != nil {
		Metrics.CacheMisses.Inc()
	}
}
