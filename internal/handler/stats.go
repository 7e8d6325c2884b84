package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/NikoCousin/ai-index-market/internal/middleware"
	"github.com/NikoCousin/ai-index-market/internal/service"
)

type StatsHandler struct {
	svc *service.ToolService
}

func NewStatsHandler(svc *service.ToolService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	stats, err := h.svc.Stats(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch statistics")
	}

	return c.JSON(stats)
}
