package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/NikoCousin/ai-index-market/internal/middleware"
	"github.com/NikoCousin/ai-index-market/internal/model"
	"github.com/NikoCousin/ai-index-market/internal/service"
	"github.com/NikoCousin/ai-index-market/pkg/hash"
)

type VoteHandler struct {
	svc    *service.VoteService
	ipSalt string
}

func NewVoteHandler(svc *service.VoteService, ipSalt string) *VoteHandler {
	return &VoteHandler{svc: svc, ipSalt: ipSalt}
}

// Submit handles POST /api/votes. Voting is a toggle: the same voter
// submitting for the same tool again withdraws the earlier vote.
func (h *VoteHandler) Submit(c fiber.Ctx) error {
	var req model.VoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	slug, errMsg := middleware.ValidateSlug(req.ToolSlug)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.ToolSlug = slug

	voterID, errMsg := middleware.ValidateVoterID(req.VoterID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.VoterID = voterID

	req.UserAgent = middleware.ValidateUserAgent(req.UserAgent)

	// Raw IPs never reach the database.
	ipHash := hash.HashIP(c.IP(), h.ipSalt)

	resp, err := h.svc.Toggle(c.Context(), req, ipHash)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit vote")
	}

	action := "retract"
	if resp.Voted {
		action = "cast"
	}
	if Metrics.VotesTotal != nil {
		Metrics.VotesTotal.WithLabelValues(action).Inc()
	}

	return c.JSON(resp)
}

// Delete handles DELETE /api/votes
func (h *VoteHandler) Delete(c fiber.Ctx) error {
	var req model.VoteDeleteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	slug, errMsg := middleware.ValidateSlug(req.ToolSlug)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.ToolSlug = slug

	voterID, errMsg := middleware.ValidateVoterID(req.VoterID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.VoterID = voterID

	if err := h.svc.Delete(c.Context(), req); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Vote not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete vote")
	}

	if Metrics.VotesTotal != nil {
		Metrics.VotesTotal.WithLabelValues("delete").Inc()
	}

	return c.JSON(fiber.Map{"success": true})
}
