package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/NikoCousin/ai-index-market/internal/model"
	"github.com/NikoCousin/ai-index-market/internal/repository"
	"github.com/NikoCousin/ai-index-market/internal/scoring"
	"github.com/NikoCousin/ai-index-market/internal/seed"
)

type VoteService struct {
	repo    *repository.VoteRepo
	catalog *seed.Catalog
	cache   *CacheService
}

func NewVoteService(repo *repository.VoteRepo, catalog *seed.Catalog, cache *CacheService) *VoteService {
	return &VoteService{repo: repo, catalog: catalog, cache: cache}
}

// Toggle processes a vote submission. A voter's repeat vote on the same
// tool removes the earlier one, keeping at most one active vote per
// (slug, voter) pair.
func (s *VoteService) Toggle(ctx context.Context, req model.VoteRequest, ipHash string) (*model.VoteResponse, error) {
	voted, total, err := s.repo.Toggle(ctx, req.ToolSlug, req.VoterID, ipHash, req.UserAgent)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, req.ToolSlug)

	return &model.VoteResponse{
		Success:    true,
		Voted:      voted,
		TotalVotes: total,
		IndexScore: s.displayScore(req.ToolSlug, total),
	}, nil
}

// displayScore recomputes the tool's tier/vote score for immediate voter
// feedback. It must match what the read endpoints derive, so the tier comes
// from the catalog rather than being assumed.
func (s *VoteService) displayScore(slug string, total int) string {
	tier := 0
	if s.catalog != nil {
		if rec := s.catalog.BySlug(slug); rec != nil {
			tier = rec.Tier
		}
	}
	_, formatted := scoring.TierVoteScore(tier, total)
	return formatted
}

// Delete removes a voter's vote outright.
func (s *VoteService) Delete(ctx context.Context, req model.VoteDeleteRequest) error {
	if err := s.repo.Delete(ctx, req.ToolSlug, req.VoterID); err != nil {
		return err
	}
	s.invalidate(ctx, req.ToolSlug)
	return nil
}

// invalidate drops the caches a vote change staled. The rank worker does
// the same in batches; doing it inline keeps the voter's next read fresh
// even if the worker lags.
func (s *VoteService) invalidate(ctx context.Context, slug string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateTool(ctx, slug); err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("cache: tool invalidate error")
	}
	if err := s.cache.InvalidateRanking(ctx); err != nil {
		log.Warn().Err(err).Msg("cache: ranking invalidate error")
	}
}
