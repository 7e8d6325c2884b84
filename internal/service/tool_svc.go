package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/NikoCousin/ai-index-market/internal/model"
	"github.com/NikoCousin/ai-index-market/internal/repository"
	"github.com/NikoCousin/ai-index-market/internal/scoring"
	"github.com/NikoCousin/ai-index-market/internal/seed"
)

// ToolService materializes scored tool views from the three inputs the
// scoring core needs: live rows, the seed catalog, and the vote log. Scores
// are never stored; every read recomputes them.
type ToolService struct {
	tools   *repository.ToolRepo
	votes   *repository.VoteRepo
	catalog *seed.Catalog
	cache   *CacheService
}

func NewToolService(tools *repository.ToolRepo, votes *repository.VoteRepo, catalog *seed.Catalog, cache *CacheService) *ToolService {
	return &ToolService{tools: tools, votes: votes, catalog: catalog, cache: cache}
}

// liveRecords fetches the live rows, degrading an unreachable source to an
// empty set. The ranker reads an empty live input as seed-fallback mode, so
// a database outage downgrades the listing instead of failing it.
func (s *ToolService) liveRecords(ctx context.Context) []model.ToolRecord {
	live, err := s.tools.ListAll(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("tools: live source unavailable, falling back to seed")
		return nil
	}
	return live
}

// voteEvents fetches the vote log, degrading errors to an empty log.
func (s *ToolService) voteEvents(ctx context.Context) []model.VoteEvent {
	events, err := s.votes.ListEvents(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("votes: event source unavailable, scoring without votes")
		return nil
	}
	return events
}

// Ranking returns the fully ordered listing, cache-aside.
func (s *ToolService) Ranking(ctx context.Context) (*model.RankingResponse, error) {
	now := time.Now()
	live := s.liveRecords(ctx)
	events := s.voteEvents(ctx)
	seedRecords := s.catalog.Records()

	mode := scoring.ModeFor(live)
	ranked := scoring.Rank(live, seedRecords, events, now)

	resp := &model.RankingResponse{
		Mode:        mode.String(),
		Tools:       make([]model.RankingEntry, 0, len(ranked)),
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}
	for i := range ranked {
		resp.Tools = append(resp.Tools, rankingEntry(i+1, &ranked[i]))
	}
	return resp, nil
}

// RankingCached serves the listing from Redis when possible, recomputing
// and repopulating on a miss. Returns the raw JSON payload plus whether it
// was a cache hit.
func (s *ToolService) RankingCached(ctx context.Context) ([]byte, bool, error) {
	if s.cache != nil {
		cached, err := s.cache.GetRanking(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("cache: ranking get error")
		} else if cached != nil {
			return cached, true, nil
		}
	}

	resp, err := s.Ranking(ctx)
	if err != nil {
		return nil, false, err
	}
	if s.cache != nil {
		if err := s.cache.SetRanking(ctx, resp); err != nil {
			log.Warn().Err(err).Msg("cache: ranking set error")
		}
	}

	// Marshal once here so hit and miss paths serve identical bytes.
	data, err := json.Marshal(resp)
	return data, false, err
}

// Lookup reconciles and scores a single tool on demand, independent of a
// full ranking pass. The scoring model follows the record's provenance: a
// live row gets the market index, a seed-only tool the tier/vote score.
func (s *ToolService) Lookup(ctx context.Context, slug string) (*model.ToolResponse, error) {
	var live *model.ToolRecord
	row, err := s.tools.FindBySlug(ctx, slug)
	switch {
	case err == nil:
		live = row
	case errors.Is(err, pgx.ErrNoRows):
		// Seed may still have it.
	default:
		log.Warn().Err(err).Str("slug", slug).Msg("tools: live lookup failed, trying seed")
	}

	rec, err := scoring.Reconcile(live, s.catalog.BySlug(slug), slug)
	if err != nil {
		return nil, err
	}

	counts := scoring.AggregateVotes(s.voteEvents(ctx), time.Now())[rec.Slug]

	strategy := scoring.StrategyFor(scoring.ModeSeedFallback)
	if live != nil {
		strategy = scoring.StrategyFor(scoring.ModeAggregate)
	}
	strategy.Score(&rec, counts)

	return &model.ToolResponse{
		Slug:             rec.Slug,
		Name:             rec.Name,
		Tagline:          rec.Tagline,
		DescriptionShort: rec.DescriptionShort,
		DescriptionLong:  rec.DescriptionLong,
		PricingModel:     rec.PricingModel,
		Categories:       emptyIfNil(rec.Categories),
		UseCases:         rec.UseCases,
		Links:            rec.Links,
		Specs:            rec.Specs,
		IndexScore:       rec.IndexScore,
		MarketIndexScore: rec.MarketIndexScore,
		TrendPercentage:  rec.TrendPercentage,
		TotalVotes:       counts.TotalVotes,
	}, nil
}

// LookupCached is the cache-aside variant of Lookup.
func (s *ToolService) LookupCached(ctx context.Context, slug string) ([]byte, bool, error) {
	if s.cache != nil {
		cached, err := s.cache.GetTool(ctx, slug)
		if err != nil {
			log.Warn().Err(err).Str("slug", slug).Msg("cache: tool get error")
		} else if cached != nil {
			return cached, true, nil
		}
	}

	resp, err := s.Lookup(ctx, slug)
	if err != nil {
		return nil, false, err
	}
	if s.cache != nil {
		if err := s.cache.SetTool(ctx, slug, resp); err != nil {
			log.Warn().Err(err).Str("slug", slug).Msg("cache: tool set error")
		}
	}

	data, err := json.Marshal(resp)
	return data, false, err
}

// ByCategory returns a ranked listing restricted to one category. Live rows
// are matched by the category's display name (the flat DB column holds
// names, not slugs); the seed subset is matched by slug.
func (s *ToolService) ByCategory(ctx context.Context, categorySlug string) (*model.RankingResponse, error) {
	cat := s.catalog.CategoryBySlug(categorySlug)
	if cat == nil {
		return nil, scoring.ErrToolNotFound
	}

	live, err := s.tools.FindByCategory(ctx, cat.Name)
	if err != nil {
		log.Warn().Err(err).Str("category", categorySlug).Msg("tools: live category lookup failed, falling back to seed")
		live = nil
	}

	return s.rankSubset(ctx, live, s.catalog.ToolsByCategory(categorySlug))
}

// ByUseCase returns a ranked listing restricted to one use case. Use cases
// exist only in the curated seed, so the live side is always empty.
func (s *ToolService) ByUseCase(ctx context.Context, useCaseSlug string) (*model.RankingResponse, error) {
	if s.catalog.UseCaseBySlug(useCaseSlug) == nil {
		return nil, scoring.ErrToolNotFound
	}
	return s.rankSubset(ctx, nil, s.catalog.ToolsByUseCase(useCaseSlug))
}

func (s *ToolService) rankSubset(ctx context.Context, live, seedRecords []model.ToolRecord) (*model.RankingResponse, error) {
	now := time.Now()
	ranked := scoring.Rank(live, seedRecords, s.voteEvents(ctx), now)

	resp := &model.RankingResponse{
		Mode:        scoring.ModeFor(live).String(),
		Tools:       make([]model.RankingEntry, 0, len(ranked)),
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}
	for i := range ranked {
		resp.Tools = append(resp.Tools, rankingEntry(i+1, &ranked[i]))
	}
	return resp, nil
}

// Stats returns aggregate platform counters.
func (s *ToolService) Stats(ctx context.Context) (*model.StatsResponse, error) {
	totalVotes, totalVoters, votes24h, err := s.votes.Stats(ctx)
	if err != nil {
		return nil, err
	}

	liveCount, err := s.tools.Count(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("tools: count failed, reporting seed size")
		liveCount = 0
	}

	return &model.StatsResponse{
		TotalTools:  liveCount,
		SeedTools:   len(s.catalog.Records()),
		TotalVotes:  totalVotes,
		TotalVoters: totalVoters,
		Votes24h:    votes24h,
		Categories:  len(s.catalog.Categories),
	}, nil
}

func rankingEntry(rank int, rec *model.ToolRecord) model.RankingEntry {
	return model.RankingEntry{
		Rank:             rank,
		Slug:             rec.Slug,
		Name:             rec.Name,
		Tagline:          rec.Tagline,
		PricingModel:     rec.PricingModel,
		Categories:       emptyIfNil(rec.Categories),
		IndexScore:       rec.IndexScore,
		MarketIndexScore: rec.MarketIndexScore,
		TrendPercentage:  rec.TrendPercentage,
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
