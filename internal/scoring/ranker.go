package scoring

import (
	"sort"
	"time"

	"github.com/NikoCousin/ai-index-market/internal/model"
)

// Mode selects which scoring strategy a ranking pass uses. A pass applies
// exactly one strategy to every tool so relative ordering stays meaningful.
type Mode int

const (
	// ModeSeedFallback ranks the seed snapshot with the tier/vote model.
	// Chosen whenever the live store yields no rows.
	ModeSeedFallback Mode = iota
	// ModeAggregate ranks live rows (enriched from seed) with the
	// telemetry-weighted market index model.
	ModeAggregate
)

func (m Mode) String() string {
	if m == ModeAggregate {
		return "aggregate"
	}
	return "seed_fallback"
}

// ModeFor derives the ranking mode from the live input alone. No hidden
// globals: an empty live set is a normal, non-error input that the caller
// may pass deliberately when the live source is unreachable.
func ModeFor(live []model.ToolRecord) Mode {
	if len(live) == 0 {
		return ModeSeedFallback
	}
	return ModeAggregate
}

// Strategy scores one reconciled record given its vote counts, filling the
// record's derived fields. Both models coexist while the index migrates
// from curated tiers to telemetry; keeping them behind one interface
// documents the transition instead of silently picking a side.
type Strategy interface {
	Score(rec *model.ToolRecord, counts model.VoteCounts)
}

// TierVoteStrategy applies the legacy tier + vote model.
type TierVoteStrategy struct{}

func (TierVoteStrategy) Score(rec *model.ToolRecord, counts model.VoteCounts) {
	raw, formatted := TierVoteScore(rec.Tier, counts.TotalVotes)
	rec.RawScore = raw
	rec.IndexScore = formatted
	rec.MarketIndexScore = int(raw)
	rec.TrendPercentage = EstimateTrend(counts.RecentVotes)
}

// MarketIndexStrategy applies the telemetry-weighted model.
type MarketIndexStrategy struct{}

func (MarketIndexStrategy) Score(rec *model.ToolRecord, counts model.VoteCounts) {
	score := MarketIndexScore(SignalsFrom(rec))
	rec.RawScore = float64(score)
	rec.IndexScore = model.FormatScore(float64(score))
	rec.MarketIndexScore = score
	rec.TrendPercentage = EstimateTrend(counts.RecentVotes)
}

// StrategyFor returns the strategy a mode mandates.
func StrategyFor(mode Mode) Strategy {
	if mode == ModeAggregate {
		return MarketIndexStrategy{}
	}
	return TierVoteStrategy{}
}

// Rank produces the fully ordered tool list for one request. It reconciles
// each record against its counterpart by slug, scores it with the mode's
// strategy, attaches the trend estimate, and sorts by descending score.
// Ties keep input order; repeated calls with identical inputs (including
// now) yield identical output.
func Rank(live, seed []model.ToolRecord, events []model.VoteEvent, now time.Time) []model.ToolRecord {
	mode := ModeFor(live)
	strategy := StrategyFor(mode)
	counts := AggregateVotes(events, now)

	var ranked []model.ToolRecord
	switch mode {
	case ModeSeedFallback:
		ranked = make([]model.ToolRecord, 0, len(seed))
		for i := range seed {
			rec, err := Reconcile(nil, &seed[i], seed[i].Slug)
			if err != nil {
				continue
			}
			strategy.Score(&rec, counts[rec.Slug])
			ranked = append(ranked, rec)
		}
	case ModeAggregate:
		seedBySlug := make(map[string]*model.ToolRecord, len(seed))
		for i := range seed {
			seedBySlug[seed[i].Slug] = &seed[i]
		}
		ranked = make([]model.ToolRecord, 0, len(live))
		for i := range live {
			slug := live[i].Slug
			rec, err := Reconcile(&live[i], seedBySlug[slug], slug)
			if err != nil {
				continue
			}
			strategy.Score(&rec, counts[rec.Slug])
			ranked = append(ranked, rec)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RawScore > ranked[j].RawScore
	})
	return ranked
}
