package scoring

import (
	"time"

	"github.com/NikoCousin/ai-index-market/internal/model"
)

// RecentWindow is the trailing window used for the "recent votes" count.
const RecentWindow = 24 * time.Hour

// AggregateVotes reduces a raw vote log into per-slug counts in a single
// pass. The result is order independent. Events with a zero timestamp count
// toward the total but never toward the recent window; events for slugs
// unknown to both sources still accumulate — whether they are displayed is
// the ranker's call, not this function's.
func AggregateVotes(events []model.VoteEvent, now time.Time) map[string]model.VoteCounts {
	counts := make(map[string]model.VoteCounts, len(events))
	cutoff := now.Add(-RecentWindow)

	for _, ev := range events {
		if ev.ToolSlug == "" {
			continue
		}
		c := counts[ev.ToolSlug]
		c.TotalVotes++
		// Boundary is inclusive: an event exactly 24h old is still recent.
		if !ev.CreatedAt.IsZero() && !ev.CreatedAt.Before(cutoff) {
			c.RecentVotes++
		}
		counts[ev.ToolSlug] = c
	}
	return counts
}
