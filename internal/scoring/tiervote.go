package scoring

import "github.com/NikoCousin/ai-index-market/internal/model"

// Base scores for each curated tier on the 0-100 index scale.
const (
	tier1Base = 92.0
	tier2Base = 78.0
	tier3Base = 50.0

	voteWeight = 0.1
	maxScore   = 99.9
)

// TierVoteScore is the legacy scoring model: a tier-determined base plus 0.1
// per community vote, capped at 99.9. It carries the ranking whenever no
// live telemetry exists at all.
func TierVoteScore(tier, totalVotes int) (float64, string) {
	var base float64
	switch tier {
	case 1:
		base = tier1Base
	case 2:
		base = tier2Base
	default:
		base = tier3Base
	}

	score := base + float64(totalVotes)*voteWeight
	if score > maxScore {
		score = maxScore
	}
	return score, model.FormatScore(score)
}
