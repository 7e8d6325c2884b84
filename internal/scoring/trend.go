package scoring

import "fmt"

// Trend curve constants. The curve is deliberately nonlinear: a handful of
// recent votes on an otherwise quiet tool should read as a surge.
const (
	trendBaseline   = "+1.2%"
	trendPerVote    = 15
	trendFloor      = 20
	trendVolatility = 98
)

// EstimateTrend maps a 24h vote count to the displayed trend percentage.
// Zero recent votes renders the stable baseline rather than zero growth;
// the cap avoids implying near-infinite momentum.
func EstimateTrend(recentVotes int) string {
	if recentVotes <= 0 {
		return trendBaseline
	}
	volatility := recentVotes*trendPerVote + trendFloor
	if volatility > trendVolatility {
		volatility = trendVolatility
	}
	return fmt.Sprintf("+%.1f%%", float64(volatility))
}
