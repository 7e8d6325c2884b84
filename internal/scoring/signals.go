package scoring

import (
	"math"

	"github.com/NikoCousin/ai-index-market/internal/model"
)

// Signal weights. Website traffic is the strongest adoption signal, social
// and video attention corroborate it, and mobile footprint is tertiary
// because that channel has the worst data completeness.
const (
	trafficWeight = 0.50
	socialWeight  = 0.30
	mobileWeight  = 0.20
)

// Signals holds the raw telemetry for one tool. Zero means absent; the
// telemetry sources never report negative counts.
type Signals struct {
	TrafficMonthly   float64
	XMentions30d     float64
	YoutubeVideos90d float64
	IOSReviews       float64
	AndroidInstalls  string
	AndroidReviews   float64
}

// SignalsFrom extracts the telemetry of a reconciled record.
func SignalsFrom(rec *model.ToolRecord) Signals {
	deref := func(p *float64) float64 {
		if p == nil {
			return 0
		}
		return *p
	}
	return Signals{
		TrafficMonthly:   deref(rec.TrafficMonthlyEst),
		XMentions30d:     deref(rec.XMentions30d),
		YoutubeVideos90d: deref(rec.YoutubeVideos90d),
		IOSReviews:       deref(rec.IOSReviewsCount),
		AndroidInstalls:  rec.AndroidInstallRange.String(),
		AndroidReviews:   deref(rec.AndroidReviewsCount),
	}
}

// MarketIndexScore aggregates normalized sub-signals into a single 0-100
// score: traffic 50%, social attention 30%, mobile footprint 20%. The
// social and mobile sub-scores average only over the signals actually
// present, so a tool with no iOS app is not penalised for the missing
// channel.
func MarketIndexScore(sig Signals) int {
	trafficScore := float64(Normalize(sig.TrafficMonthly))
	socialScore := meanPresent(sig.XMentions30d, sig.YoutubeVideos90d)
	mobileScore := meanPresent(
		ParseInstallRange(sig.AndroidInstalls),
		sig.IOSReviews,
		sig.AndroidReviews,
	)

	score := int(math.Round(trafficScore*trafficWeight + socialScore*socialWeight + mobileScore*mobileWeight))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// meanPresent averages the normalized values of the inputs that are present
// (> 0). No present inputs → 0.
func meanPresent(values ...float64) float64 {
	var sum float64
	var n int
	for _, v := range values {
		if v > 0 {
			sum += float64(Normalize(v))
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
