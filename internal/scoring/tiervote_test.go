package scoring

import (
	"math"
	"testing"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestTierVoteScore(t *testing.T) {
	tests := []struct {
		name       string
		tier       int
		totalVotes int
		wantScore  float64
		wantFmt    string
	}{
		{"tier 1, no votes", 1, 0, 92.0, "92.0"},
		{"tier 1, capped", 1, 100, 99.9, "99.9"},
		{"tier 2, no votes", 2, 0, 78.0, "78.0"},
		{"tier 2, some votes", 2, 30, 81.0, "81.0"},
		{"tier 3, no votes", 3, 0, 50.0, "50.0"},
		{"unset tier falls back to tier 3", 0, 0, 50.0, "50.0"},
		{"unknown tier falls back to tier 3", 7, 5, 50.5, "50.5"},
		{"tier 3, heavy votes capped", 3, 1000, 99.9, "99.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, formatted := TierVoteScore(tt.tier, tt.totalVotes)
			if !almostEqual(score, tt.wantScore, 0.0001) {
				t.Errorf("score = %v, want %v", score, tt.wantScore)
			}
			if formatted != tt.wantFmt {
				t.Errorf("formatted = %q, want %q", formatted, tt.wantFmt)
			}
		})
	}
}
