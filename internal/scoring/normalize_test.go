package scoring

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  int
	}{
		{"negative", -5, 0},
		{"zero", 0, 0},
		{"small count", 500, 26},
		{"one million", 1_000_000, 60},
		{"ten million", 10_000_000, 70},
		{"clamped at 100", 1e12, 100},
		{"NaN", math.NaN(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.value); got != tt.want {
				t.Errorf("Normalize(%v) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestNormalize_Monotonic(t *testing.T) {
	values := []float64{0, 1, 10, 250, 500, 10_000, 1_000_000, 500_000_000, 1e11, 1e13}
	prev := -1
	for _, v := range values {
		got := Normalize(v)
		if got < prev {
			t.Fatalf("Normalize(%v) = %d, below previous %d — must be non-decreasing", v, got, prev)
		}
		if got < 0 || got > 100 {
			t.Fatalf("Normalize(%v) = %d, out of [0,100]", v, got)
		}
		prev = got
	}
}

func TestParseInstallRange(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"millions with plus", "100M+", 100_000_000},
		{"thousands", "50K", 50_000},
		{"billions fractional", "1.5B", 1_500_000_000},
		{"lowercase suffix", "10m+", 10_000_000},
		{"plain number", "12345", 12345},
		{"whitespace trimmed", "  5M  ", 5_000_000},
		{"garbage", "garbage", 0},
		{"empty", "", 0},
		{"negative-ish", "-10K", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseInstallRange(tt.input); got != tt.want {
				t.Errorf("ParseInstallRange(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
