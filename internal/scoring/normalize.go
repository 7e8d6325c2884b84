package scoring

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Normalize compresses an unbounded non-negative count into a 0-100
// contribution. Raw counts span tens to hundreds of millions, so the scale
// is logarithmic: a viral tool cannot saturate the index and mid-size tools
// stay distinguishable.
//
//	Normalize(0) = 0, Normalize(500) = 26, Normalize(1_000_000) = 60
func Normalize(value float64) int {
	if value <= 0 || math.IsNaN(value) {
		return 0
	}
	n := int(math.Floor(math.Log10(value+1) * 10))
	if n > 100 {
		return 100
	}
	return n
}

// installRangeRe matches store install shorthand: "100M+", "50k", "1.5B", "12345".
var installRangeRe = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)([KMBkmb])?\+?$`)

// ParseInstallRange converts store install shorthand to a count. K, M and B
// multiply by 1e3, 1e6 and 1e9; a trailing "+" is ignored; plain numbers
// pass through. Unparseable input yields 0 — garbage telemetry degrades the
// score, it never aborts it.
func ParseInstallRange(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	m := installRangeRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	switch strings.ToUpper(m[2]) {
	case "K":
		v *= 1e3
	case "M":
		v *= 1e6
	case "B":
		v *= 1e9
	}
	return v
}
