package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// StringOrNumber accepts a JSON string or number and stores it as a string.
// The android_installs_range column holds either shorthand ("100M+") or a
// plain count depending on when the row was imported.
type StringOrNumber string

func (s *StringOrNumber) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*s = ""
		return nil
	}
	if len(raw) > 0 && raw[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = StringOrNumber(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = StringOrNumber(n.String())
	return nil
}

func (s StringOrNumber) String() string { return string(s) }

// ToolLinks groups a tool's outbound URLs. Resolved field-by-field during
// reconciliation: a live row with only website_url still inherits the rest
// from seed.
type ToolLinks struct {
	WebsiteURL string `json:"websiteUrl,omitempty"`
	PricingURL string `json:"pricingUrl,omitempty"`
	DocsURL    string `json:"docsUrl,omitempty"`
	GithubURL  string `json:"githubUrl,omitempty"`
	XURL       string `json:"xUrl,omitempty"`
	DiscordURL string `json:"discordUrl,omitempty"`
	YoutubeURL string `json:"youtubeUrl,omitempty"`
}

// ToolSpecs groups a tool's technical details.
type ToolSpecs struct {
	Developer  string `json:"developer,omitempty"`
	LaunchYear string `json:"launchYear,omitempty"`
	HasAPI     bool   `json:"hasApi"`
	MobileApp  bool   `json:"mobileApp"`
}

// ToolRecord is the canonical representation of one listed tool. Live rows
// and seed entries each fill a subset of these fields; reconciliation merges
// the two. Telemetry fields are pointers because absent and zero mean
// different things to the scoring pipeline.
type ToolRecord struct {
	Slug             string   `json:"slug"`
	Name             string   `json:"name"`
	Tagline          string   `json:"tagline,omitempty"`
	DescriptionShort string   `json:"descriptionShort,omitempty"`
	DescriptionLong  string   `json:"descriptionLong,omitempty"`
	AnalystBrief     string   `json:"analystBrief,omitempty"`
	Status           string   `json:"status,omitempty"`
	SkillLevel       string   `json:"skillLevel,omitempty"`
	PricingModel     string   `json:"pricingModel,omitempty"`
	Platforms        []string `json:"platforms,omitempty"`
	Categories       []string `json:"categories,omitempty"`
	UseCases         []string `json:"useCases,omitempty"`

	// Category is the flat single-category string live rows carry. The
	// reconciler wraps it into Categories when the set form is missing.
	Category string `json:"-"`

	Links ToolLinks `json:"links"`
	Specs ToolSpecs `json:"specs"`

	// Tier is the manually curated confidence bucket (1 best). Only the
	// tier/vote scoring model reads it.
	Tier int `json:"tier,omitempty"`

	// Telemetry. nil means unknown; values are never negative.
	TrafficMonthlyEst   *float64       `json:"trafficMonthlyEst,omitempty"`
	XMentions30d        *float64       `json:"xMentions30d,omitempty"`
	YoutubeVideos90d    *float64       `json:"youtubeVideos90d,omitempty"`
	IOSReviewsCount     *float64       `json:"iosReviewsCount,omitempty"`
	AndroidInstallRange StringOrNumber `json:"androidInstallsRange,omitempty"`
	AndroidReviewsCount *float64       `json:"androidReviewsCount,omitempty"`

	LastVerifiedAt *time.Time `json:"lastVerifiedAt,omitempty"`

	// Derived fields, recomputed on every read, never persisted.
	RawScore         float64 `json:"rawScore"`
	IndexScore       string  `json:"indexScore"`
	MarketIndexScore int     `json:"marketIndexScore"`
	TrendPercentage  string  `json:"trendPercentage"`
}

// ToolResponse is the API response for a single tool lookup.
type ToolResponse struct {
	Slug             string    `json:"slug"`
	Name             string    `json:"name"`
	Tagline          string    `json:"tagline,omitempty"`
	DescriptionShort string    `json:"descriptionShort,omitempty"`
	DescriptionLong  string    `json:"descriptionLong,omitempty"`
	PricingModel     string    `json:"pricingModel,omitempty"`
	Categories       []string  `json:"categories"`
	UseCases         []string  `json:"useCases,omitempty"`
	Links            ToolLinks `json:"links"`
	Specs            ToolSpecs `json:"specs"`
	IndexScore       string    `json:"indexScore"`
	MarketIndexScore int       `json:"marketIndexScore"`
	TrendPercentage  string    `json:"trendPercentage"`
	TotalVotes       int       `json:"totalVotes"`
}

// RankingEntry is one row of the ranked listing response.
type RankingEntry struct {
	Rank             int      `json:"rank"`
	Slug             string   `json:"slug"`
	Name             string   `json:"name"`
	Tagline          string   `json:"tagline,omitempty"`
	PricingModel     string   `json:"pricingModel,omitempty"`
	Categories       []string `json:"categories"`
	IndexScore       string   `json:"indexScore"`
	MarketIndexScore int      `json:"marketIndexScore"`
	TrendPercentage  string   `json:"trendPercentage"`
}

// RankingResponse is the API response for the ranked listing.
type RankingResponse struct {
	Mode        string         `json:"mode"`
	Tools       []RankingEntry `json:"tools"`
	GeneratedAt string         `json:"generatedAt"`
}

// StatsResponse is the API response for global statistics.
type StatsResponse struct {
	TotalTools  int `json:"totalTools"`
	SeedTools   int `json:"seedTools"`
	TotalVotes  int `json:"totalVotes"`
	TotalVoters int `json:"totalVoters"`
	Votes24h    int `json:"votes24h"`
	Categories  int `json:"categories"`
}

// FloatPtr is a small helper for building telemetry literals.
func FloatPtr(v float64) *float64 { return &v }

// FormatScore renders a raw score with one decimal, matching the index
// score display format.
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
