package scoring

import (
	"errors"
	"time"

	"github.com/NikoCousin/ai-index-market/internal/model"
)

// ErrToolNotFound is returned when a slug resolves to a record in neither
// the live store nor the seed snapshot. It is the only hard failure the
// scoring core surfaces.
var ErrToolNotFound = errors.New("tool not found")

// Reconcile merges a live database row and a static seed entry for the same
// logical tool into one canonical record. Resolution runs per field, live
// value first, seed as fallback, zero value last. The two sources are
// maintained independently and neither is guaranteed complete, so a
// whole-record precedence would silently drop fields only one side has.
func Reconcile(live, seed *model.ToolRecord, slug string) (model.ToolRecord, error) {
	if live == nil && seed == nil {
		return model.ToolRecord{}, ErrToolNotFound
	}
	if live == nil {
		live = &model.ToolRecord{}
	}
	if seed == nil {
		seed = &model.ToolRecord{}
	}

	rec := model.ToolRecord{
		Slug:             coalesce(slug, coalesce(live.Slug, seed.Slug)),
		Name:             coalesce(live.Name, seed.Name),
		Tagline:          coalesce(live.Tagline, seed.Tagline),
		DescriptionShort: coalesce(live.DescriptionShort, seed.DescriptionShort),
		DescriptionLong:  coalesce(live.DescriptionLong, seed.DescriptionLong),
		AnalystBrief:     coalesce(live.AnalystBrief, seed.AnalystBrief),
		Status:           coalesce(live.Status, seed.Status),
		SkillLevel:       coalesce(live.SkillLevel, seed.SkillLevel),
		PricingModel:     coalesce(live.PricingModel, seed.PricingModel),

		Platforms:  coalesceSlice(live.Platforms, seed.Platforms),
		Categories: coalesceSlice(categoriesOf(live), categoriesOf(seed)),
		UseCases:   coalesceSlice(live.UseCases, seed.UseCases),

		Links: model.ToolLinks{
			WebsiteURL: coalesce(live.Links.WebsiteURL, seed.Links.WebsiteURL),
			PricingURL: coalesce(live.Links.PricingURL, seed.Links.PricingURL),
			DocsURL:    coalesce(live.Links.DocsURL, seed.Links.DocsURL),
			GithubURL:  coalesce(live.Links.GithubURL, seed.Links.GithubURL),
			XURL:       coalesce(live.Links.XURL, seed.Links.XURL),
			DiscordURL: coalesce(live.Links.DiscordURL, seed.Links.DiscordURL),
			YoutubeURL: coalesce(live.Links.YoutubeURL, seed.Links.YoutubeURL),
		},
		Specs: model.ToolSpecs{
			Developer:  coalesce(live.Specs.Developer, seed.Specs.Developer),
			LaunchYear: coalesce(live.Specs.LaunchYear, seed.Specs.LaunchYear),
			// false is indistinguishable from absent in either source, so a
			// set flag on either side wins.
			HasAPI:    live.Specs.HasAPI || seed.Specs.HasAPI,
			MobileApp: live.Specs.MobileApp || seed.Specs.MobileApp,
		},

		Tier: coalesceInt(live.Tier, seed.Tier),

		TrafficMonthlyEst:   coalescePtr(live.TrafficMonthlyEst, seed.TrafficMonthlyEst),
		XMentions30d:        coalescePtr(live.XMentions30d, seed.XMentions30d),
		YoutubeVideos90d:    coalescePtr(live.YoutubeVideos90d, seed.YoutubeVideos90d),
		IOSReviewsCount:     coalescePtr(live.IOSReviewsCount, seed.IOSReviewsCount),
		AndroidReviewsCount: coalescePtr(live.AndroidReviewsCount, seed.AndroidReviewsCount),

		LastVerifiedAt: coalesceTime(live.LastVerifiedAt, seed.LastVerifiedAt),
	}

	rec.AndroidInstallRange = live.AndroidInstallRange
	if rec.AndroidInstallRange == "" {
		rec.AndroidInstallRange = seed.AndroidInstallRange
	}

	return rec, nil
}

// categoriesOf returns a record's category set, wrapping the flat
// single-category string live rows carry into a singleton slice when the set
// form is missing. Sets replace each other during resolution; they are never
// unioned.
func categoriesOf(rec *model.ToolRecord) []string {
	if len(rec.Categories) > 0 {
		return rec.Categories
	}
	if rec.Category != "" {
		return []string{rec.Category}
	}
	return nil
}

func coalesce(live, seed string) string {
	if live != "" {
		return live
	}
	return seed
}

func coalesceInt(live, seed int) int {
	if live != 0 {
		return live
	}
	return seed
}

func coalesceSlice(live, seed []string) []string {
	if len(live) > 0 {
		return live
	}
	return seed
}

func coalescePtr(live, seed *float64) *float64 {
	if live != nil {
		return live
	}
	return seed
}

func coalesceTime(live, seed *time.Time) *time.Time {
	if live != nil {
		return live
	}
	return seed
}
