package scoring

import (
	"errors"
	"reflect"
	"testing"

	"github.com/NikoCousin/ai-index-market/internal/model"
)

func fullSeedRecord() model.ToolRecord {
	return model.ToolRecord{
		Slug:             "alpha",
		Name:             "Alpha Studio",
		Tagline:          "Generate anything",
		DescriptionShort: "Short blurb",
		DescriptionLong:  "Long blurb",
		AnalystBrief:     "Solid flagship",
		PricingModel:     "FREEMIUM",
		Platforms:        []string{"WEB", "IOS"},
		Categories:       []string{"image-generation", "productivity"},
		UseCases:         []string{"marketing"},
		Links: model.ToolLinks{
			WebsiteURL: "https://alpha.example",
			PricingURL: "https://alpha.example/pricing",
			DocsURL:    "https://docs.alpha.example",
		},
		Specs: model.ToolSpecs{
			Developer:  "Alpha Labs",
			LaunchYear: "2022",
			HasAPI:     true,
			MobileApp:  true,
		},
		Tier: 1,
	}
}

func TestReconcile_BothNil(t *testing.T) {
	_, err := Reconcile(nil, nil, "ghost")
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("err = %v, want ErrToolNotFound", err)
	}
}

func TestReconcile_SeedOnly(t *testing.T) {
	seed := fullSeedRecord()
	got, err := Reconcile(nil, &seed, "alpha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != seed.Name || got.Tagline != seed.Tagline || got.Tier != seed.Tier {
		t.Errorf("seed-only reconcile should return seed fields verbatim, got %+v", got)
	}
	if !reflect.DeepEqual(got.Categories, seed.Categories) {
		t.Errorf("Categories = %v, want %v", got.Categories, seed.Categories)
	}
	if got.Links != seed.Links {
		t.Errorf("Links = %+v, want %+v", got.Links, seed.Links)
	}
}

func TestReconcile_LivePartialInheritsFromSeed(t *testing.T) {
	seed := fullSeedRecord()
	live := model.ToolRecord{
		Slug:              "alpha",
		Name:              "Alpha Studio Pro", // renamed in DB
		TrafficMonthlyEst: model.FloatPtr(2_500_000),
		Links: model.ToolLinks{
			WebsiteURL: "https://alpha.pro", // updated, rest missing
		},
	}

	got, err := Reconcile(&live, &seed, "alpha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Live wins where it has a value.
	if got.Name != "Alpha Studio Pro" {
		t.Errorf("Name = %q, want live value", got.Name)
	}
	if got.Links.WebsiteURL != "https://alpha.pro" {
		t.Errorf("WebsiteURL = %q, want live value", got.Links.WebsiteURL)
	}

	// Seed fills everything live lacks, including individual link fields.
	if got.Tagline != seed.Tagline {
		t.Errorf("Tagline = %q, want seed fallback %q", got.Tagline, seed.Tagline)
	}
	if got.Links.PricingURL != seed.Links.PricingURL {
		t.Errorf("PricingURL = %q, want seed fallback — links merge per field, not per object", got.Links.PricingURL)
	}
	if got.Specs.Developer != seed.Specs.Developer {
		t.Errorf("Specs.Developer = %q, want seed fallback", got.Specs.Developer)
	}
	if got.Tier != 1 {
		t.Errorf("Tier = %d, want seed tier 1", got.Tier)
	}
	if got.TrafficMonthlyEst == nil || *got.TrafficMonthlyEst != 2_500_000 {
		t.Errorf("TrafficMonthlyEst = %v, want live 2.5M", got.TrafficMonthlyEst)
	}
}

func TestReconcile_FlatCategoryWrapped(t *testing.T) {
	live := model.ToolRecord{Slug: "alpha", Category: "Video Generation"}
	got, err := Reconcile(&live, nil, "alpha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got.Categories, []string{"Video Generation"}) {
		t.Errorf("Categories = %v, want singleton from flat category", got.Categories)
	}
}

func TestReconcile_CategorySetsReplaceNotUnion(t *testing.T) {
	seed := fullSeedRecord()
	live := model.ToolRecord{Slug: "alpha", Categories: []string{"ai-assistant"}}

	got, err := Reconcile(&live, &seed, "alpha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got.Categories, []string{"ai-assistant"}) {
		t.Errorf("Categories = %v — live set must replace seed set, never union", got.Categories)
	}
}

func TestReconcile_SlugPrecedence(t *testing.T) {
	seed := fullSeedRecord()
	got, err := Reconcile(nil, &seed, "requested-slug")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Slug != "requested-slug" {
		t.Errorf("Slug = %q, want requested slug to win", got.Slug)
	}
}

func TestReconcile_TelemetryFallsBackToSeed(t *testing.T) {
	seed := fullSeedRecord()
	seed.XMentions30d = model.FloatPtr(1200)
	seed.AndroidInstallRange = "1M+"
	live := model.ToolRecord{Slug: "alpha", TrafficMonthlyEst: model.FloatPtr(10)}

	got, err := Reconcile(&live, &seed, "alpha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.XMentions30d == nil || *got.XMentions30d != 1200 {
		t.Errorf("XMentions30d = %v, want seed 1200", got.XMentions30d)
	}
	if got.AndroidInstallRange != "1M+" {
		t.Errorf("AndroidInstallRange = %q, want seed %q", got.AndroidInstallRange, "1M+")
	}
}
