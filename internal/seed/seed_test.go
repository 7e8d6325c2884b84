package seed

import (
	"os"
	"path/filepath"
	"testing"
)

const testCatalog = `{
  "categories": [
    { "name": "Image Generation", "slug": "image-generation" }
  ],
  "useCases": [
    { "name": "Marketing", "slug": "marketing" }
  ],
  "tools": [
    {
      "slug": "alpha",
      "name": "Alpha Studio",
      "tagline": "Generate anything",
      "pricingModel": "FREEMIUM",
      "categories": ["image-generation"],
      "useCases": ["marketing"],
      "links": { "websiteUrl": "https://alpha.example" },
      "specs": { "developer": "Alpha Labs", "launchYear": "2022", "hasApi": true, "mobileApp": false },
      "tier": 1,
      "androidInstallsRange": 5000000
    },
    {
      "slug": "beta",
      "name": "Beta",
      "categories": ["image-generation"],
      "tier": 2,
      "androidInstallsRange": "10M+"
    }
  ]
}`

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(testCatalog), 0o644); err != nil {
		t.Fatalf("write seed fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeCatalog(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Tools) != 2 {
		t.Fatalf("len(Tools) = %d, want 2", len(c.Tools))
	}
	if len(c.Categories) != 1 || c.Categories[0].Slug != "image-generation" {
		t.Errorf("categories not parsed: %+v", c.Categories)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestBySlug(t *testing.T) {
	c, err := Load(writeCatalog(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	alpha := c.BySlug("alpha")
	if alpha == nil || alpha.Name != "Alpha Studio" {
		t.Fatalf("BySlug(alpha) = %+v", alpha)
	}
	if alpha.Tier != 1 {
		t.Errorf("Tier = %d, want 1", alpha.Tier)
	}
	if c.BySlug("ghost") != nil {
		t.Error("BySlug(ghost) should be nil")
	}

	// Mutating the returned copy must not touch the catalog.
	alpha.Name = "mutated"
	if c.BySlug("alpha").Name != "Alpha Studio" {
		t.Error("catalog must be immutable; BySlug returned a live reference")
	}
}

func TestInstallRange_StringOrNumber(t *testing.T) {
	c, err := Load(writeCatalog(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.BySlug("alpha").AndroidInstallRange.String(); got != "5000000" {
		t.Errorf("numeric install range = %q, want \"5000000\"", got)
	}
	if got := c.BySlug("beta").AndroidInstallRange.String(); got != "10M+" {
		t.Errorf("shorthand install range = %q, want \"10M+\"", got)
	}
}

func TestToolsByCategoryAndUseCase(t *testing.T) {
	c, err := Load(writeCatalog(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.ToolsByCategory("image-generation"); len(got) != 2 {
		t.Errorf("ToolsByCategory = %d tools, want 2", len(got))
	}
	if got := c.ToolsByUseCase("marketing"); len(got) != 1 || got[0].Slug != "alpha" {
		t.Errorf("ToolsByUseCase(marketing) = %+v, want alpha only", got)
	}
}
