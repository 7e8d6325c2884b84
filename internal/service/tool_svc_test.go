package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/NikoCousin/ai-index-market/internal/model"
	"github.com/NikoCousin/ai-index-market/internal/repository"
	"github.com/NikoCousin/ai-index-market/internal/scoring"
	"github.com/NikoCousin/ai-index-market/internal/seed"
)

const testSeedJSON = `{
  "categories": [
    {"name": "Chat Assistants", "slug": "chat-assistants"},
    {"name": "Image Generation", "slug": "image-generation"}
  ],
  "useCases": [
    {"name": "Writing", "slug": "writing"}
  ],
  "tools": [
    {
      "slug": "alpha",
      "name": "Alpha",
      "tier": 1,
      "categories": ["chat-assistants"],
      "useCases": ["writing"]
    },
    {
      "slug": "beta",
      "name": "Beta",
      "tier": 3,
      "categories": ["image-generation"]
    },
    {
      "slug": "gamma",
      "name": "Gamma",
      "tier": 2,
      "categories": ["chat-assistants"]
    }
  ]
}`

func loadTestCatalog(t *testing.T) *seed.Catalog {
	t.Helper()

	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(testSeedJSON), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	catalog, err := seed.Load(path)
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	return catalog
}

// newSeedOnlyService builds a ToolService with no database pool. Every live
// read degrades, so all listings run in seed-fallback mode.
func newSeedOnlyService(t *testing.T) *ToolService {
	t.Helper()

	return NewToolService(
		repository.NewToolRepo(nil),
		repository.NewVoteRepo(nil),
		loadTestCatalog(t),
		nil,
	)
}

func TestRanking_SeedFallback(t *testing.T) {
	svc := newSeedOnlyService(t)

	resp, err := svc.Ranking(context.Background())
	if err != nil {
		t.Fatalf("Ranking: %v", err)
	}

	if resp.Mode != "seed_fallback" {
		t.Errorf("mode = %q, want seed_fallback", resp.Mode)
	}
	if len(resp.Tools) != 3 {
		t.Fatalf("got %d tools, want 3", len(resp.Tools))
	}

	// Tier bases order the votes-free listing: tier 1 > tier 2 > tier 3.
	wantOrder := []string{"alpha", "gamma", "beta"}
	for i, want := range wantOrder {
		if resp.Tools[i].Slug != want {
			t.Errorf("position %d = %q, want %q", i, resp.Tools[i].Slug, want)
		}
	}
	for i, tool := range resp.Tools {
		if tool.Rank != i+1 {
			t.Errorf("tool %q rank = %d, want %d", tool.Slug, tool.Rank, i+1)
		}
	}

	if resp.Tools[0].IndexScore != "92.0" {
		t.Errorf("tier 1 score = %q, want 92.0", resp.Tools[0].IndexScore)
	}
	if resp.Tools[2].IndexScore != "50.0" {
		t.Errorf("tier 3 score = %q, want 50.0", resp.Tools[2].IndexScore)
	}
}

func TestLookup_SeedOnly(t *testing.T) {
	svc := newSeedOnlyService(t)

	resp, err := svc.Lookup(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if resp.Slug != "alpha" {
		t.Errorf("slug = %q, want alpha", resp.Slug)
	}
	if resp.IndexScore != "92.0" {
		t.Errorf("score = %q, want 92.0", resp.IndexScore)
	}
	if resp.TotalVotes != 0 {
		t.Errorf("votes = %d, want 0", resp.TotalVotes)
	}
}

func TestLookup_UnknownSlug(t *testing.T) {
	svc := newSeedOnlyService(t)

	_, err := svc.Lookup(context.Background(), "no-such-tool")
	if !errors.Is(err, scoring.ErrToolNotFound) {
		t.Errorf("err = %v, want ErrToolNotFound", err)
	}
}

func TestByCategory(t *testing.T) {
	svc := newSeedOnlyService(t)

	resp, err := svc.ByCategory(context.Background(), "chat-assistants")
	if err != nil {
		t.Fatalf("ByCategory: %v", err)
	}
	if len(resp.Tools) != 2 {
		t.Fatalf("got %d tools, want 2", len(resp.Tools))
	}
	if resp.Tools[0].Slug != "alpha" || resp.Tools[1].Slug != "gamma" {
		t.Errorf("order = %q, %q; want alpha, gamma", resp.Tools[0].Slug, resp.Tools[1].Slug)
	}

	if _, err := svc.ByCategory(context.Background(), "no-such-category"); !errors.Is(err, scoring.ErrToolNotFound) {
		t.Errorf("unknown category err = %v, want ErrToolNotFound", err)
	}
}

func TestByUseCase(t *testing.T) {
	svc := newSeedOnlyService(t)

	resp, err := svc.ByUseCase(context.Background(), "writing")
	if err != nil {
		t.Fatalf("ByUseCase: %v", err)
	}
	if len(resp.Tools) != 1 || resp.Tools[0].Slug != "alpha" {
		t.Fatalf("got %v, want only alpha", resp.Tools)
	}

	if _, err := svc.ByUseCase(context.Background(), "no-such-use-case"); !errors.Is(err, scoring.ErrToolNotFound) {
		t.Errorf("unknown use case err = %v, want ErrToolNotFound", err)
	}
}

func TestStats_SeedOnly(t *testing.T) {
	svc := newSeedOnlyService(t)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.SeedTools != 3 {
		t.Errorf("seed tools = %d, want 3", stats.SeedTools)
	}
	if stats.TotalTools != 0 {
		t.Errorf("live tools = %d, want 0 without a database", stats.TotalTools)
	}
	if stats.Categories != 2 {
		t.Errorf("categories = %d, want 2", stats.Categories)
	}
}

func TestVoteService_NoDatabase(t *testing.T) {
	svc := NewVoteService(repository.NewVoteRepo(nil), loadTestCatalog(t), nil)

	req := model.VoteRequest{ToolSlug: "alpha", VoterID: "a3f2b4"}
	_, err := svc.Toggle(context.Background(), req, "iphash")
	if !errors.Is(err, repository.ErrUnavailable) {
		t.Errorf("Toggle err = %v, want ErrUnavailable", err)
	}
}

func TestVoteService_DisplayScoreUsesCatalogTier(t *testing.T) {
	svc := NewVoteService(repository.NewVoteRepo(nil), loadTestCatalog(t), nil)

	tests := []struct {
		name  string
		slug  string
		total int
		want  string
	}{
		{"tier 1 tool", "alpha", 3, "92.3"},
		{"tier 2 tool", "gamma", 0, "78.0"},
		{"tier 3 tool", "beta", 10, "51.0"},
		{"unknown slug falls back to tier 3 base", "no-such-tool", 2, "50.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.displayScore(tt.slug, tt.total); got != tt.want {
				t.Errorf("displayScore(%q, %d) = %q, want %q", tt.slug, tt.total, got, tt.want)
			}
		})
	}
}

// The score echoed after a vote must match what a subsequent lookup derives
// for the same tool and vote count.
func TestVoteService_DisplayScoreMatchesLookup(t *testing.T) {
	catalog := loadTestCatalog(t)
	voteSvc := NewVoteService(repository.NewVoteRepo(nil), catalog, nil)
	toolSvc := NewToolService(repository.NewToolRepo(nil), repository.NewVoteRepo(nil), catalog, nil)

	resp, err := toolSvc.Lookup(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got := voteSvc.displayScore("alpha", resp.TotalVotes); got != resp.IndexScore {
		t.Errorf("vote response score %q != lookup score %q", got, resp.IndexScore)
	}
}
