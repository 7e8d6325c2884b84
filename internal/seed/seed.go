package seed

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/NikoCousin/ai-index-market/internal/model"
)

// Category is a curated browse bucket.
type Category struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// UseCase is a curated "what can I do with it" bucket.
type UseCase struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Catalog is the deployment-bundled baseline dataset: curated tools with
// tiers, categories and use cases. It ships with the binary, is loaded once
// at startup, and never changes afterwards — it is the fallback and
// enrichment source the live store is reconciled against.
type Catalog struct {
	Categories []Category         `json:"categories"`
	UseCases   []UseCase          `json:"useCases"`
	Tools      []model.ToolRecord `json:"tools"`

	bySlug map[string]int
}

// Load reads and indexes the seed catalog from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	c.index()
	return &c, nil
}

func (c *Catalog) index() {
	c.bySlug = make(map[string]int, len(c.Tools))
	for i := range c.Tools {
		c.bySlug[c.Tools[i].Slug] = i
	}
}

// BySlug returns a copy of the seed entry for slug, or nil if the catalog
// has no such tool. Callers get copies so the snapshot stays immutable.
func (c *Catalog) BySlug(slug string) *model.ToolRecord {
	i, ok := c.bySlug[slug]
	if !ok {
		return nil
	}
	rec := c.Tools[i]
	return &rec
}

// Records returns a fresh copy of all seed entries in curated order.
func (c *Catalog) Records() []model.ToolRecord {
	out := make([]model.ToolRecord, len(c.Tools))
	copy(out, c.Tools)
	return out
}

// CategoryBySlug resolves a category browse slug.
func (c *Catalog) CategoryBySlug(slug string) *Category {
	for i := range c.Categories {
		if c.Categories[i].Slug == slug {
			return &c.Categories[i]
		}
	}
	return nil
}

// UseCaseBySlug resolves a use-case browse slug.
func (c *Catalog) UseCaseBySlug(slug string) *UseCase {
	for i := range c.UseCases {
		if c.UseCases[i].Slug == slug {
			return &c.UseCases[i]
		}
	}
	return nil
}

// ToolsByUseCase returns copies of the seed tools tagged with the use case.
func (c *Catalog) ToolsByUseCase(useCaseSlug string) []model.ToolRecord {
	var out []model.ToolRecord
	for i := range c.Tools {
		for _, uc := range c.Tools[i].UseCases {
			if uc == useCaseSlug {
				out = append(out, c.Tools[i])
				break
			}
		}
	}
	return out
}

// ToolsByCategory returns copies of the seed tools tagged with the category.
func (c *Catalog) ToolsByCategory(categorySlug string) []model.ToolRecord {
	var out []model.ToolRecord
	for i := range c.Tools {
		for _, cat := range c.Tools[i].Categories {
			if cat == categorySlug {
				out = append(out, c.Tools[i])
				break
			}
		}
	}
	return out
}
