package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NikoCousin/ai-index-market/internal/model"
)

// ErrUnavailable is returned when the live store has no connection pool.
// The service runs seed-only in that state.
var ErrUnavailable = errors.New("live store unavailable")

type ToolRepo struct {
	pool *pgxpool.Pool
}

func NewToolRepo(pool *pgxpool.Pool) *ToolRepo {
	return &ToolRepo{pool: pool}
}

// toolColumns is the shared select list. The tools table keeps the
// snake_case telemetry columns of the original import; scanning maps them
// onto the canonical record shape.
const toolColumns = `
	tool_slug, tool_name, tagline, description_short, description_long,
	analyst_brief, pricing_model, category, website_url, pricing_url,
	docs_url, github_url, tier,
	traffic_monthly_est, x_mentions_30d, youtube_videos_90d,
	ios_reviews_count, android_installs_range, android_reviews_count`

func scanTool(row pgx.Row) (model.ToolRecord, error) {
	var t model.ToolRecord
	var tagline, descShort, descLong, brief, pricing, category *string
	var websiteURL, pricingURL, docsURL, githubURL *string
	var tier *int
	var installs *string

	err := row.Scan(
		&t.Slug, &t.Name, &tagline, &descShort, &descLong,
		&brief, &pricing, &category, &websiteURL, &pricingURL,
		&docsURL, &githubURL, &tier,
		&t.TrafficMonthlyEst, &t.XMentions30d, &t.YoutubeVideos90d,
		&t.IOSReviewsCount, &installs, &t.AndroidReviewsCount,
	)
	if err != nil {
		return model.ToolRecord{}, err
	}

	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	t.Tagline = deref(tagline)
	t.DescriptionShort = deref(descShort)
	t.DescriptionLong = deref(descLong)
	t.AnalystBrief = deref(brief)
	t.PricingModel = deref(pricing)
	t.Category = deref(category)
	t.Links.WebsiteURL = deref(websiteURL)
	t.Links.PricingURL = deref(pricingURL)
	t.Links.DocsURL = deref(docsURL)
	t.Links.GithubURL = deref(githubURL)
	t.AndroidInstallRange = model.StringOrNumber(deref(installs))
	if tier != nil {
		t.Tier = *tier
	}
	return t, nil
}

// ListAll returns every live tool row. An empty result is a normal input for
// the ranker, not an error.
func (r *ToolRepo) ListAll(ctx context.Context) ([]model.ToolRecord, error) {
	if r.pool == nil {
		return nil, ErrUnavailable
	}
	rows, err := r.pool.Query(ctx, `SELECT `+toolColumns+` FROM tools ORDER BY tool_slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tools []model.ToolRecord
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, rows.Err()
}

// FindBySlug returns a single live row by exact slug.
// Returns pgx.ErrNoRows when the live store has no such tool; the caller
// decides whether seed data can still serve the lookup.
func (r *ToolRepo) FindBySlug(ctx context.Context, slug string) (*model.ToolRecord, error) {
	if r.pool == nil {
		return nil, ErrUnavailable
	}
	row := r.pool.QueryRow(ctx, `SELECT `+toolColumns+` FROM tools WHERE tool_slug = $1`, slug)
	t, err := scanTool(row)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindByCategory returns live rows whose flat category column contains the
// given name, case-insensitively. The column holds display names (and
// sometimes lists), so the match is a substring pattern.
func (r *ToolRepo) FindByCategory(ctx context.Context, categoryName string) ([]model.ToolRecord, error) {
	if r.pool == nil {
		return nil, ErrUnavailable
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+toolColumns+` FROM tools WHERE category ILIKE '%' || $1 || '%' ORDER BY tool_slug`,
		categoryName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tools []model.ToolRecord
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, rows.Err()
}

// Count returns the number of live tool rows.
func (r *ToolRepo) Count(ctx context.Context) (int, error) {
	if r.pool == nil {
		return 0, ErrUnavailable
	}
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tools`).Scan(&n)
	return n, err
}
