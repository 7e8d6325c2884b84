package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache TTLs. Rankings churn with every vote, so they expire fast; single
// tools are also invalidated explicitly on vote changes.
const (
	RankingCacheTTL = 5 * time.Minute
	ToolCacheTTL    = 15 * time.Minute
)

const rankingKey = "ranking:all"

// CacheService provides a Redis cache-aside layer for the ranked listing
// and single-tool lookups.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a CacheService. An empty URL or a failed
// connection yields a nil client and every operation becomes a no-op — the
// index must keep serving without Redis.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Info().Msg("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Str("url", redisURL).Msg("redis: invalid URL, caching disabled")
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis: connection failed, caching disabled")
		return &CacheService{}
	}

	log.Info().Msg("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client for health checks. May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetRanking retrieves the cached ranked listing. Nil when absent or disabled.
func (c *CacheService) GetRanking(ctx context.Context) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, rankingKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetRanking stores the ranked listing response.
func (c *CacheService) SetRanking(ctx context.Context, data any) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, rankingKey, b, RankingCacheTTL).Err()
}

// InvalidateRanking drops the cached listing (called after vote changes).
func (c *CacheService) InvalidateRanking(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, rankingKey).Err()
}

// GetTool retrieves a cached single-tool response. Nil when absent.
func (c *CacheService) GetTool(ctx context.Context, slug string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, toolKey(slug)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetTool stores a single-tool response.
func (c *CacheService) SetTool(ctx context.Context, slug string, data any) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, toolKey(slug), b, ToolCacheTTL).Err()
}

// InvalidateTool removes a tool from cache.
func (c *CacheService) InvalidateTool(ctx context.Context, slug string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, toolKey(slug)).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func toolKey(slug string) string {
	return fmt.Sprintf("tool:%s", slug)
}
