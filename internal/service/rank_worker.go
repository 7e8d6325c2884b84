package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// RankWorker listens for PostgreSQL NOTIFY on the 'vote_changes' channel
// and batches cache invalidations. Scores are computed at read time, so the
// worker's whole job is dropping stale cache entries: if 50 votes hit tool
// X in 5 seconds, the caches are dropped once, not 50 times.
type RankWorker struct {
	pool    *pgxpool.Pool
	cache   *CacheService
	batchMs time.Duration

	mu      sync.Mutex
	pending map[string]struct{} // tool slugs with stale cache entries
}

// NewRankWorker creates a cache invalidation worker.
func NewRankWorker(pool *pgxpool.Pool, cache *CacheService) *RankWorker {
	return &RankWorker{
		pool:    pool,
		cache:   cache,
		batchMs: 5 * time.Second,
		pending: make(map[string]struct{}),
	}
}

// Start begins listening for vote_changes notifications and processing
// batches. It reconnects on listen errors until the context is cancelled.
func (w *RankWorker) Start(ctx context.Context) {
	log.Info().Dur("batch_window", w.batchMs).Msg("rank-worker: starting")

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Info().Msg("rank-worker: stopping (context cancelled)")
				return
			}
			log.Warn().Err(err).Msg("rank-worker: listen error, reconnecting in 5s")
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Info().Msg("rank-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on vote_changes, and
// collects slugs into the pending set for the flush loop.
func (w *RankWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err = conn.Exec(ctx, "LISTEN vote_changes"); err != nil {
		return err
	}
	log.Info().Msg("rank-worker: listening on vote_changes")

	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		slug := notification.Payload
		if slug == "" {
			continue
		}

		w.mu.Lock()
		w.pending[slug] = struct{}{}
		w.mu.Unlock()
	}
}

// flushLoop periodically drains the pending set.
func (w *RankWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.batchMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			// Final flush before exit
			w.flush(context.Background())
			return
		}
	}
}

// flush drains the pending set and drops the affected cache entries.
func (w *RankWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	// Swap out the pending map
	batch := w.pending
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if w.cache == nil {
		return
	}

	for slug := range batch {
		if err := w.cache.InvalidateTool(ctx, slug); err != nil {
			log.Warn().Err(err).Str("slug", slug).Msg("rank-worker: tool invalidate error")
		}
	}
	if err := w.cache.InvalidateRanking(ctx); err != nil {
		log.Warn().Err(err).Msg("rank-worker: ranking invalidate error")
	}

	log.Info().Int("tools", len(batch)).Msg("rank-worker: batch invalidated")
}
