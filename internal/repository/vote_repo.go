package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NikoCousin/ai-index-market/internal/model"
)

type VoteRepo struct {
	pool *pgxpool.Pool
}

func NewVoteRepo(pool *pgxpool.Pool) *VoteRepo {
	return &VoteRepo{pool: pool}
}

// ListEvents returns the full vote log. The scoring core aggregates it per
// request; there is no pagination because the log is read whole.
func (r *VoteRepo) ListEvents(ctx context.Context) ([]model.VoteEvent, error) {
	if r.pool == nil {
		return nil, ErrUnavailable
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, tool_slug, voter_id, created_at
		FROM votes
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.VoteEvent
	for rows.Next() {
		var ev model.VoteEvent
		if err := rows.Scan(&ev.ID, &ev.ToolSlug, &ev.VoterID, &ev.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Toggle flips a voter's vote on a tool atomically: no active vote inserts
// one, an existing vote is removed. This keeps the uniqueness invariant (at
// most one active vote per (slug, voter)) in the store rather than the
// scoring core. Returns whether the vote is active after the call plus the
// tool's new total.
func (r *VoteRepo) Toggle(ctx context.Context, slug, voterID, ipHash, userAgent string) (voted bool, total int, err error) {
	if r.pool == nil {
		return false, 0, ErrUnavailable
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback(ctx)

	var existingID int64
	err = tx.QueryRow(ctx, `
		SELECT id FROM votes WHERE tool_slug = $1 AND voter_id = $2`,
		slug, voterID).Scan(&existingID)
	switch {
	case err == nil:
		_, err = tx.Exec(ctx, `DELETE FROM votes WHERE id = $1`, existingID)
		if err != nil {
			return false, 0, err
		}
		voted = false
	case err == pgx.ErrNoRows:
		_, err = tx.Exec(ctx, `
			INSERT INTO votes (tool_slug, voter_id, ip_hash, user_agent)
			VALUES ($1, $2, $3, $4)`,
			slug, voterID, ipHash, userAgent)
		if err != nil {
			return false, 0, err
		}
		voted = true
	default:
		return false, 0, err
	}

	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM votes WHERE tool_slug = $1`, slug).Scan(&total)
	if err != nil {
		return false, 0, err
	}

	// Wake the rank worker so cached rankings are dropped.
	if _, err = tx.Exec(ctx, `SELECT pg_notify('vote_changes', $1)`, slug); err != nil {
		return false, 0, err
	}

	return voted, total, tx.Commit(ctx)
}

// Delete removes a voter's vote without toggling. Returns pgx.ErrNoRows if
// no active vote exists.
func (r *VoteRepo) Delete(ctx context.Context, slug, voterID string) error {
	if r.pool == nil {
		return ErrUnavailable
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `
		SELECT id FROM votes WHERE tool_slug = $1 AND voter_id = $2`,
		slug, voterID).Scan(&id)
	if err != nil {
		return err // pgx.ErrNoRows when the vote doesn't exist
	}

	if _, err = tx.Exec(ctx, `DELETE FROM votes WHERE id = $1`, id); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `SELECT pg_notify('vote_changes', $1)`, slug); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Stats returns aggregate platform counters for the stats endpoint.
func (r *VoteRepo) Stats(ctx context.Context) (totalVotes, totalVoters, votes24h int, err error) {
	if r.pool == nil {
		return 0, 0, 0, nil
	}
	err = r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM votes),
			(SELECT COUNT(DISTINCT voter_id) FROM votes),
			(SELECT COUNT(*) FROM votes WHERE created_at > NOW() - INTERVAL '24 hours')`,
	).Scan(&totalVotes, &totalVoters, &votes24h)
	return totalVotes, totalVoters, votes24h, err
}
