package postgresql

import (
	"context"
	"fmt"

	"github.com/mrkunal0430/hrms/internal/domain/request"
	"github.com/mrkunal0430/hrms/internal/pkg/database"
)

type recomputeQueueRepository struct {
	db *database.DB
}

func NewRecomputeQueueRepository(db *database.DB) request.RecomputeQueue {
	return &recomputeQueueRepository{db: db}
}

// Enqueue implements request.RecomputeQueue. Re-enqueueing an already queued
// request bumps its attempt counter instead of duplicating it.
func (r *recomputeQueueRepository) Enqueue(ctx context.Context, requestID string, cause string) error {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO recompute_queue (request_id, attempts, last_error, queued_at)
		VALUES ($1, 1, $2, NOW())
		ON CONFLICT (request_id) DO UPDATE SET
			attempts = recompute_queue.attempts + 1,
			last_error = EXCLUDED.last_error
	`

	if _, err := q.Exec(ctx, query, requestID, cause); err != nil {
		return fmt.Errorf("failed to enqueue recomputation: %w", err)
	}

	return nil
}

// List implements request.RecomputeQueue.
func (r *recomputeQueueRepository) List(ctx context.Context, limit int) ([]request.RecomputeEntry, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT request_id, attempts, last_error, queued_at
		FROM recompute_queue
		ORDER BY queued_at
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recompute queue: %w", err)
	}
	defer rows.Close()

	var entries []request.RecomputeEntry
	for rows.Next() {
		var e request.RecomputeEntry
		if err := rows.Scan(&e.RequestID, &e.Attempts, &e.LastError, &e.QueuedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recompute entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recompute rows: %w", err)
	}

	return entries, nil
}

// Remove implements request.RecomputeQueue.
func (r *recomputeQueueRepository) Remove(ctx context.Context, requestID string) error {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM recompute_queue WHERE request_id = $1`, requestID); err != nil {
		return fmt.Errorf("failed to remove recompute entry: %w", err)
	}

	return nil
}
