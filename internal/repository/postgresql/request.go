package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mrkunal0430/hrms/internal/domain/request"
	"github.com/mrkunal0430/hrms/internal/pkg/database"
)

const requestColumns = `
	id, kind, employee_id, start_date, end_date, duration,
	requested_check_in, requested_check_out, reason,
	status, reviewer_id, reviewed_at, review_comment,
	created_at, updated_at`

type requestRepository struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) request.Repository {
	return &requestRepository{db: db}
}

// Create implements request.Repository.
func (r *requestRepository) Create(ctx context.Context, req request.Request) (request.Request, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO requests (
			id, kind, employee_id, start_date, end_date, duration,
			requested_check_in, requested_check_out, reason, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.ID, req.Kind, req.EmployeeID, req.StartDate, req.EndDate, req.Duration,
		req.RequestedCheckIn, req.RequestedCheckOut, req.Reason, req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return request.Request{}, fmt.Errorf("failed to create request: %w", err)
	}

	return req, nil
}

// GetByID implements request.Repository.
func (r *requestRepository) GetByID(ctx context.Context, id string) (request.Request, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`

	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.Request{}, request.ErrRequestNotFound
		}
		return request.Request{}, fmt.Errorf("failed to get request: %w", err)
	}

	return req, nil
}

// UpdateReview implements request.Repository. Only pending requests are
// updated, which makes the terminal transition race-safe against concurrent
// reviewers.
func (r *requestRepository) UpdateReview(ctx context.Context, req request.Request) error {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE requests SET
			status = $2, reviewer_id = $3, reviewed_at = $4, review_comment = $5,
			updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, req.ID, req.Status, req.ReviewerID, req.ReviewedAt, req.ReviewComment)
	if err != nil {
		return fmt.Errorf("failed to update request review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return request.ErrInvalidTransition
	}

	return nil
}

// HasActiveForRange implements request.Repository.
func (r *requestRepository) HasActiveForRange(ctx context.Context, kind request.Kind, employeeID string, start, end time.Time) (bool, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM requests
			WHERE employee_id = $1 AND kind = $2 AND status != 'rejected'
			  AND start_date <= $4 AND end_date >= $3
		)
	`
	if err := q.QueryRow(ctx, query, employeeID, kind, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping requests: %w", err)
	}

	return exists, nil
}

// ApprovedLeaveForDate implements request.Repository.
func (r *requestRepository) ApprovedLeaveForDate(ctx context.Context, employeeID string, date time.Time) (*request.Request, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + requestColumns + `
		FROM requests
		WHERE employee_id = $1 AND kind = 'leave' AND status = 'approved'
		  AND start_date <= $2 AND end_date >= $2
		LIMIT 1
	`

	req, err := scanRequest(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get approved leave: %w", err)
	}

	return &req, nil
}

// HasApprovedWFH implements request.Repository.
func (r *requestRepository) HasApprovedWFH(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM requests
			WHERE employee_id = $1 AND kind = 'wfh' AND status = 'approved'
			  AND start_date <= $2 AND end_date >= $2
		)
	`
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check approved WFH: %w", err)
	}

	return exists, nil
}

// HasPendingRegularization implements request.Repository.
func (r *requestRepository) HasPendingRegularization(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM requests
			WHERE employee_id = $1 AND kind = 'regularization' AND status = 'pending'
			  AND start_date <= $2 AND end_date >= $2
		)
	`
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pending regularization: %w", err)
	}

	return exists, nil
}

// ListByEmployee implements request.Repository.
func (r *requestRepository) ListByEmployee(ctx context.Context, employeeID string, filter request.ListFilter) ([]request.Request, int64, error) {
	conditions := []string{"employee_id = $1"}
	args := []interface{}{employeeID}
	return r.list(ctx, conditions, args, filter)
}

// List implements request.Repository.
func (r *requestRepository) List(ctx context.Context, filter request.ListFilter) ([]request.Request, int64, error) {
	return r.list(ctx, nil, nil, filter)
}

func (r *requestRepository) list(ctx context.Context, conditions []string, args []interface{}, filter request.ListFilter) ([]request.Request, int64, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	if filter.Kind != nil {
		args = append(args, *filter.Kind)
		conditions = append(conditions, fmt.Sprintf("kind = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM requests"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count requests: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(
		"SELECT %s FROM requests%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		requestColumns, where, len(args)-1, len(args),
	)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	var requests []request.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read request rows: %w", err)
	}

	return requests, total, nil
}

func scanRequest(row pgx.Row) (request.Request, error) {
	var req request.Request
	err := row.Scan(
		&req.ID, &req.Kind, &req.EmployeeID, &req.StartDate, &req.EndDate, &req.Duration,
		&req.RequestedCheckIn, &req.RequestedCheckOut, &req.Reason,
		&req.Status, &req.ReviewerID, &req.ReviewedAt, &req.ReviewComment,
		&req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}
