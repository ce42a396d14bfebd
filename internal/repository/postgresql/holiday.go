package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mrkunal0430/hrms/internal/domain/holiday"
	"github.com/mrkunal0430/hrms/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.Repository {
	return &holidayRepository{db: db}
}

// Create implements holiday.Repository.
func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (id, date, title, is_optional)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, h.ID, h.Date, h.Title, h.IsOptional).Scan(&h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return h, nil
}

// GetByDate implements holiday.Repository.
func (r *holidayRepository) GetByDate(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, date, title, is_optional, created_at, updated_at
		FROM holidays
		WHERE date = $1
		LIMIT 1
	`

	var h holiday.Holiday
	err := q.QueryRow(ctx, query, date).Scan(&h.ID, &h.Date, &h.Title, &h.IsOptional, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get holiday by date: %w", err)
	}

	return &h, nil
}

// ListByYear implements holiday.Repository.
func (r *holidayRepository) ListByYear(ctx context.Context, year int) ([]holiday.Holiday, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, date, title, is_optional, created_at, updated_at
		FROM holidays
		WHERE date >= $1 AND date < $2
		ORDER BY date
	`

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	rows, err := q.Query(ctx, query, from, from.AddDate(1, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Title, &h.IsOptional, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read holiday rows: %w", err)
	}

	return holidays, nil
}

// Delete implements holiday.Repository.
func (r *holidayRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}

	return nil
}
