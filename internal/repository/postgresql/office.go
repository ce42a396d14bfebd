package postgresql

import (
	"context"
	"fmt"

	"github.com/mrkunal0430/hrms/internal/domain/office"
	"github.com/mrkunal0430/hrms/internal/pkg/database"
)

type officeRepository struct {
	db *database.DB
}

func NewOfficeRepository(db *database.DB) office.Repository {
	return &officeRepository{db: db}
}

// ListActive implements office.Repository.
func (r *officeRepository) ListActive(ctx context.Context) ([]office.Location, error) {
	return r.listWhere(ctx, "WHERE is_active = TRUE")
}

// List implements office.Repository.
func (r *officeRepository) List(ctx context.Context) ([]office.Location, error) {
	return r.listWhere(ctx, "")
}

func (r *officeRepository) listWhere(ctx context.Context, where string) ([]office.Location, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, latitude, longitude, radius_meters, is_active, created_at, updated_at
		FROM offices ` + where + `
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list offices: %w", err)
	}
	defer rows.Close()

	var offices []office.Location
	for rows.Next() {
		var o office.Location
		if err := rows.Scan(&o.ID, &o.Name, &o.Latitude, &o.Longitude, &o.RadiusMeters, &o.IsActive, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan office: %w", err)
		}
		offices = append(offices, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read office rows: %w", err)
	}

	return offices, nil
}
