package holiday

import (
	"context"
	"time"
)

// Repository defines data access for the holiday calendar. The attendance
// engine consumes it read-only; HR owns the writes.
type Repository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)

	// GetByDate returns the holiday on the date, or nil when the date is a
	// regular working day.
	GetByDate(ctx context.Context, date time.Time) (*Holiday, error)

	ListByYear(ctx context.Context, year int) ([]Holiday, error)
	Delete(ctx context.Context, id string) error
}
