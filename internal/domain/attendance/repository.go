package attendance

import (
	"context"
	"time"
)

// ListFilter carries pagination for range queries.
type ListFilter struct {
	From  time.Time
	To    time.Time
	Page  int
	Limit int
}

// Repository defines data access for attendance records. The (employee_id,
// date) pair is unique at the storage layer; Create must fail on a duplicate
// rather than overwrite.
type Repository interface {
	// Create inserts a new record and returns it with ID and timestamps set.
	Create(ctx context.Context, record Record) (Record, error)

	// Update rewrites an existing record in place.
	Update(ctx context.Context, record Record) error

	// GetByEmployeeAndDate returns the record for the day, or nil when none
	// has been materialized yet.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	// ListByEmployee returns records in [From, To] with the total count.
	ListByEmployee(ctx context.Context, employeeID string, filter ListFilter) ([]Record, int64, error)

	// ExistsForDate reports whether any record exists for the day. Used by the
	// nightly materialization job to stay idempotent.
	ExistsForDate(ctx context.Context, employeeID string, date time.Time) (bool, error)
}
