package request

import (
	"context"
	"time"
)

// ListFilter narrows request listings.
type ListFilter struct {
	Kind   *Kind
	Status *Status
	Page   int
	Limit  int
}

// Repository defines data access for approval requests.
type Repository interface {
	Create(ctx context.Context, req Request) (Request, error)

	// GetByID returns ErrRequestNotFound when the id is unknown.
	GetByID(ctx context.Context, id string) (Request, error)

	// UpdateReview persists the terminal transition (status, reviewer,
	// reviewed-at, comment).
	UpdateReview(ctx context.Context, req Request) error

	// HasActiveForRange reports whether a non-rejected request of the kind
	// overlaps [start, end] for the employee. Backs the at-most-one invariant.
	HasActiveForRange(ctx context.Context, kind Kind, employeeID string, start, end time.Time) (bool, error)

	// ApprovedLeaveForDate returns the approved leave request covering the
	// date, or nil.
	ApprovedLeaveForDate(ctx context.Context, employeeID string, date time.Time) (*Request, error)

	// HasApprovedWFH reports whether an approved WFH request covers the date.
	HasApprovedWFH(ctx context.Context, employeeID string, date time.Time) (bool, error)

	// HasPendingRegularization reports whether a pending regularization exists
	// for the date. A pending regularization explains a second check-in
	// attempt instead of rejecting it as a duplicate.
	HasPendingRegularization(ctx context.Context, employeeID string, date time.Time) (bool, error)

	ListByEmployee(ctx context.Context, employeeID string, filter ListFilter) ([]Request, int64, error)
	List(ctx context.Context, filter ListFilter) ([]Request, int64, error)
}

// RecomputeEntry is one approval whose downstream re-resolution failed and is
// awaiting retry.
type RecomputeEntry struct {
	RequestID string
	Attempts  int
	LastError string
	QueuedAt  time.Time
}

// RecomputeQueue holds approvals whose attendance recomputation must be
// retried. Entries are removed only after a successful re-apply.
type RecomputeQueue interface {
	Enqueue(ctx context.Context, requestID string, cause string) error
	List(ctx context.Context, limit int) ([]RecomputeEntry, error)
	Remove(ctx context.Context, requestID string) error
}
