package office

import "context"

// Repository defines data access for office locations. The attendance engine
// consumes them read-only.
type Repository interface {
	ListActive(ctx context.Context) ([]Location, error)
	List(ctx context.Context) ([]Location, error)
}
