package employee

import "context"

// Directory is the external employee master-data collaborator.
type Directory interface {
	// GetByID returns ErrEmployeeNotFound for unknown ids.
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListActive returns all active employees.
	ListActive(ctx context.Context) ([]Employee, error)

	// CountActive returns the number of active employees.
	CountActive(ctx context.Context) (int64, error)
}
