package settings

import "context"

// Repository defines read access to the stored configuration snapshots.
type Repository interface {
	GetGlobal(ctx context.Context) (Global, error)

	// GetDepartmentOverride returns nil when the department has no override.
	GetDepartmentOverride(ctx context.Context, departmentID string) (*DepartmentOverride, error)
}
