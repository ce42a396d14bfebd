package employee

// Status is the employment status as reported by the employee directory.
// Inactive employees are excluded from nightly absence materialization.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Employee is the read-only view of the employee directory this engine
// consumes. Master-data CRUD lives elsewhere.
type Employee struct {
	ID           string
	FullName     string
	DepartmentID *string
	Status       Status
}

// IsActive reports whether the employee participates in attendance tracking.
func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}
