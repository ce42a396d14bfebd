package holiday

import "time"

// Holiday is a global (not employee-scoped) non-working date. Optional
// holidays do not force the holiday status; employees may still work them.
type Holiday struct {
	ID         string
	Date       time.Time
	Title      string
	IsOptional bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
