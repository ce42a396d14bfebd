package office

import "time"

// Location is an office site with its geofence radius. Inactive offices are
// ignored by validation.
type Location struct {
	ID           string
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
