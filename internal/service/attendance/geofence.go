package attendance

import (
	"github.com/mrkunal0430/hrms/internal/domain/attendance"
	"github.com/mrkunal0430/hrms/internal/domain/office"
	"github.com/mrkunal0430/hrms/internal/domain/settings"
	"github.com/mrkunal0430/hrms/internal/pkg/geo"
)

// ValidateLocation checks a location sample against the active offices and
// the geofence policy. Pure computation, no side effects.
//
// Outcomes, in order:
//   - approved WFH with bypass allowed: valid, no office match, WFHBypass set
//   - enforcement disabled (globally or for this direction): valid
//   - no active offices: valid (fail-open; enforcement cannot be evaluated)
//   - sample missing or accuracy above the ceiling: invalid evidence, which
//     callers must distinguish from "valid but outside radius"
//   - otherwise: valid iff distance to the nearest office is within its radius
func ValidateLocation(sample *attendance.Location, offices []office.Location, policy settings.GeofencePolicy, enforce bool, wfhApproved bool) attendance.GeofenceAnnotation {
	if wfhApproved && policy.AllowWFHBypass {
		return attendance.GeofenceAnnotation{Validated: true, WFHBypass: true}
	}

	if !policy.Enabled || !enforce {
		return attendance.GeofenceAnnotation{Validated: true}
	}

	active := activeOffices(offices)
	if len(active) == 0 {
		return attendance.GeofenceAnnotation{Validated: true}
	}

	if sample == nil {
		return attendance.GeofenceAnnotation{InvalidEvidence: true}
	}
	if sample.Accuracy != nil && policy.AccuracyCeilingMeters > 0 && *sample.Accuracy > policy.AccuracyCeilingMeters {
		return attendance.GeofenceAnnotation{InvalidEvidence: true}
	}

	nearest, distance := nearestOffice(*sample, active)

	ann := attendance.GeofenceAnnotation{
		Distance: &distance,
		OfficeID: &nearest.ID,
	}
	ann.Validated = distance <= nearest.RadiusMeters
	return ann
}

func activeOffices(offices []office.Location) []office.Location {
	var active []office.Location
	for _, o := range offices {
		if o.IsActive {
			active = append(active, o)
		}
	}
	return active
}

func nearestOffice(sample attendance.Location, offices []office.Location) (office.Location, float64) {
	nearest := offices[0]
	best := geo.HaversineDistance(sample.Latitude, sample.Longitude, nearest.Latitude, nearest.Longitude)
	for _, o := range offices[1:] {
		d := geo.HaversineDistance(sample.Latitude, sample.Longitude, o.Latitude, o.Longitude)
		if d < best {
			nearest, best = o, d
		}
	}
	return nearest, best
}
