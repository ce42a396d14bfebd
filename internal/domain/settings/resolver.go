package settings

import "fmt"

// ResolveEffective merges the global settings with an optional department
// override. The merge is an explicit per-field selection, not a generic deep
// merge: each top-level field comes entirely from the override when present,
// entirely from global otherwise.
func ResolveEffective(global Global, dept *DepartmentOverride) (Effective, error) {
	var eff Effective

	workingHours := global.WorkingHours
	gracePeriod := global.GracePeriodMinutes
	halfDayThreshold := global.HalfDayThresholdHours
	halfDayCutoff := global.HalfDayCutoff
	weekendDays := global.WeekendDays
	geofence := global.Geofence

	if dept != nil {
		if dept.WorkingHours != nil {
			workingHours = dept.WorkingHours
		}
		if dept.GracePeriodMinutes != nil {
			gracePeriod = dept.GracePeriodMinutes
		}
		if dept.HalfDayThresholdHours != nil {
			halfDayThreshold = dept.HalfDayThresholdHours
		}
		if dept.HalfDayCutoff != nil {
			halfDayCutoff = dept.HalfDayCutoff
		}
		if dept.WeekendDays != nil {
			weekendDays = dept.WeekendDays
		}
		if dept.Geofence != nil {
			geofence = dept.Geofence
		}
	}

	switch {
	case workingHours == nil:
		return eff, fmt.Errorf("%w: working hours", ErrNoEffectiveSettings)
	case gracePeriod == nil:
		return eff, fmt.Errorf("%w: grace period", ErrNoEffectiveSettings)
	case halfDayThreshold == nil:
		return eff, fmt.Errorf("%w: half-day threshold", ErrNoEffectiveSettings)
	case halfDayCutoff == nil:
		return eff, fmt.Errorf("%w: half-day cutoff", ErrNoEffectiveSettings)
	case weekendDays == nil:
		return eff, fmt.Errorf("%w: weekend days", ErrNoEffectiveSettings)
	case geofence == nil:
		return eff, fmt.Errorf("%w: geofence policy", ErrNoEffectiveSettings)
	}

	eff = Effective{
		WorkingHours:          *workingHours,
		GracePeriodMinutes:    *gracePeriod,
		HalfDayThresholdHours: *halfDayThreshold,
		HalfDayCutoff:         *halfDayCutoff,
		WeekendDays:           weekendDays,
		Geofence:              *geofence,
	}
	return eff, nil
}
