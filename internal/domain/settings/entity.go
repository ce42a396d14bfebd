package settings

import (
	"fmt"
	"time"
)

// ClockTime is a time of day without a date, e.g. the scheduled start of the
// working window.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:MM".
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// At anchors the clock time on the given calendar date, in the date's
// location.
func (c ClockTime) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, date.Location())
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// WorkingHours is the scheduled daily working window.
type WorkingHours struct {
	Start ClockTime
	End   ClockTime
}

// GeofencePolicy controls location validation of check-in/check-out events.
type GeofencePolicy struct {
	Enabled               bool
	EnforceCheckIn        bool
	EnforceCheckOut       bool
	AllowWFHBypass        bool
	AccuracyCeilingMeters float64 // samples above this accuracy are invalid evidence
}

// Global holds the company-wide defaults. Every field must be present for the
// configuration to be resolvable; missing fields are a configuration error,
// never silently defaulted.
type Global struct {
	WorkingHours          *WorkingHours
	GracePeriodMinutes    *int
	HalfDayThresholdHours *float64
	HalfDayCutoff         *ClockTime
	WeekendDays           []time.Weekday
	Geofence              *GeofencePolicy
}

// DepartmentOverride replaces global fields wholesale. A present field wins
// entirely; an absent (nil) field falls through to the global value. There
// are no partial merges inside a field.
type DepartmentOverride struct {
	DepartmentID          string
	WorkingHours          *WorkingHours
	GracePeriodMinutes    *int
	HalfDayThresholdHours *float64
	HalfDayCutoff         *ClockTime
	WeekendDays           []time.Weekday
	Geofence              *GeofencePolicy
}

// Effective is the merged configuration actually applied to an employee.
// Derived, never stored.
type Effective struct {
	WorkingHours          WorkingHours
	GracePeriodMinutes    int
	HalfDayThresholdHours float64
	HalfDayCutoff         ClockTime
	WeekendDays           []time.Weekday
	Geofence              GeofencePolicy
}

// IsWeekend reports whether the weekday is a configured non-working day.
func (e Effective) IsWeekend(day time.Weekday) bool {
	for _, w := range e.WeekendDays {
		if w == day {
			return true
		}
	}
	return false
}

// GracePeriod returns the check-in grace period as a duration.
func (e Effective) GracePeriod() time.Duration {
	return time.Duration(e.GracePeriodMinutes) * time.Minute
}
