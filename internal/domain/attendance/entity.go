package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the derived daily attendance status. It is always computed by the
// resolver from the record's raw fields plus the configuration active at write
// time, never set by hand.
type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half_day"
	StatusWFH     Status = "wfh"
	StatusLeave   Status = "leave"
	StatusHoliday Status = "holiday"
	StatusWeekend Status = "weekend"
	StatusAbsent  Status = "absent"
)

// Location is a device-reported coordinate sample attached to a check-in or
// check-out event.
type Location struct {
	Latitude  float64
	Longitude float64
	Accuracy  *float64 // meters; nil when the device did not report one
}

// GeofenceAnnotation records the outcome of geofence validation for a record.
// InvalidEvidence distinguishes "the sample could not be trusted" from "the
// sample was trusted but outside the radius": both leave Validated false, but
// HR review treats them differently.
type GeofenceAnnotation struct {
	Validated       bool
	Distance        *float64 // meters to the nearest active office
	OfficeID        *string
	WFHBypass       bool
	Regularized     bool
	InvalidEvidence bool
}

// Record is the single attendance record for one (employee, date) pair.
// Exactly one record exists per employee per date; records are never deleted,
// only superseded in place.
type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time // midnight in the company timezone

	CheckIn  *time.Time
	CheckOut *time.Time

	Status    Status
	WorkHours decimal.Decimal

	CheckInLocation  *Location
	CheckOutLocation *Location
	Geofence         GeofenceAnnotation

	// Overlay flags explain why a derived status overrode the raw evidence.
	IsLeave   bool
	IsHoliday bool
	IsWeekend bool
	IsWFH     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
