package attendance

import (
	"time"

	"github.com/mrkunal0430/hrms/internal/pkg/validator"
)

// CheckInRequest is the payload for a check-in event. The event timestamp is
// assigned server-side; only the location sample comes from the device.
type CheckInRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

func (r CheckInRequest) Validate() error {
	var errs validator.ValidationErrors
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{Field: "location", Message: "latitude and longitude must be provided together"})
	}
	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "must be between -90 and 90"})
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "must be between -180 and 180"})
	}
	if r.Accuracy != nil && *r.Accuracy < 0 {
		errs = append(errs, validator.ValidationError{Field: "accuracy", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Sample converts the request coordinates to a Location, or nil when the
// device sent none.
func (r CheckInRequest) Sample() *Location {
	if r.Latitude == nil || r.Longitude == nil {
		return nil
	}
	return &Location{Latitude: *r.Latitude, Longitude: *r.Longitude, Accuracy: r.Accuracy}
}

// CheckOutRequest mirrors CheckInRequest for the closing event.
type CheckOutRequest = CheckInRequest

// RecordResponse is the wire shape of an attendance record.
type RecordResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
	Status     Status  `json:"status"`
	WorkHours  string  `json:"work_hours"`

	GeofenceValidated bool     `json:"geofence_validated"`
	GeofenceDistance  *float64 `json:"geofence_distance,omitempty"`
	MatchedOfficeID   *string  `json:"matched_office_id,omitempty"`
	WFHBypass         bool     `json:"wfh_bypass,omitempty"`
	Regularized       bool     `json:"regularized,omitempty"`
	InvalidEvidence   bool     `json:"invalid_location_evidence,omitempty"`

	IsLeave   bool `json:"is_leave,omitempty"`
	IsHoliday bool `json:"is_holiday,omitempty"`
	IsWeekend bool `json:"is_weekend,omitempty"`
	IsWFH     bool `json:"is_wfh,omitempty"`
}

// ToResponse maps a Record to its wire shape.
func ToResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:                r.ID,
		EmployeeID:        r.EmployeeID,
		Date:              r.Date.Format("2006-01-02"),
		CheckIn:           timePtrToString(r.CheckIn),
		CheckOut:          timePtrToString(r.CheckOut),
		Status:            r.Status,
		WorkHours:         r.WorkHours.StringFixed(2),
		GeofenceValidated: r.Geofence.Validated,
		GeofenceDistance:  r.Geofence.Distance,
		MatchedOfficeID:   r.Geofence.OfficeID,
		WFHBypass:         r.Geofence.WFHBypass,
		Regularized:       r.Geofence.Regularized,
		InvalidEvidence:   r.Geofence.InvalidEvidence,
		IsLeave:           r.IsLeave,
		IsHoliday:         r.IsHoliday,
		IsWeekend:         r.IsWeekend,
		IsWFH:             r.IsWFH,
	}
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
