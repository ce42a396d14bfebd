package response

import (
	"errors"
	"net/http"

	"github.com/mrkunal0430/hrms/internal/domain/attendance"
	"github.com/mrkunal0430/hrms/internal/domain/employee"
	"github.com/mrkunal0430/hrms/internal/domain/holiday"
	"github.com/mrkunal0430/hrms/internal/domain/request"
	"github.com/mrkunal0430/hrms/internal/domain/settings"
	"github.com/mrkunal0430/hrms/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrDuplicateCheckIn):
		Conflict(w, "Already checked in for this date")
	case errors.Is(err, attendance.ErrNoOpenCheckIn):
		Conflict(w, "No open check-in for this date")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out for this date")
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		BadRequest(w, "Check-out must not be before check-in", nil)
	case errors.Is(err, attendance.ErrInvalidCoordinates):
		BadRequest(w, "Invalid location coordinates", nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Request domain errors
	case errors.Is(err, request.ErrRequestNotFound):
		NotFound(w, "Request not found")
	case errors.Is(err, request.ErrDuplicatePendingRequest):
		Conflict(w, "A request of this kind already covers the date")
	case errors.Is(err, request.ErrInvalidTransition):
		Conflict(w, "Request already approved or rejected")
	case errors.Is(err, request.ErrInvalidRequestedTimes):
		BadRequest(w, "Requested check-out must be after requested check-in", nil)

	// Employee directory errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "A holiday already exists on this date")

	// Configuration errors
	case errors.Is(err, settings.ErrNoEffectiveSettings):
		InternalServerError(w, "Attendance settings are incomplete")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
