package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrDuplicateCheckIn      = errors.New("a check-in already exists for this day")
	ErrNoOpenCheckIn         = errors.New("no check-in exists for this day")
	ErrAlreadyCheckedOut     = errors.New("a check-out already exists for this day")
	ErrCheckOutBeforeCheckIn = errors.New("check-out must be after check-in")
	ErrInvalidCoordinates    = errors.New("invalid location coordinates")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)
