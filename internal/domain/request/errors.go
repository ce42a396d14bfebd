package request

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Request domain errors
var (
	ErrRequestNotFound         = errors.New("request not found")
	ErrDuplicatePendingRequest = errors.New("a non-rejected request of this kind already exists for the date")
	ErrInvalidTransition       = errors.New("request has already been approved or rejected")
	ErrInvalidRequestedTimes   = errors.New("requested check-out must be after requested check-in")
)

// RecomputationError reports that a request was approved and the approval
// persisted, but the downstream attendance re-resolution failed. The approval
// is an administrative fact and stands; the affected days are queued for
// asynchronous retry until consistent.
type RecomputationError struct {
	RequestID string
	Kind      Kind
	Dates     []time.Time
	Err       error
}

func (e *RecomputationError) Error() string {
	days := make([]string, len(e.Dates))
	for i, d := range e.Dates {
		days[i] = d.Format("2006-01-02")
	}
	return fmt.Sprintf("approval %s (%s) persisted but attendance recomputation failed for %s: %v",
		e.RequestID, e.Kind, strings.Join(days, ","), e.Err)
}

func (e *RecomputationError) Unwrap() error {
	return e.Err
}
