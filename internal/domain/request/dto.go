package request

import (
	"time"

	"github.com/mrkunal0430/hrms/internal/pkg/validator"
)

// SubmitRequest is the payload for creating a pending request. Dates are
// "YYYY-MM-DD"; requested times (regularization only) are RFC3339.
type SubmitRequest struct {
	Kind              Kind    `json:"kind"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date,omitempty"`
	Duration          string  `json:"duration,omitempty"`
	RequestedCheckIn  *string `json:"requested_check_in,omitempty"`
	RequestedCheckOut *string `json:"requested_check_out,omitempty"`
	Reason            string  `json:"reason"`
}

func (r SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	switch r.Kind {
	case KindLeave, KindWFH, KindRegularization:
	default:
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be leave, wfh or regularization"})
	}

	start, ok := validator.IsValidDate(r.StartDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.EndDate != "" {
		end, ok := validator.IsValidDate(r.EndDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
		} else if end.Before(start) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
		}
		if r.Kind != KindLeave && r.EndDate != r.StartDate {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "only leave requests may span multiple days"})
		}
	}

	if r.Duration != "" && r.Duration != string(DurationFullDay) && r.Duration != string(DurationHalfDay) {
		errs = append(errs, validator.ValidationError{Field: "duration", Message: "must be full_day or half_day"})
	}
	if r.Duration == string(DurationHalfDay) && r.Kind != KindLeave {
		errs = append(errs, validator.ValidationError{Field: "duration", Message: "half_day applies to leave requests only"})
	}

	if r.Kind == KindRegularization {
		if r.RequestedCheckIn == nil {
			errs = append(errs, validator.ValidationError{Field: "requested_check_in", Message: "is required for regularization"})
		} else if _, ok := validator.IsValidDateTime(*r.RequestedCheckIn); !ok {
			errs = append(errs, validator.ValidationError{Field: "requested_check_in", Message: "must be a valid RFC3339 timestamp"})
		}
		if r.RequestedCheckOut != nil {
			if _, ok := validator.IsValidDateTime(*r.RequestedCheckOut); !ok {
				errs = append(errs, validator.ValidationError{Field: "requested_check_out", Message: "must be a valid RFC3339 timestamp"})
			}
		}
	} else if r.RequestedCheckIn != nil || r.RequestedCheckOut != nil {
		errs = append(errs, validator.ValidationError{Field: "requested_check_in", Message: "requested times apply to regularization only"})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReviewRequest is the payload for an approve/reject decision.
type ReviewRequest struct {
	Comment string `json:"comment,omitempty"`
}

// RequestResponse is the wire shape of a request.
type RequestResponse struct {
	ID                string  `json:"id"`
	Kind              Kind    `json:"kind"`
	EmployeeID        string  `json:"employee_id"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	Duration          string  `json:"duration,omitempty"`
	RequestedCheckIn  *string `json:"requested_check_in,omitempty"`
	RequestedCheckOut *string `json:"requested_check_out,omitempty"`
	Reason            string  `json:"reason"`
	Status            Status  `json:"status"`
	ReviewerID        *string `json:"reviewer_id,omitempty"`
	ReviewedAt        *string `json:"reviewed_at,omitempty"`
	ReviewComment     *string `json:"review_comment,omitempty"`
	CreatedAt         string  `json:"created_at"`
}

// ToResponse maps a Request to its wire shape.
func ToResponse(r Request) RequestResponse {
	return RequestResponse{
		ID:                r.ID,
		Kind:              r.Kind,
		EmployeeID:        r.EmployeeID,
		StartDate:         r.StartDate.Format("2006-01-02"),
		EndDate:           r.EndDate.Format("2006-01-02"),
		Duration:          string(r.Duration),
		RequestedCheckIn:  timePtrToString(r.RequestedCheckIn),
		RequestedCheckOut: timePtrToString(r.RequestedCheckOut),
		Reason:            r.Reason,
		Status:            r.Status,
		ReviewerID:        r.ReviewerID,
		ReviewedAt:        timePtrToString(r.ReviewedAt),
		ReviewComment:     r.ReviewComment,
		CreatedAt:         r.CreatedAt.Format(time.RFC3339),
	}
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
