package request

import "time"

// Kind discriminates the three approval workflows sharing one state machine.
type Kind string

const (
	KindLeave          Kind = "leave"
	KindWFH            Kind = "wfh"
	KindRegularization Kind = "regularization"
)

// Status is the request lifecycle state. Terminal states are final: a
// mistaken approval is corrected with a new compensating request, never by
// reopening the old one.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Duration applies to leave requests only; WFH and regularization are always
// full-day.
type Duration string

const (
	DurationFullDay Duration = "full_day"
	DurationHalfDay Duration = "half_day"
)

// ReviewDecision is the HR/admin verdict on a pending request.
type ReviewDecision string

const (
	DecisionApprove ReviewDecision = "approve"
	DecisionReject  ReviewDecision = "reject"
)

// Request is one Leave, WFH or Regularization request. Leave requests span
// [StartDate, EndDate]; the other kinds use a single date with
// EndDate == StartDate. RequestedCheckIn/Out are set for regularization only.
type Request struct {
	ID         string
	Kind       Kind
	EmployeeID string

	StartDate time.Time
	EndDate   time.Time
	Duration  Duration

	RequestedCheckIn  *time.Time
	RequestedCheckOut *time.Time

	Reason string

	Status        Status
	ReviewerID    *string
	ReviewedAt    *time.Time
	ReviewComment *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Dates returns every calendar day the request covers, inclusive.
func (r Request) Dates() []time.Time {
	var dates []time.Time
	for d := r.StartDate; !d.After(r.EndDate); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// IsHalfDay reports whether a leave request covers only half the day.
func (r Request) IsHalfDay() bool {
	return r.Kind == KindLeave && r.Duration == DurationHalfDay
}
