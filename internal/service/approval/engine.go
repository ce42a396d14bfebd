package approval

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mrkunal0430/hrms/internal/domain/notification"
	"github.com/mrkunal0430/hrms/internal/domain/request"
)

// ApplyFunc materializes an approved request's effect on attendance records.
// The engine runs it after the approval is persisted; a failure here never
// rolls the approval back.
type ApplyFunc func(ctx context.Context, req request.Request) error

// Engine runs the shared submit/review state machine for all request kinds.
// Kind-specific behavior lives entirely in the ApplyFunc registered per kind.
type Engine struct {
	requests request.Repository
	queue    request.RecomputeQueue
	notifier notification.Service
	apply    map[request.Kind]ApplyFunc
	now      func() time.Time
}

func NewEngine(requests request.Repository, queue request.RecomputeQueue, notifier notification.Service, apply map[request.Kind]ApplyFunc) *Engine {
	return &Engine{
		requests: requests,
		queue:    queue,
		notifier: notifier,
		apply:    apply,
		now:      time.Now,
	}
}

// Submit validates the payload and creates a pending request. At most one
// non-rejected request of a kind may cover any date: overlapping submissions
// fail with ErrDuplicatePendingRequest.
func (e *Engine) Submit(ctx context.Context, employeeID string, payload request.SubmitRequest) (request.Request, error) {
	if err := payload.Validate(); err != nil {
		return request.Request{}, err
	}

	start, _ := time.Parse("2006-01-02", payload.StartDate)
	end := start
	if payload.EndDate != "" {
		end, _ = time.Parse("2006-01-02", payload.EndDate)
	}

	duplicate, err := e.requests.HasActiveForRange(ctx, payload.Kind, employeeID, start, end)
	if err != nil {
		return request.Request{}, fmt.Errorf("failed to check overlapping requests: %w", err)
	}
	if duplicate {
		return request.Request{}, request.ErrDuplicatePendingRequest
	}

	req := request.Request{
		ID:         uuid.NewString(),
		Kind:       payload.Kind,
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
		Duration:   request.DurationFullDay,
		Reason:     payload.Reason,
		Status:     request.StatusPending,
	}
	if payload.Duration == string(request.DurationHalfDay) {
		req.Duration = request.DurationHalfDay
	}
	if payload.RequestedCheckIn != nil {
		t, _ := time.Parse(time.RFC3339, *payload.RequestedCheckIn)
		req.RequestedCheckIn = &t
	}
	if payload.RequestedCheckOut != nil {
		t, _ := time.Parse(time.RFC3339, *payload.RequestedCheckOut)
		req.RequestedCheckOut = &t
	}
	if req.RequestedCheckIn != nil && req.RequestedCheckOut != nil &&
		req.RequestedCheckOut.Before(*req.RequestedCheckIn) {
		return request.Request{}, request.ErrInvalidRequestedTimes
	}

	created, err := e.requests.Create(ctx, req)
	if err != nil {
		return request.Request{}, fmt.Errorf("failed to create request: %w", err)
	}

	e.notify(ctx, created, notification.TypeRequestSubmitted, "Request submitted")

	return created, nil
}

// Review applies a terminal decision to a pending request. The decision is
// persisted before any attendance recomputation runs: if recomputation fails,
// the approval stands, the request is queued for retry and the returned error
// is a *request.RecomputationError alongside the updated request.
func (e *Engine) Review(ctx context.Context, requestID, reviewerID string, decision request.ReviewDecision, comment string) (request.Request, error) {
	req, err := e.requests.GetByID(ctx, requestID)
	if err != nil {
		return request.Request{}, err
	}
	if req.Status != request.StatusPending {
		return req, request.ErrInvalidTransition
	}

	now := e.now()
	req.ReviewerID = &reviewerID
	req.ReviewedAt = &now
	if comment != "" {
		req.ReviewComment = &comment
	}
	switch decision {
	case request.DecisionApprove:
		req.Status = request.StatusApproved
	case request.DecisionReject:
		req.Status = request.StatusRejected
	default:
		return req, fmt.Errorf("unknown review decision %q", decision)
	}

	if err := e.requests.UpdateReview(ctx, req); err != nil {
		return request.Request{}, fmt.Errorf("failed to persist review: %w", err)
	}

	if req.Status == request.StatusApproved {
		if err := e.runApply(ctx, req); err != nil {
			e.notify(ctx, req, notification.TypeRequestApproved, "Request approved")
			return req, err
		}
		e.notify(ctx, req, notification.TypeRequestApproved, "Request approved")
		return req, nil
	}

	e.notify(ctx, req, notification.TypeRequestRejected, "Request rejected")
	return req, nil
}

// Reapply re-runs the attendance recomputation for an already-approved
// request. Used by the retry job draining the recompute queue.
func (e *Engine) Reapply(ctx context.Context, requestID string) error {
	req, err := e.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Status != request.StatusApproved {
		// Stale queue entry; nothing to recompute.
		return nil
	}
	fn, ok := e.apply[req.Kind]
	if !ok {
		return fmt.Errorf("no apply registered for kind %s", req.Kind)
	}
	return fn(ctx, req)
}

// ListByEmployee returns the employee's own requests.
func (e *Engine) ListByEmployee(ctx context.Context, employeeID string, filter request.ListFilter) ([]request.Request, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	return e.requests.ListByEmployee(ctx, employeeID, filter)
}

// List returns requests across all employees, for reviewers.
func (e *Engine) List(ctx context.Context, filter request.ListFilter) ([]request.Request, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	return e.requests.List(ctx, filter)
}

func (e *Engine) runApply(ctx context.Context, req request.Request) error {
	fn, ok := e.apply[req.Kind]
	if !ok {
		return fmt.Errorf("no apply registered for kind %s", req.Kind)
	}

	applyErr := fn(ctx, req)
	if applyErr == nil {
		return nil
	}

	if err := e.queue.Enqueue(ctx, req.ID, applyErr.Error()); err != nil {
		slog.Error("failed to enqueue recomputation retry",
			"request_id", req.ID, "kind", req.Kind, "error", err)
	}

	return &request.RecomputationError{
		RequestID: req.ID,
		Kind:      req.Kind,
		Dates:     req.Dates(),
		Err:       applyErr,
	}
}

func (e *Engine) notify(ctx context.Context, req request.Request, typ notification.NotificationType, title string) {
	if e.notifier == nil {
		return
	}
	err := e.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: req.EmployeeID,
		SenderID:    req.ReviewerID,
		Type:        typ,
		Title:       title,
		Message:     fmt.Sprintf("%s request for %s is %s", req.Kind, req.StartDate.Format("2006-01-02"), req.Status),
		Data: map[string]interface{}{
			"request_id": req.ID,
			"kind":       string(req.Kind),
		},
	})
	if err != nil {
		slog.Warn("failed to queue request notification", "request_id", req.ID, "error", err)
	}
}
