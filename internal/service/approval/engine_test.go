package approval

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrkunal0430/hrms/internal/domain/request"
	"github.com/mrkunal0430/hrms/internal/pkg/validator"
)

type fakeRequestStore struct {
	byID      map[string]request.Request
	hasActive bool
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{byID: make(map[string]request.Request)}
}

func (f *fakeRequestStore) Create(_ context.Context, req request.Request) (request.Request, error) {
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	f.byID[req.ID] = req
	return req, nil
}

func (f *fakeRequestStore) GetByID(_ context.Context, id string) (request.Request, error) {
	if req, ok := f.byID[id]; ok {
		return req, nil
	}
	return request.Request{}, request.ErrRequestNotFound
}

func (f *fakeRequestStore) UpdateReview(_ context.Context, req request.Request) error {
	stored, ok := f.byID[req.ID]
	if !ok || stored.Status != request.StatusPending {
		return request.ErrInvalidTransition
	}
	f.byID[req.ID] = req
	return nil
}

func (f *fakeRequestStore) HasActiveForRange(context.Context, request.Kind, string, time.Time, time.Time) (bool, error) {
	return f.hasActive, nil
}

func (f *fakeRequestStore) ApprovedLeaveForDate(context.Context, string, time.Time) (*request.Request, error) {
	return nil, nil
}

func (f *fakeRequestStore) HasApprovedWFH(context.Context, string, time.Time) (bool, error) {
	return false, nil
}

func (f *fakeRequestStore) HasPendingRegularization(context.Context, string, time.Time) (bool, error) {
	return false, nil
}

func (f *fakeRequestStore) ListByEmployee(context.Context, string, request.ListFilter) ([]request.Request, int64, error) {
	return nil, 0, nil
}

func (f *fakeRequestStore) List(context.Context, request.ListFilter) ([]request.Request, int64, error) {
	return nil, 0, nil
}

type fakeQueue struct {
	entries map[string]request.RecomputeEntry
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{entries: make(map[string]request.RecomputeEntry)}
}

func (f *fakeQueue) Enqueue(_ context.Context, requestID string, cause string) error {
	entry := f.entries[requestID]
	entry.RequestID = requestID
	entry.Attempts++
	entry.LastError = cause
	entry.QueuedAt = time.Now()
	f.entries[requestID] = entry
	return nil
}

func (f *fakeQueue) List(_ context.Context, limit int) ([]request.RecomputeEntry, error) {
	var out []request.RecomputeEntry
	for _, e := range f.entries {
		if len(out) == limit {
			break
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeQueue) Remove(_ context.Context, requestID string) error {
	delete(f.entries, requestID)
	return nil
}

type applyRecorder struct {
	calls []request.Request
	err   error
}

func (a *applyRecorder) apply(_ context.Context, req request.Request) error {
	a.calls = append(a.calls, req)
	return a.err
}

func newTestEngine(store *fakeRequestStore, queue *fakeQueue, recorder *applyRecorder) *Engine {
	return NewEngine(store, queue, nil, map[request.Kind]ApplyFunc{
		request.KindLeave:          recorder.apply,
		request.KindWFH:            recorder.apply,
		request.KindRegularization: recorder.apply,
	})
}

func leavePayload() request.SubmitRequest {
	return request.SubmitRequest{
		Kind:      request.KindLeave,
		StartDate: "2025-03-03",
		EndDate:   "2025-03-05",
		Reason:    "family function",
	}
}

func TestEngine_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending request", func(t *testing.T) {
		store := newFakeRequestStore()
		engine := newTestEngine(store, newFakeQueue(), &applyRecorder{})

		created, err := engine.Submit(ctx, "emp-1", leavePayload())
		require.NoError(t, err)

		assert.Equal(t, request.StatusPending, created.Status)
		assert.Equal(t, request.DurationFullDay, created.Duration)
		assert.Equal(t, "2025-03-03", created.StartDate.Format("2006-01-02"))
		assert.Equal(t, "2025-03-05", created.EndDate.Format("2006-01-02"))
		assert.NotEmpty(t, created.ID)
	})

	t.Run("single-day default when end date omitted", func(t *testing.T) {
		store := newFakeRequestStore()
		engine := newTestEngine(store, newFakeQueue(), &applyRecorder{})

		payload := leavePayload()
		payload.EndDate = ""

		created, err := engine.Submit(ctx, "emp-1", payload)
		require.NoError(t, err)
		assert.Equal(t, created.StartDate, created.EndDate)
	})

	t.Run("rejects an overlapping request of the same kind", func(t *testing.T) {
		store := newFakeRequestStore()
		store.hasActive = true
		engine := newTestEngine(store, newFakeQueue(), &applyRecorder{})

		_, err := engine.Submit(ctx, "emp-1", leavePayload())
		assert.ErrorIs(t, err, request.ErrDuplicatePendingRequest)
	})

	t.Run("rejects an invalid payload", func(t *testing.T) {
		store := newFakeRequestStore()
		engine := newTestEngine(store, newFakeQueue(), &applyRecorder{})

		_, err := engine.Submit(ctx, "emp-1", request.SubmitRequest{Kind: "vacation", StartDate: "not-a-date"})
		require.Error(t, err)

		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})

	t.Run("rejects inverted regularization times", func(t *testing.T) {
		store := newFakeRequestStore()
		engine := newTestEngine(store, newFakeQueue(), &applyRecorder{})

		in := "2025-03-03T18:00:00Z"
		out := "2025-03-03T09:00:00Z"
		_, err := engine.Submit(ctx, "emp-1", request.SubmitRequest{
			Kind:              request.KindRegularization,
			StartDate:         "2025-03-03",
			RequestedCheckIn:  &in,
			RequestedCheckOut: &out,
			Reason:            "forgot badge",
		})
		assert.ErrorIs(t, err, request.ErrInvalidRequestedTimes)
	})
}

func TestEngine_Review(t *testing.T) {
	ctx := context.Background()

	submit := func(t *testing.T, engine *Engine) request.Request {
		t.Helper()
		created, err := engine.Submit(ctx, "emp-1", leavePayload())
		require.NoError(t, err)
		return created
	}

	t.Run("approval persists and triggers the apply", func(t *testing.T) {
		store := newFakeRequestStore()
		recorder := &applyRecorder{}
		engine := newTestEngine(store, newFakeQueue(), recorder)
		created := submit(t, engine)

		reviewed, err := engine.Review(ctx, created.ID, "admin-1", request.DecisionApprove, "ok")
		require.NoError(t, err)

		assert.Equal(t, request.StatusApproved, reviewed.Status)
		require.NotNil(t, reviewed.ReviewerID)
		assert.Equal(t, "admin-1", *reviewed.ReviewerID)
		require.NotNil(t, reviewed.ReviewedAt)
		require.Len(t, recorder.calls, 1)
		assert.Equal(t, created.ID, recorder.calls[0].ID)
	})

	t.Run("rejection persists without applying", func(t *testing.T) {
		store := newFakeRequestStore()
		recorder := &applyRecorder{}
		engine := newTestEngine(store, newFakeQueue(), recorder)
		created := submit(t, engine)

		reviewed, err := engine.Review(ctx, created.ID, "admin-1", request.DecisionReject, "quota exhausted")
		require.NoError(t, err)

		assert.Equal(t, request.StatusRejected, reviewed.Status)
		assert.Empty(t, recorder.calls)
	})

	t.Run("terminal states are final", func(t *testing.T) {
		store := newFakeRequestStore()
		engine := newTestEngine(store, newFakeQueue(), &applyRecorder{})
		created := submit(t, engine)

		_, err := engine.Review(ctx, created.ID, "admin-1", request.DecisionReject, "")
		require.NoError(t, err)

		_, err = engine.Review(ctx, created.ID, "admin-2", request.DecisionApprove, "")
		assert.ErrorIs(t, err, request.ErrInvalidTransition)
	})

	t.Run("unknown request", func(t *testing.T) {
		engine := newTestEngine(newFakeRequestStore(), newFakeQueue(), &applyRecorder{})

		_, err := engine.Review(ctx, "missing", "admin-1", request.DecisionApprove, "")
		assert.ErrorIs(t, err, request.ErrRequestNotFound)
	})

	t.Run("apply failure keeps the approval and queues a retry", func(t *testing.T) {
		store := newFakeRequestStore()
		queue := newFakeQueue()
		recorder := &applyRecorder{err: errors.New("db unavailable")}
		engine := newTestEngine(store, queue, recorder)
		created := submit(t, engine)

		reviewed, err := engine.Review(ctx, created.ID, "admin-1", request.DecisionApprove, "")
		require.Error(t, err)

		var recompute *request.RecomputationError
		require.ErrorAs(t, err, &recompute)
		assert.Equal(t, created.ID, recompute.RequestID)
		assert.Len(t, recompute.Dates, 3)

		// The approval is an administrative fact and must stand.
		assert.Equal(t, request.StatusApproved, reviewed.Status)
		stored, getErr := store.GetByID(ctx, created.ID)
		require.NoError(t, getErr)
		assert.Equal(t, request.StatusApproved, stored.Status)

		entry, ok := queue.entries[created.ID]
		require.True(t, ok)
		assert.Equal(t, 1, entry.Attempts)
	})
}

func TestEngine_Reapply(t *testing.T) {
	ctx := context.Background()

	t.Run("re-runs the apply for an approved request", func(t *testing.T) {
		store := newFakeRequestStore()
		recorder := &applyRecorder{err: errors.New("db unavailable")}
		engine := newTestEngine(store, newFakeQueue(), recorder)

		created, err := engine.Submit(ctx, "emp-1", leavePayload())
		require.NoError(t, err)
		_, err = engine.Review(ctx, created.ID, "admin-1", request.DecisionApprove, "")
		require.Error(t, err)

		// Downstream recovered.
		recorder.err = nil

		require.NoError(t, engine.Reapply(ctx, created.ID))
		assert.Len(t, recorder.calls, 2)
	})

	t.Run("ignores non-approved requests", func(t *testing.T) {
		store := newFakeRequestStore()
		recorder := &applyRecorder{}
		engine := newTestEngine(store, newFakeQueue(), recorder)

		created, err := engine.Submit(ctx, "emp-1", leavePayload())
		require.NoError(t, err)

		require.NoError(t, engine.Reapply(ctx, created.ID))
		assert.Empty(t, recorder.calls)
	})
}
