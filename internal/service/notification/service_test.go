package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrkunal0430/hrms/internal/domain/notification"
)

type fakeNotificationRepo struct {
	mu      sync.Mutex
	batches [][]notification.Notification
}

func (f *fakeNotificationRepo) CreateBatch(_ context.Context, notifications []notification.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, notifications)
	return nil
}

func (f *fakeNotificationRepo) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.batches {
		n += len(b)
	}
	return n
}

func TestNotificationService_FlushOnShutdown(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, Config{
		BatchSize:     100,
		FlushInterval: time.Hour, // never fires during the test
		WorkerCount:   1,
	})

	for i := 0; i < 5; i++ {
		err := svc.QueueNotification(context.Background(), notification.CreateNotificationRequest{
			RecipientID: "emp-1",
			Type:        notification.TypeRequestSubmitted,
			Title:       "Request submitted",
		})
		require.NoError(t, err)
	}

	svc.Shutdown()

	assert.Equal(t, 5, repo.total())
}

func TestNotificationService_FlushOnBatchSize(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, Config{
		BatchSize:     2,
		FlushInterval: time.Hour,
		WorkerCount:   1,
	})
	defer svc.Shutdown()

	for i := 0; i < 4; i++ {
		err := svc.QueueNotification(context.Background(), notification.CreateNotificationRequest{
			RecipientID: "emp-1",
			Type:        notification.TypeRequestApproved,
			Title:       "Request approved",
		})
		require.NoError(t, err)
	}

	assert.Eventually(t, func() bool {
		return repo.total() >= 4
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNotificationService_EntityFields(t *testing.T) {
	sender := "admin-1"
	n := toEntity(notification.CreateNotificationRequest{
		RecipientID: "emp-1",
		SenderID:    &sender,
		Type:        notification.TypeRequestRejected,
		Title:       "Request rejected",
		Message:     "quota exhausted",
	})

	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "emp-1", n.RecipientID)
	assert.Equal(t, notification.TypeRequestRejected, n.Type)
	assert.False(t, n.IsRead)
	assert.False(t, n.CreatedAt.IsZero())
}
