package notification

import "context"

// CreateNotificationRequest is the payload accepted by the queue.
type CreateNotificationRequest struct {
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
}

// Service delivers notifications fire-and-forget: queueing never blocks the
// caller and delivery failures are logged, not propagated.
type Service interface {
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error
	Shutdown()
}
