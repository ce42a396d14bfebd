package notification

import "context"

// Repository persists notifications in batches written by the queue workers.
type Repository interface {
	CreateBatch(ctx context.Context, notifications []Notification) error
}
