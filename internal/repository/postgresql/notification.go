package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mrkunal0430/hrms/internal/domain/notification"
	"github.com/mrkunal0430/hrms/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// CreateBatch implements notification.Repository with a single multi-row
// insert.
func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	valueStrings := make([]string, 0, len(notifications))
	valueArgs := make([]interface{}, 0, len(notifications)*9)

	for i, n := range notifications {
		dataJSON, err := json.Marshal(n.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal notification data: %w", err)
		}

		base := i * 9
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9,
		))
		valueArgs = append(valueArgs,
			n.ID, n.RecipientID, n.SenderID, string(n.Type),
			n.Title, n.Message, dataJSON, n.IsRead, n.CreatedAt,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO notifications (
			id, recipient_id, sender_id, type, title, message, data, is_read, created_at
		) VALUES %s
	`, strings.Join(valueStrings, ", "))

	if _, err := q.Exec(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("failed to batch insert notifications: %w", err)
	}

	return nil
}
