package notification

import "time"

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeRequestSubmitted  NotificationType = "request_submitted"
	TypeRequestApproved   NotificationType = "request_approved"
	TypeRequestRejected   NotificationType = "request_rejected"
	TypeAttendanceFlagged NotificationType = "attendance_flagged"
	TypeMarkedAbsent      NotificationType = "marked_absent"
)

// Notification represents a notification entity
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
