package model

import "time"

// NotificationStatusDefault selects the order-created template instead of
// a status-specific one.
const NotificationStatusDefault = "default"

// Notification is the payload handed to the notifier queue when an order
// is created or its status changes. Status holds the order status string
// or NotificationStatusDefault for the creation mail.
type Notification struct {
	OrderID  string    `json:"orderId"`
	Email    string    `json:"email"`
	Status   string    `json:"status"`
	QueuedAt time.Time `json:"queuedAt"`
}

// NotificationState is the recorded outcome of a send attempt.
type NotificationState string

const (
	NotificationStateSent   NotificationState = "sent"
	NotificationStateFailed NotificationState = "failed"
)

// NotificationLog is one row per notification attempt outcome, kept for
// the admin dashboard and for auditing transport flakiness.
type NotificationLog struct {
	ID         int64             `json:"id"`
	OrderID    string            `json:"orderId"`
	Email      string            `json:"email"`
	Status     string            `json:"status"`
	State      NotificationState `json:"state"`
	ProviderID string            `json:"providerId,omitempty"`
	SentAt     *time.Time        `json:"sentAt,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}
