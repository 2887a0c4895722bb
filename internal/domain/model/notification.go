package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies customer-facing notifications.
type NotificationType string

const NotificationOrderConfirmed NotificationType = "order_confirmed"

// Notification is an outbox record delivered to customers asynchronously.
type Notification struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	Type        NotificationType
	Title       string
	Message     string
	CreatedAt   time.Time
	DeliveredAt *time.Time
}
