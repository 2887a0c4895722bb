package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/qrorder/internal/domain/model"
)

// NotificationRepository is the notification outbox.
type NotificationRepository interface {
	// Create inserts the notification unless one of the same type already
	// exists for the order, reporting whether a row was written.
	Create(ctx context.Context, n *model.Notification) (bool, error)
	// ClaimUndelivered leases up to limit undelivered notifications so that
	// concurrent dispatchers do not publish the same row at once.
	ClaimUndelivered(ctx context.Context, limit int) ([]model.Notification, error)
	MarkDelivered(ctx context.Context, id uuid.UUID) error
}
