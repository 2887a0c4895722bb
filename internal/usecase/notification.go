package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/polkiloo/qrorder/internal/domain/model"
	"github.com/polkiloo/qrorder/internal/domain/repository"
)

// NotificationPublisher hands a notification to the customer channel.
type NotificationPublisher interface {
	Publish(ctx context.Context, n model.Notification) error
}

// NotificationUseCase drains the notification outbox.
type NotificationUseCase struct {
	notifications repository.NotificationRepository
	publisher     NotificationPublisher
	logger        *slog.Logger
}

// NewNotificationUseCase constructs NotificationUseCase.
func NewNotificationUseCase(notifications repository.NotificationRepository, publisher NotificationPublisher, logger *slog.Logger) *NotificationUseCase {
	return &NotificationUseCase{notifications: notifications, publisher: publisher, logger: logger}
}

// Claim leases a batch of undelivered notifications.
func (u *NotificationUseCase) Claim(ctx context.Context, limit int) ([]model.Notification, error) {
	return u.notifications.ClaimUndelivered(ctx, limit)
}

// Deliver publishes n and marks it delivered. A notification whose publish
// fails stays undelivered and is claimed again after its lease expires.
func (u *NotificationUseCase) Deliver(ctx context.Context, n model.Notification) error {
	if err := u.publisher.Publish(ctx, n); err != nil {
		return fmt.Errorf("publish notification %s: %w", n.ID, err)
	}
	if err := u.notifications.MarkDelivered(ctx, n.ID); err != nil {
		return fmt.Errorf("mark notification %s delivered: %w", n.ID, err)
	}
	u.logger.Info("notification delivered",
		slog.String("notification_id", n.ID.String()),
		slog.String("order_id", n.OrderID.String()))
	return nil
}
