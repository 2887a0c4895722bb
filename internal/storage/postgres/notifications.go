package postgres

import (
	"context"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/qrorder/internal/domain/errors"
	"github.com/polkiloo/qrorder/internal/domain/model"
)

// claimLease is how long a claimed notification stays invisible to other
// dispatchers before it may be claimed again.
const claimLease = "30 seconds"

type notificationRepository struct {
	storage *Storage
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) (bool, error) {
	const query = `INSERT INTO notifications (id, order_id, type, title, message)
                   VALUES ($1, $2, $3, $4, $5)
                   ON CONFLICT (order_id, type) DO NOTHING`
	tag, err := r.storage.conn(ctx).Exec(ctx, query, n.ID, n.OrderID, n.Type, n.Title, n.Message)
	if err != nil {
		return false, translate(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *notificationRepository) ClaimUndelivered(ctx context.Context, limit int) ([]model.Notification, error) {
	const query = `UPDATE notifications SET claimed_at=NOW()
                   WHERE id IN (
                       SELECT id FROM notifications
                       WHERE delivered_at IS NULL
                         AND (claimed_at IS NULL OR claimed_at < NOW() - $2::interval)
                       ORDER BY created_at
                       LIMIT $1
                       FOR UPDATE SKIP LOCKED
                   )
                   RETURNING id, order_id, type, title, message, created_at, delivered_at`
	rows, err := r.storage.conn(ctx).Query(ctx, query, limit, claimLease)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.OrderID, &n.Type, &n.Title, &n.Message, &n.CreatedAt, &n.DeliveredAt); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

func (r *notificationRepository) MarkDelivered(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE notifications SET delivered_at=NOW() WHERE id=$1`
	tag, err := r.storage.conn(ctx).Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
