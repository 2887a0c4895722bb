package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/qrorder/internal/domain/errors"
	"github.com/polkiloo/qrorder/internal/domain/model"
)

type paymentRepository struct {
	storage *Storage
}

const paymentColumns = `id, order_id, payment_method, amount, status, transaction_id, response_data,
                        paid_at, created_at, updated_at`

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	const query = `INSERT INTO payments (id, order_id, payment_method, amount, status)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING created_at, updated_at`
	err := r.storage.conn(ctx).QueryRow(ctx, query,
		payment.ID, payment.OrderID, payment.Method, payment.Amount, payment.Status,
	).Scan(&payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	return r.get(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id=$1`, id)
}

func (r *paymentRepository) LatestByOrder(ctx context.Context, orderID uuid.UUID) (*model.Payment, error) {
	return r.get(ctx, `SELECT `+paymentColumns+` FROM payments WHERE order_id=$1
                       ORDER BY created_at DESC LIMIT 1`, orderID)
}

func (r *paymentRepository) Transition(ctx context.Context, id uuid.UUID, status model.PaymentStatus, transactionID string, raw []byte, paidAt *time.Time) (bool, error) {
	const query = `UPDATE payments
                   SET status=$2, transaction_id=COALESCE(NULLIF($3, ''), transaction_id),
                       response_data=$4, paid_at=$5, updated_at=NOW()
                   WHERE id=$1 AND status=$6`
	tag, err := r.storage.conn(ctx).Exec(ctx, query, id, status, transactionID, raw, paidAt, model.PaymentStatusPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *paymentRepository) RecordCallback(ctx context.Context, id uuid.UUID, transactionID string, raw []byte) error {
	const query = `UPDATE payments
                   SET transaction_id=COALESCE(NULLIF($2, ''), transaction_id),
                       response_data=$3, updated_at=NOW()
                   WHERE id=$1`
	tag, err := r.storage.conn(ctx).Exec(ctx, query, id, transactionID, raw)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *paymentRepository) get(ctx context.Context, query string, arg any) (*model.Payment, error) {
	var p model.Payment
	err := r.storage.conn(ctx).QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.OrderID, &p.Method, &p.Amount, &p.Status, &p.TransactionID, &p.ResponseData,
		&p.PaidAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}
