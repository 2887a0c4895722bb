package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/qrorder/internal/domain/model"
)

// PaymentRepository describes persistence operations with payment attempts.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	LatestByOrder(ctx context.Context, orderID uuid.UUID) (*model.Payment, error)
	// Transition sets a terminal status only while the payment is pending and
	// reports whether this call won the transition.
	Transition(ctx context.Context, id uuid.UUID, status model.PaymentStatus, transactionID string, raw []byte, paidAt *time.Time) (bool, error)
	// RecordCallback stores audit fields without touching status.
	RecordCallback(ctx context.Context, id uuid.UUID, transactionID string, raw []byte) error
}
