package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/qrorder/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create stores the order together with its items. A duplicate order
	// number yields ErrAlreadyExists.
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	GetByNumber(ctx context.Context, number string) (*model.Order, error)
	// Confirm moves a pending order to confirmed and reports whether this
	// call performed the transition.
	Confirm(ctx context.Context, id uuid.UUID) (bool, error)
}
