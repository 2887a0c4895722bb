package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/qrorder/internal/domain/errors"
	"github.com/polkiloo/qrorder/internal/domain/model"
	"github.com/polkiloo/qrorder/internal/domain/repository"
)

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	tx      repository.Transactor
	orders  repository.OrderRepository
	pricing *PricingEngine
	logger  *slog.Logger

	now    func() time.Time
	number NumberGenerator
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(tx repository.Transactor, orders repository.OrderRepository, pricing *PricingEngine, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{
		tx:      tx,
		orders:  orders,
		pricing: pricing,
		logger:  logger,
		now:     time.Now,
		number:  DateCodedNumber,
	}
}

// Create prices the cart and stores a pending order for the session's table.
// Order and items are written in one transaction.
func (u *OrderUseCase) Create(ctx context.Context, session *model.Session, in model.OrderRequest) (*model.Order, error) {
	if session == nil {
		return nil, domainErrors.ErrSessionInvalid
	}
	if !in.DiningOption.Valid() {
		return nil, domainErrors.Validation("dining_option must be dine-in or takeout")
	}

	priced, err := u.pricing.Price(ctx, model.Cart{Items: in.Items, DiscountCode: in.DiscountCode})
	if err != nil {
		return nil, err
	}

	sessionID, tableID := session.ID, session.TableID
	order := &model.Order{
		ID:             uuid.New(),
		SessionID:      &sessionID,
		TableID:        &tableID,
		Status:         model.OrderStatusPending,
		Items:          priced.Items,
		TotalAmount:    priced.TotalAmount,
		DiscountAmount: priced.DiscountAmount,
		DiningOption:   in.DiningOption,
	}
	if priced.DiscountCode != "" {
		code := priced.DiscountCode
		order.DiscountCode = &code
	}
	if note := strings.TrimSpace(in.Note); note != "" {
		order.Note = &note
	}
	for i := range order.Items {
		order.Items[i].ID = uuid.New()
		order.Items[i].OrderID = order.ID
	}

	for attempt := 1; ; attempt++ {
		order.Number = u.number(u.now())
		err = u.tx.Atomically(ctx, func(ctx context.Context) error {
			return u.orders.Create(ctx, order)
		})
		if err == nil {
			break
		}
		if !errors.Is(err, domainErrors.ErrAlreadyExists) || attempt == orderNumberAttempts {
			return nil, err
		}
		u.logger.Warn("order number collision", slog.String("order_number", order.Number), slog.Int("attempt", attempt))
	}

	u.logger.Info("order created",
		slog.String("order_number", order.Number),
		slog.String("order_id", order.ID.String()),
		slog.String("total", order.TotalAmount.String()),
	)
	return order, nil
}

// GetForSession returns the order if it was placed from the given session.
func (u *OrderUseCase) GetForSession(ctx context.Context, session *model.Session, id uuid.UUID) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil || order.SessionID == nil || *order.SessionID != session.ID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}
