package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/qrorder/internal/domain/errors"
	"github.com/polkiloo/qrorder/internal/domain/model"
	"github.com/polkiloo/qrorder/internal/domain/repository"
)

// CallbackVerifier authenticates and interprets gateway result callbacks.
type CallbackVerifier interface {
	Validate(fields map[string]string) (bool, error)
	ParseResult(fields map[string]string) (model.PaymentResult, error)
}

const (
	confirmedTitle   = "Order confirmed"
	confirmedMessage = "Your order is confirmed and being prepared."
)

// SettlementUseCase applies gateway callbacks to stored payments and orders.
// Every callback runs in one transaction and every state change is a
// conditional write, so replays and concurrent deliveries apply at most once.
type SettlementUseCase struct {
	tx            repository.Transactor
	orders        repository.OrderRepository
	payments      repository.PaymentRepository
	notifications repository.NotificationRepository
	verifier      CallbackVerifier
	logger        *slog.Logger
	now           func() time.Time
}

// NewSettlementUseCase constructs SettlementUseCase.
func NewSettlementUseCase(
	tx repository.Transactor,
	orders repository.OrderRepository,
	payments repository.PaymentRepository,
	notifications repository.NotificationRepository,
	verifier CallbackVerifier,
	logger *slog.Logger,
) *SettlementUseCase {
	return &SettlementUseCase{
		tx:            tx,
		orders:        orders,
		payments:      payments,
		notifications: notifications,
		verifier:      verifier,
		logger:        logger,
		now:           time.Now,
	}
}

// Apply verifies the callback and settles the latest payment of the order it
// names. Rejections return ErrInvalidSignature, ErrAmountMismatch,
// ErrNotFound or ErrValidation without touching stored state.
func (u *SettlementUseCase) Apply(ctx context.Context, fields map[string]string) (*model.SettlementOutcome, error) {
	valid, err := u.verifier.Validate(fields)
	if err != nil {
		u.logger.Error("callback verifier unavailable", slog.Any("error", err))
		return nil, err
	}

	result, parseErr := u.verifier.ParseResult(fields)
	if !valid {
		u.logger.Warn("callback signature mismatch", slog.String("order_number", result.OrderNumber))
		return nil, domainErrors.ErrInvalidSignature
	}
	if parseErr != nil {
		u.logger.Warn("malformed callback", slog.Any("error", parseErr))
		return nil, parseErr
	}

	raw, err := json.Marshal(result.Raw)
	if err != nil {
		return nil, fmt.Errorf("encode callback payload: %w", err)
	}

	var outcome *model.SettlementOutcome
	err = u.tx.Atomically(ctx, func(ctx context.Context) error {
		var err error
		outcome, err = u.settle(ctx, result, raw)
		return err
	})
	if err != nil {
		u.logRejection(result, err)
		return nil, err
	}

	u.logger.Info("payment callback applied",
		slog.String("order_number", result.OrderNumber),
		slog.String("payment_id", outcome.PaymentID.String()),
		slog.String("status", string(outcome.Status)),
		slog.Bool("transitioned", outcome.Transitioned),
		slog.Bool("order_confirmed", outcome.OrderConfirmed),
	)
	return outcome, nil
}

func (u *SettlementUseCase) settle(ctx context.Context, result model.PaymentResult, raw []byte) (*model.SettlementOutcome, error) {
	order, err := u.orders.GetByNumber(ctx, result.OrderNumber)
	if err != nil {
		return nil, err
	}

	payment, err := u.payments.LatestByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	if result.Amount != nil && !result.Amount.Equal(payment.Amount.Floor()) {
		return nil, fmt.Errorf("%w: got %s, expected %s", domainErrors.ErrAmountMismatch, result.Amount, payment.Amount.Floor())
	}

	status := model.PaymentStatusFailed
	var paidAt *time.Time
	if result.Success {
		status = model.PaymentStatusSuccess
		now := u.now()
		paidAt = &now
	}

	outcome := &model.SettlementOutcome{PaymentID: payment.ID, OrderID: order.ID, Status: status}

	outcome.Transitioned, err = u.payments.Transition(ctx, payment.ID, status, result.TransactionID, raw, paidAt)
	if err != nil {
		return nil, err
	}
	if !outcome.Transitioned {
		if err := u.payments.RecordCallback(ctx, payment.ID, result.TransactionID, raw); err != nil {
			return nil, err
		}
		current, err := u.payments.GetByID(ctx, payment.ID)
		if err != nil {
			return nil, err
		}
		outcome.Status = current.Status
	}

	if !result.Success || outcome.Status != model.PaymentStatusSuccess {
		return outcome, nil
	}

	outcome.OrderConfirmed, err = u.orders.Confirm(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if !outcome.OrderConfirmed {
		return outcome, nil
	}

	outcome.NotificationCreated, err = u.notifications.Create(ctx, &model.Notification{
		ID:      uuid.New(),
		OrderID: order.ID,
		Type:    model.NotificationOrderConfirmed,
		Title:   confirmedTitle,
		Message: confirmedMessage,
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

func (u *SettlementUseCase) logRejection(result model.PaymentResult, err error) {
	attrs := []any{slog.String("order_number", result.OrderNumber), slog.Any("error", err)}
	switch {
	case errors.Is(err, domainErrors.ErrAmountMismatch):
		u.logger.Warn("callback amount mismatch", attrs...)
	case errors.Is(err, domainErrors.ErrNotFound):
		u.logger.Warn("callback for unknown order", attrs...)
	default:
		u.logger.Error("apply payment callback", attrs...)
	}
}
