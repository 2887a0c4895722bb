package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/qrorder/internal/domain/errors"
	"github.com/polkiloo/qrorder/internal/domain/model"
	"github.com/polkiloo/qrorder/internal/domain/repository"
)

// PaymentGateway builds the redirect that sends the customer to pay.
type PaymentGateway interface {
	Method() model.PaymentMethod
	PaymentURL(order *model.Order, returnURL string) (string, error)
}

// PaymentUseCase starts payment attempts for pending orders.
type PaymentUseCase struct {
	orders   repository.OrderRepository
	payments repository.PaymentRepository
	gateways map[model.PaymentMethod]PaymentGateway
	logger   *slog.Logger
}

// NewPaymentUseCase constructs PaymentUseCase with the available gateways.
func NewPaymentUseCase(orders repository.OrderRepository, payments repository.PaymentRepository, logger *slog.Logger, gateways ...PaymentGateway) *PaymentUseCase {
	byMethod := make(map[model.PaymentMethod]PaymentGateway, len(gateways))
	for _, g := range gateways {
		byMethod[g.Method()] = g
	}
	return &PaymentUseCase{orders: orders, payments: payments, gateways: byMethod, logger: logger}
}

// Start validates the order, signs the gateway redirect and records a pending
// payment. No payment row is written when the redirect cannot be built.
func (u *PaymentUseCase) Start(ctx context.Context, orderID uuid.UUID, method model.PaymentMethod, returnURL string) (*model.PaymentRedirect, error) {
	returnURL = strings.TrimSpace(returnURL)
	if orderID == uuid.Nil || method == "" || returnURL == "" {
		return nil, domainErrors.Validation("order_id, payment_method and return_url are required")
	}

	gateway, ok := u.gateways[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrUnsupportedGateway, method)
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderStatusPending {
		return nil, domainErrors.ErrOrderNotPayable
	}

	url, err := gateway.PaymentURL(order, returnURL)
	if err != nil {
		u.logger.Error("build payment url",
			slog.String("order_number", order.Number),
			slog.String("method", string(method)),
			slog.Any("error", err),
		)
		return nil, err
	}

	payment := &model.Payment{
		ID:      uuid.New(),
		OrderID: order.ID,
		Method:  method,
		Amount:  order.TotalAmount,
		Status:  model.PaymentStatusPending,
	}
	if err := u.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	u.logger.Info("payment started",
		slog.String("order_number", order.Number),
		slog.String("payment_id", payment.ID.String()),
		slog.String("method", string(method)),
	)
	return &model.PaymentRedirect{Payment: payment, OrderNumber: order.Number, URL: url}, nil
}
