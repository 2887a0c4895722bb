package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/qrorder/internal/domain/model"
	"github.com/polkiloo/qrorder/internal/usecase"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// OrderingFacade fronts the use cases for the HTTP layer and the
// notification worker.
type OrderingFacade struct {
	sessions      *usecase.SessionUseCase
	orders        *usecase.OrderUseCase
	payments      *usecase.PaymentUseCase
	settlement    *usecase.SettlementUseCase
	notifications *usecase.NotificationUseCase
	health        HealthChecker
}

func NewOrderingFacade(
	sessions *usecase.SessionUseCase,
	orders *usecase.OrderUseCase,
	payments *usecase.PaymentUseCase,
	settlement *usecase.SettlementUseCase,
	notifications *usecase.NotificationUseCase,
	health HealthChecker,
) *OrderingFacade {
	return &OrderingFacade{
		sessions:      sessions,
		orders:        orders,
		payments:      payments,
		settlement:    settlement,
		notifications: notifications,
		health:        health,
	}
}

func (f *OrderingFacade) OpenSession(ctx context.Context, tableID uuid.UUID, qrToken string) (*model.Session, error) {
	return f.sessions.Open(ctx, tableID, qrToken)
}

func (f *OrderingFacade) ResolveSession(ctx context.Context, token string) (*model.Session, error) {
	return f.sessions.Resolve(ctx, token)
}

func (f *OrderingFacade) CreateOrder(ctx context.Context, session *model.Session, req model.OrderRequest) (*model.Order, error) {
	return f.orders.Create(ctx, session, req)
}

func (f *OrderingFacade) SessionOrder(ctx context.Context, session *model.Session, id uuid.UUID) (*model.Order, error) {
	return f.orders.GetForSession(ctx, session, id)
}

func (f *OrderingFacade) StartPayment(ctx context.Context, orderID uuid.UUID, method model.PaymentMethod, returnURL string) (*model.PaymentRedirect, error) {
	return f.payments.Start(ctx, orderID, method, returnURL)
}

func (f *OrderingFacade) SettleCallback(ctx context.Context, fields map[string]string) (*model.SettlementOutcome, error) {
	return f.settlement.Apply(ctx, fields)
}

func (f *OrderingFacade) ClaimNotifications(ctx context.Context, limit int) ([]model.Notification, error) {
	return f.notifications.Claim(ctx, limit)
}

func (f *OrderingFacade) DeliverNotification(ctx context.Context, n model.Notification) error {
	return f.notifications.Deliver(ctx, n)
}

// Health reports store availability. A facade without a checker is healthy.
func (f *OrderingFacade) Health(ctx context.Context) error {
	if f.health == nil {
		return nil
	}
	return f.health.HealthCheck(ctx)
}
