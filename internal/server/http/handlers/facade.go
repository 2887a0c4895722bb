package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/qrorder/internal/domain/model"
)

// SessionFacade describes table session operations required by handlers.
type SessionFacade interface {
	OpenSession(ctx context.Context, tableID uuid.UUID, qrToken string) (*model.Session, error)
	ResolveSession(ctx context.Context, token string) (*model.Session, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, session *model.Session, req model.OrderRequest) (*model.Order, error)
	SessionOrder(ctx context.Context, session *model.Session, id uuid.UUID) (*model.Order, error)
}

// PaymentFacade starts payments and settles gateway callbacks.
type PaymentFacade interface {
	StartPayment(ctx context.Context, orderID uuid.UUID, method model.PaymentMethod, returnURL string) (*model.PaymentRedirect, error)
	SettleCallback(ctx context.Context, fields map[string]string) (*model.SettlementOutcome, error)
}

// HealthFacade reports backing store availability.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// OrderingFacade aggregates the full set of operations used across handlers.
type OrderingFacade interface {
	SessionFacade
	OrderFacade
	PaymentFacade
	HealthFacade
}
