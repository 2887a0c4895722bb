package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/qrorder/internal/domain/model"
)

// SessionFacadeStub provides controllable behaviour for session endpoints.
type SessionFacadeStub struct {
	OpenFn    func(context.Context, uuid.UUID, string) (*model.Session, error)
	ResolveFn func(context.Context, string) (*model.Session, error)
}

// OpenSession delegates to provided function or issues a fixed session.
func (s SessionFacadeStub) OpenSession(ctx context.Context, tableID uuid.UUID, qrToken string) (*model.Session, error) {
	if s.OpenFn != nil {
		return s.OpenFn(ctx, tableID, qrToken)
	}
	return &model.Session{
		ID:        uuid.New(),
		Token:     "token",
		TableID:   tableID,
		TableName: "A1",
		Status:    model.SessionStatusActive,
		ExpiresAt: time.Unix(0, 0).Add(2 * time.Hour),
	}, nil
}

// ResolveSession returns configured session or an active one for any token.
func (s SessionFacadeStub) ResolveSession(ctx context.Context, token string) (*model.Session, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, token)
	}
	return &model.Session{ID: uuid.New(), Token: token, Status: model.SessionStatusActive}, nil
}

// OrderFacadeStub simulates order operations.
type OrderFacadeStub struct {
	CreateFn func(context.Context, *model.Session, model.OrderRequest) (*model.Order, error)
	GetFn    func(context.Context, *model.Session, uuid.UUID) (*model.Order, error)
}

// CreateOrder delegates to provided function or returns a pending order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, session *model.Session, in model.OrderRequest) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, session, in)
	}
	return &model.Order{
		ID:           uuid.New(),
		Number:       "ORD202503090001",
		SessionID:    &session.ID,
		Status:       model.OrderStatusPending,
		TotalAmount:  decimal.NewFromInt(100),
		DiningOption: in.DiningOption,
	}, nil
}

// SessionOrder returns configured order.
func (s OrderFacadeStub) SessionOrder(ctx context.Context, session *model.Session, id uuid.UUID) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, session, id)
	}
	return &model.Order{ID: id, Number: "ORD202503090001", Status: model.OrderStatusPending}, nil
}

// PaymentFacadeStub simulates payment operations.
type PaymentFacadeStub struct {
	StartFn  func(context.Context, uuid.UUID, model.PaymentMethod, string) (*model.PaymentRedirect, error)
	SettleFn func(context.Context, map[string]string) (*model.SettlementOutcome, error)
}

// StartPayment delegates to provided function or returns a fixed redirect.
func (s PaymentFacadeStub) StartPayment(ctx context.Context, orderID uuid.UUID, method model.PaymentMethod, returnURL string) (*model.PaymentRedirect, error) {
	if s.StartFn != nil {
		return s.StartFn(ctx, orderID, method, returnURL)
	}
	return &model.PaymentRedirect{
		Payment:     &model.Payment{ID: uuid.New(), OrderID: orderID, Method: method, Amount: decimal.NewFromInt(100), Status: model.PaymentStatusPending},
		OrderNumber: "ORD202503090001",
		URL:         "https://payment-stage.ecpay.com.tw/Cashier/AioCheckOut/V5?MerchantID=3002607",
	}, nil
}

// SettleCallback delegates to provided function or reports a success settlement.
func (s PaymentFacadeStub) SettleCallback(ctx context.Context, fields map[string]string) (*model.SettlementOutcome, error) {
	if s.SettleFn != nil {
		return s.SettleFn(ctx, fields)
	}
	return &model.SettlementOutcome{Status: model.PaymentStatusSuccess, Transitioned: true}, nil
}

// HealthFacadeStub reports configured health.
type HealthFacadeStub struct {
	Err error
}

// Health returns configured error.
func (s HealthFacadeStub) Health(context.Context) error {
	return s.Err
}

// OrderingFacadeStub aggregates every HTTP facade stub.
type OrderingFacadeStub struct {
	SessionFacadeStub
	OrderFacadeStub
	PaymentFacadeStub
	HealthFacadeStub
}

// NotificationFacadeStub mimics worker interactions with the ordering facade.
type NotificationFacadeStub struct {
	Batches    [][]model.Notification
	ClaimFn    func(context.Context, int) ([]model.Notification, error)
	DeliverFn  func(context.Context, model.Notification) error
	Delivered  []uuid.UUID
	mu         sync.Mutex
	claimCalls int32
}

// Lock exposes internal mutex for external synchronization.
func (s *NotificationFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *NotificationFacadeStub) Unlock() { s.mu.Unlock() }

// ClaimNotifications returns batches from configured queue.
func (s *NotificationFacadeStub) ClaimNotifications(ctx context.Context, limit int) ([]model.Notification, error) {
	if s.ClaimFn != nil {
		return s.ClaimFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.claimCalls, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	return nil, nil
}

// DeliverNotification records delivered notifications.
func (s *NotificationFacadeStub) DeliverNotification(ctx context.Context, n model.Notification) error {
	if s.DeliverFn != nil {
		return s.DeliverFn(ctx, n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Delivered = append(s.Delivered, n.ID)
	return nil
}

// PublisherStub records published notifications.
type PublisherStub struct {
	Err       error
	mu        sync.Mutex
	published []uuid.UUID
}

// Publish records n or returns configured error.
func (p *PublisherStub) Publish(_ context.Context, n model.Notification) error {
	if p.Err != nil {
		return p.Err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, n.ID)
	return nil
}

// Published returns identifiers of published notifications.
func (p *PublisherStub) Published() []uuid.UUID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]uuid.UUID(nil), p.published...)
}
