package test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/qrorder/internal/domain/errors"
	"github.com/polkiloo/qrorder/internal/domain/model"
	"github.com/polkiloo/qrorder/internal/domain/repository"
)

type txKey struct{}

// MemoryStore is an in-memory transactional store. Atomically serializes
// transactions and rolls back every change when fn fails.
type MemoryStore struct {
	mu sync.Mutex

	ProductRows      map[uuid.UUID]model.Product
	TableRows        map[uuid.UUID]model.Table
	SessionRows      map[string]model.Session
	OrderRows        map[uuid.UUID]model.Order
	PaymentRows      []model.Payment
	NotificationRows []model.Notification

	// FailOn makes the named operation ("Orders.Create", "Payments.Transition", ...) fail.
	FailOn map[string]error
	// Calls counts invocations per operation name.
	Calls map[string]int
}

// NewMemoryStore constructs empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		ProductRows: make(map[uuid.UUID]model.Product),
		TableRows:   make(map[uuid.UUID]model.Table),
		SessionRows: make(map[string]model.Session),
		OrderRows:   make(map[uuid.UUID]model.Order),
		FailOn:      make(map[string]error),
		Calls:       make(map[string]int),
	}
}

var _ repository.Factory = (*MemoryStore)(nil)
var _ repository.Transactor = (*MemoryStore)(nil)

// Atomically runs fn as one transaction. Nested calls join the outer one.
func (s *MemoryStore) Atomically(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// AddProduct stores product for lookups.
func (s *MemoryStore) AddProduct(p model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ProductRows[p.ID] = p
}

// AddTable stores table for lookups.
func (s *MemoryStore) AddTable(t model.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TableRows[t.ID] = t
}

// Order returns a copy of the stored order.
func (s *MemoryStore) Order(id uuid.UUID) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.OrderRows[id]
	return o, ok
}

// PaymentsOf returns payments of the order in creation order.
func (s *MemoryStore) PaymentsOf(orderID uuid.UUID) []model.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Payment
	for _, p := range s.PaymentRows {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out
}

// NotificationsOf returns notifications recorded for the order.
func (s *MemoryStore) NotificationsOf(orderID uuid.UUID) []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Notification
	for _, n := range s.NotificationRows {
		if n.OrderID == orderID {
			out = append(out, n)
		}
	}
	return out
}

// CallCount returns how many times op was invoked.
func (s *MemoryStore) CallCount(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls[op]
}

func (s *MemoryStore) Products() repository.ProductRepository { return memoryProducts{s} }
func (s *MemoryStore) Tables() repository.TableRepository     { return memoryTables{s} }
func (s *MemoryStore) Sessions() repository.SessionRepository { return memorySessions{s} }
func (s *MemoryStore) Orders() repository.OrderRepository     { return memoryOrders{s} }
func (s *MemoryStore) Payments() repository.PaymentRepository { return memoryPayments{s} }
func (s *MemoryStore) Notifications() repository.NotificationRepository {
	return memoryNotifications{s}
}

// enter locks the store unless ctx already runs inside Atomically and
// reports the configured failure for op.
func (s *MemoryStore) enter(ctx context.Context, op string) (func(), error) {
	unlock := func() {}
	if ctx.Value(txKey{}) == nil {
		s.mu.Lock()
		unlock = s.mu.Unlock
	}
	s.Calls[op]++
	if err := s.FailOn[op]; err != nil {
		unlock()
		return nil, err
	}
	return unlock, nil
}

type memorySnapshot struct {
	sessions      map[string]model.Session
	orders        map[uuid.UUID]model.Order
	payments      []model.Payment
	notifications []model.Notification
}

func (s *MemoryStore) snapshot() memorySnapshot {
	snap := memorySnapshot{
		sessions:      make(map[string]model.Session, len(s.SessionRows)),
		orders:        make(map[uuid.UUID]model.Order, len(s.OrderRows)),
		payments:      append([]model.Payment(nil), s.PaymentRows...),
		notifications: append([]model.Notification(nil), s.NotificationRows...),
	}
	for k, v := range s.SessionRows {
		snap.sessions[k] = v
	}
	for k, v := range s.OrderRows {
		snap.orders[k] = v
	}
	return snap
}

func (s *MemoryStore) restore(snap memorySnapshot) {
	s.SessionRows = snap.sessions
	s.OrderRows = snap.orders
	s.PaymentRows = snap.payments
	s.NotificationRows = snap.notifications
}

type memoryProducts struct{ s *MemoryStore }

func (r memoryProducts) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	unlock, err := r.s.enter(ctx, "Products.GetByID")
	if err != nil {
		return nil, err
	}
	defer unlock()
	p, ok := r.s.ProductRows[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &p, nil
}

type memoryTables struct{ s *MemoryStore }

func (r memoryTables) GetByID(ctx context.Context, id uuid.UUID) (*model.Table, error) {
	unlock, err := r.s.enter(ctx, "Tables.GetByID")
	if err != nil {
		return nil, err
	}
	defer unlock()
	t, ok := r.s.TableRows[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &t, nil
}

func (r memoryTables) Upsert(ctx context.Context, table *model.Table) error {
	unlock, err := r.s.enter(ctx, "Tables.Upsert")
	if err != nil {
		return err
	}
	defer unlock()
	r.s.TableRows[table.ID] = *table
	return nil
}

type memorySessions struct{ s *MemoryStore }

func (r memorySessions) Create(ctx context.Context, session *model.Session) error {
	unlock, err := r.s.enter(ctx, "Sessions.Create")
	if err != nil {
		return err
	}
	defer unlock()
	if _, exists := r.s.SessionRows[session.Token]; exists {
		return domainErrors.ErrAlreadyExists
	}
	r.s.SessionRows[session.Token] = *session
	return nil
}

func (r memorySessions) GetByToken(ctx context.Context, token string) (*model.Session, error) {
	unlock, err := r.s.enter(ctx, "Sessions.GetByToken")
	if err != nil {
		return nil, err
	}
	defer unlock()
	session, ok := r.s.SessionRows[token]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &session, nil
}

type memoryOrders struct{ s *MemoryStore }

func (r memoryOrders) Create(ctx context.Context, order *model.Order) error {
	unlock, err := r.s.enter(ctx, "Orders.Create")
	if err != nil {
		return err
	}
	defer unlock()
	for _, o := range r.s.OrderRows {
		if o.Number == order.Number {
			return domainErrors.ErrAlreadyExists
		}
	}
	now := time.Now()
	order.CreatedAt, order.UpdatedAt = now, now
	stored := *order
	stored.Items = append([]model.OrderItem(nil), order.Items...)
	r.s.OrderRows[order.ID] = stored
	return nil
}

func (r memoryOrders) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	unlock, err := r.s.enter(ctx, "Orders.GetByID")
	if err != nil {
		return nil, err
	}
	defer unlock()
	o, ok := r.s.OrderRows[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &o, nil
}

func (r memoryOrders) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	unlock, err := r.s.enter(ctx, "Orders.GetByNumber")
	if err != nil {
		return nil, err
	}
	defer unlock()
	for _, o := range r.s.OrderRows {
		if o.Number == number {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r memoryOrders) Confirm(ctx context.Context, id uuid.UUID) (bool, error) {
	unlock, err := r.s.enter(ctx, "Orders.Confirm")
	if err != nil {
		return false, err
	}
	defer unlock()
	o, ok := r.s.OrderRows[id]
	if !ok || o.Status != model.OrderStatusPending {
		return false, nil
	}
	o.Status = model.OrderStatusConfirmed
	o.UpdatedAt = time.Now()
	r.s.OrderRows[id] = o
	return true, nil
}

type memoryPayments struct{ s *MemoryStore }

func (r memoryPayments) Create(ctx context.Context, payment *model.Payment) error {
	unlock, err := r.s.enter(ctx, "Payments.Create")
	if err != nil {
		return err
	}
	defer unlock()
	if _, ok := r.s.OrderRows[payment.OrderID]; !ok {
		return domainErrors.ErrNotFound
	}
	now := time.Now()
	payment.CreatedAt, payment.UpdatedAt = now, now
	r.s.PaymentRows = append(r.s.PaymentRows, *payment)
	return nil
}

func (r memoryPayments) GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	unlock, err := r.s.enter(ctx, "Payments.GetByID")
	if err != nil {
		return nil, err
	}
	defer unlock()
	for _, p := range r.s.PaymentRows {
		if p.ID == id {
			payment := p
			return &payment, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r memoryPayments) LatestByOrder(ctx context.Context, orderID uuid.UUID) (*model.Payment, error) {
	unlock, err := r.s.enter(ctx, "Payments.LatestByOrder")
	if err != nil {
		return nil, err
	}
	defer unlock()
	for i := len(r.s.PaymentRows) - 1; i >= 0; i-- {
		if r.s.PaymentRows[i].OrderID == orderID {
			payment := r.s.PaymentRows[i]
			return &payment, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r memoryPayments) Transition(ctx context.Context, id uuid.UUID, status model.PaymentStatus, transactionID string, raw []byte, paidAt *time.Time) (bool, error) {
	unlock, err := r.s.enter(ctx, "Payments.Transition")
	if err != nil {
		return false, err
	}
	defer unlock()
	for i := range r.s.PaymentRows {
		p := &r.s.PaymentRows[i]
		if p.ID != id || p.Status != model.PaymentStatusPending {
			continue
		}
		p.Status = status
		p.TransactionID = optional(transactionID)
		p.ResponseData = raw
		p.PaidAt = paidAt
		p.UpdatedAt = time.Now()
		return true, nil
	}
	return false, nil
}

func (r memoryPayments) RecordCallback(ctx context.Context, id uuid.UUID, transactionID string, raw []byte) error {
	unlock, err := r.s.enter(ctx, "Payments.RecordCallback")
	if err != nil {
		return err
	}
	defer unlock()
	for i := range r.s.PaymentRows {
		p := &r.s.PaymentRows[i]
		if p.ID != id {
			continue
		}
		if transactionID != "" {
			p.TransactionID = optional(transactionID)
		}
		p.ResponseData = raw
		p.UpdatedAt = time.Now()
		return nil
	}
	return domainErrors.ErrNotFound
}

type memoryNotifications struct{ s *MemoryStore }

func (r memoryNotifications) Create(ctx context.Context, n *model.Notification) (bool, error) {
	unlock, err := r.s.enter(ctx, "Notifications.Create")
	if err != nil {
		return false, err
	}
	defer unlock()
	for _, existing := range r.s.NotificationRows {
		if existing.OrderID == n.OrderID && existing.Type == n.Type {
			return false, nil
		}
	}
	n.CreatedAt = time.Now()
	r.s.NotificationRows = append(r.s.NotificationRows, *n)
	return true, nil
}

func (r memoryNotifications) ClaimUndelivered(ctx context.Context, limit int) ([]model.Notification, error) {
	unlock, err := r.s.enter(ctx, "Notifications.ClaimUndelivered")
	if err != nil {
		return nil, err
	}
	defer unlock()
	var out []model.Notification
	for _, n := range r.s.NotificationRows {
		if n.DeliveredAt == nil && len(out) < limit {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r memoryNotifications) MarkDelivered(ctx context.Context, id uuid.UUID) error {
	unlock, err := r.s.enter(ctx, "Notifications.MarkDelivered")
	if err != nil {
		return err
	}
	defer unlock()
	for i := range r.s.NotificationRows {
		if r.s.NotificationRows[i].ID == id {
			now := time.Now()
			r.s.NotificationRows[i].DeliveredAt = &now
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
