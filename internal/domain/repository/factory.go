package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Products() ProductRepository
	Tables() TableRepository
	Sessions() SessionRepository
	Orders() OrderRepository
	Payments() PaymentRepository
	Notifications() NotificationRepository
}

// Transactor runs fn so that every repository call made with the passed
// context joins one transaction. Nested calls reuse the outer transaction.
type Transactor interface {
	Atomically(ctx context.Context, fn func(ctx context.Context) error) error
}
