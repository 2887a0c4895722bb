package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus describes payment attempt state. Success and failed are terminal.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Terminal reports whether no further transition is allowed.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFailed
}

// PaymentMethod tags the gateway used for a payment attempt.
type PaymentMethod string

const (
	PaymentMethodECPay    PaymentMethod = "ecpay"
	PaymentMethodNewebPay PaymentMethod = "newebpay"
)

// Payment is a single payment attempt for an order.
type Payment struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	Method        PaymentMethod
	Amount        decimal.Decimal
	Status        PaymentStatus
	TransactionID *string
	ResponseData  []byte
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PaymentRedirect is the outcome of starting a payment attempt.
type PaymentRedirect struct {
	Payment     *Payment
	OrderNumber string
	URL         string
}

// PaymentResult is the gateway verdict carried by a validated callback.
type PaymentResult struct {
	OrderNumber   string
	Success       bool
	TransactionID string
	Amount        *decimal.Decimal
	Raw           map[string]string
}

// SettlementOutcome reports which side effects a callback actually applied.
type SettlementOutcome struct {
	PaymentID           uuid.UUID
	OrderID             uuid.UUID
	Status              PaymentStatus
	Transitioned        bool
	OrderConfirmed      bool
	NotificationCreated bool
}
