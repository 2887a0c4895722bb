package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus describes order lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// DiningOption tells whether the order is eaten at the table or taken away.
type DiningOption string

const (
	DiningOptionDineIn  DiningOption = "dine-in"
	DiningOptionTakeout DiningOption = "takeout"
)

// Valid reports whether the option is one of the known values.
func (d DiningOption) Valid() bool {
	return d == DiningOptionDineIn || d == DiningOptionTakeout
}

// Modifier is an add-on selected for a line item, priced at order time.
type Modifier struct {
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// OrderItem is an immutable price snapshot of a product at order time.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	Modifiers   []Modifier
	Subtotal    decimal.Decimal
}

// Order describes a customer order placed from a table session.
type Order struct {
	ID             uuid.UUID
	Number         string
	SessionID      *uuid.UUID
	TableID        *uuid.UUID
	Status         OrderStatus
	Items          []OrderItem
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	DiscountCode   *string
	DiningOption   DiningOption
	Note           *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
