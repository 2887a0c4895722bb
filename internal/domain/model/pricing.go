package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is a requested line before pricing.
type CartItem struct {
	ProductID uuid.UUID
	Quantity  int
	Modifiers []Modifier
}

// Cart is the pricing input.
type Cart struct {
	Items        []CartItem
	DiscountCode string
}

// PricedOrder is the pricing output, ready for persistence.
type PricedOrder struct {
	Items          []OrderItem
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	DiscountCode   string
	TotalAmount    decimal.Decimal
}

// OrderRequest is the customer request for a new order.
type OrderRequest struct {
	Items        []CartItem
	DiningOption DiningOption
	Note         string
	DiscountCode string
}
