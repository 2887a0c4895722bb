package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ModifierRequest is an add-on chosen for a line item.
type ModifierRequest struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// OrderItemRequest is a requested cart line.
type OrderItemRequest struct {
	ProductID string            `json:"product_id"`
	Quantity  int               `json:"quantity"`
	Modifiers []ModifierRequest `json:"modifiers,omitempty"`
}

// CreateOrderRequest describes order creation payload.
type CreateOrderRequest struct {
	Items        []OrderItemRequest `json:"items"`
	DiningOption string             `json:"dining_option"`
	Note         string             `json:"note,omitempty"`
	DiscountCode string             `json:"discount_code,omitempty"`
}

// ModifierResponse is a priced add-on snapshot.
type ModifierResponse struct {
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// OrderItemResponse is a stored line item.
type OrderItemResponse struct {
	ProductID   string             `json:"product_id"`
	ProductName string             `json:"product_name"`
	UnitPrice   decimal.Decimal    `json:"unit_price"`
	Quantity    int                `json:"quantity"`
	Modifiers   []ModifierResponse `json:"modifiers,omitempty"`
	Subtotal    decimal.Decimal    `json:"subtotal"`
}

// OrderResponse represents an order.
type OrderResponse struct {
	OrderID        string              `json:"order_id"`
	OrderNumber    string              `json:"order_number"`
	Status         string              `json:"status"`
	Items          []OrderItemResponse `json:"items"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	DiscountCode   *string             `json:"discount_code,omitempty"`
	DiningOption   string              `json:"dining_option"`
	Note           *string             `json:"note,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}
