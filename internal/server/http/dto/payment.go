package dto

import "github.com/shopspring/decimal"

// CreatePaymentRequest starts a payment attempt.
type CreatePaymentRequest struct {
	OrderID       string `json:"order_id"`
	PaymentMethod string `json:"payment_method"`
	ReturnURL     string `json:"return_url"`
}

// PaymentResponse carries the gateway redirect.
type PaymentResponse struct {
	PaymentID   string          `json:"payment_id"`
	PaymentURL  string          `json:"payment_url"`
	OrderNumber string          `json:"order_number"`
	Amount      decimal.Decimal `json:"amount"`
}
