package newebpay

import (
	domainErrors "github.com/polkiloo/qrorder/internal/domain/errors"
	"github.com/polkiloo/qrorder/internal/domain/model"
)

// Gateway reserves the newebpay method tag. Checkout through it is not
// available yet, so every request is refused.
type Gateway struct{}

// New creates Gateway.
func New() *Gateway {
	return &Gateway{}
}

// Method reports the payment method tag served by the gateway.
func (*Gateway) Method() model.PaymentMethod {
	return model.PaymentMethodNewebPay
}

// PaymentURL always fails with ErrUnsupportedGateway.
func (*Gateway) PaymentURL(*model.Order, string) (string, error) {
	return "", domainErrors.ErrUnsupportedGateway
}
