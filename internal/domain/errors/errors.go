package errors

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrSessionInvalid     = errors.New("session invalid or expired")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrOrderNotPayable    = errors.New("order is not payable")
	ErrUnsupportedGateway = errors.New("payment gateway not supported")
	ErrInvalidSignature   = errors.New("invalid callback signature")
	ErrAmountMismatch     = errors.New("callback amount mismatch")
	ErrConfiguration      = errors.New("payment gateway misconfigured")
)

// Validation wraps ErrValidation with a message safe to show to the caller.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// ProductUnavailableError identifies the cart line that cannot be ordered.
type ProductUnavailableError struct {
	Index     int
	ProductID uuid.UUID
	Name      string
}

func (e *ProductUnavailableError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("product %s is sold out or does not exist", e.Name)
	}
	return fmt.Sprintf("product %s is sold out or does not exist", e.ProductID)
}

func (e *ProductUnavailableError) Unwrap() error {
	return ErrProductUnavailable
}
