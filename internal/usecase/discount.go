package usecase

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountTable maps normalized discount codes to a percentage off.
type DiscountTable map[string]decimal.Decimal

// DefaultDiscounts returns the codes accepted at checkout.
func DefaultDiscounts() DiscountTable {
	return DiscountTable{
		"WELCOME10": decimal.NewFromInt(10),
	}
}

// Lookup returns the normalized code and its percentage. Unknown codes give
// an empty code and zero instead of an error.
func (t DiscountTable) Lookup(code string) (string, decimal.Decimal) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return "", decimal.Zero
	}
	percent, ok := t[normalized]
	if !ok {
		return "", decimal.Zero
	}
	return normalized, percent
}
