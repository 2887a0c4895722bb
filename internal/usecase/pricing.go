package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/qrorder/internal/domain/errors"
	"github.com/polkiloo/qrorder/internal/domain/model"
	"github.com/polkiloo/qrorder/internal/domain/repository"
)

// PricingEngine turns a cart into priced order lines using catalog snapshots.
// The result depends only on the cart and the catalog state it reads.
type PricingEngine struct {
	products  repository.ProductRepository
	discounts DiscountTable
}

// NewPricingEngine constructs PricingEngine with the built-in discount codes.
func NewPricingEngine(products repository.ProductRepository) *PricingEngine {
	return &PricingEngine{products: products, discounts: DefaultDiscounts()}
}

// Price validates the cart, snapshots product prices and applies the discount.
// An absent or unavailable product fails with *ProductUnavailableError.
func (e *PricingEngine) Price(ctx context.Context, cart model.Cart) (*model.PricedOrder, error) {
	if len(cart.Items) == 0 {
		return nil, domainErrors.Validation("order must contain at least one item")
	}

	priced := &model.PricedOrder{
		Items:    make([]model.OrderItem, 0, len(cart.Items)),
		Subtotal: decimal.Zero,
	}

	for i, item := range cart.Items {
		if item.Quantity < 1 {
			return nil, domainErrors.Validation(fmt.Sprintf("item %d: quantity must be at least 1", i))
		}

		product, err := e.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, &domainErrors.ProductUnavailableError{Index: i, ProductID: item.ProductID}
			}
			return nil, err
		}
		if !product.Available {
			return nil, &domainErrors.ProductUnavailableError{Index: i, ProductID: product.ID, Name: product.Name}
		}

		unit := product.Price
		for _, mod := range item.Modifiers {
			if mod.Price.IsNegative() {
				return nil, domainErrors.Validation(fmt.Sprintf("item %d: modifier %q has a negative price", i, mod.Name))
			}
			unit = unit.Add(mod.Price)
		}
		subtotal := unit.Mul(decimal.NewFromInt(int64(item.Quantity)))

		priced.Items = append(priced.Items, model.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    item.Quantity,
			Modifiers:   append([]model.Modifier(nil), item.Modifiers...),
			Subtotal:    subtotal,
		})
		priced.Subtotal = priced.Subtotal.Add(subtotal)
	}

	code, rate := e.discounts.Lookup(cart.DiscountCode)
	priced.DiscountCode = code
	priced.TotalAmount, priced.DiscountAmount = applyDiscount(priced.Subtotal, rate)
	return priced, nil
}

// applyDiscount takes percent of subtotal, rounded to cents, and floors the
// remaining charge to a whole currency unit. The floor applies with or without
// a discount, so the fraction dropped is never part of the discount.
func applyDiscount(subtotal, percent decimal.Decimal) (total, discount decimal.Decimal) {
	discount = subtotal.Mul(percent).Div(decimal.NewFromInt(100)).Round(2)
	total = subtotal.Sub(discount).Floor()
	if total.IsNegative() {
		total = decimal.Zero
	}
	return total, discount
}
