// Package pricing computes cart and order totals.
package pricing

import (
	"github.com/shopspring/decimal"

	"prostore/internal/domain/entity"
)

// Free shipping applies strictly above this items subtotal.
var freeShippingThreshold = decimal.NewFromInt(100)

var (
	flatShippingPrice = decimal.NewFromInt(10)
	taxRate           = decimal.NewFromFloat(0.15)
)

// Totals holds the four price components of a cart or order.
type Totals struct {
	ItemsPrice    decimal.Decimal
	ShippingPrice decimal.Decimal
	TaxPrice      decimal.Decimal
	TotalPrice    decimal.Decimal
}

// Calculate derives the totals for the given cart lines.
//
// The items subtotal is the rounded sum of price times quantity. Shipping is
// free once the subtotal exceeds 100, otherwise a flat 10. Tax is 15% of the
// items subtotal. Every component is rounded to two decimal places before
// the next one is derived, so the stored total always equals the sum of the
// stored components.
func Calculate(items []entity.CartItem) Totals {
	itemsPrice := decimal.Zero
	for _, item := range items {
		itemsPrice = itemsPrice.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Qty))))
	}
	itemsPrice = round2(itemsPrice)

	shippingPrice := flatShippingPrice
	if itemsPrice.GreaterThan(freeShippingThreshold) {
		shippingPrice = decimal.Zero
	}
	shippingPrice = round2(shippingPrice)

	taxPrice := round2(itemsPrice.Mul(taxRate))
	totalPrice := round2(itemsPrice.Add(shippingPrice).Add(taxPrice))

	return Totals{
		ItemsPrice:    itemsPrice,
		ShippingPrice: shippingPrice,
		TaxPrice:      taxPrice,
		TotalPrice:    totalPrice,
	}
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
