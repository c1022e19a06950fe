// Package usecase defines the application-layer interfaces and their
// input/output types.
package usecase

import (
	"prostore/internal/domain/entity"
)

// Paged wraps a page of results with the total page count.
type Paged[T any] struct {
	Data       []T   `json:"data"`
	TotalPages int64 `json:"totalPages"`
}

// PaymentResultInput carries the provider payment outcome into MarkOrderPaid.
type PaymentResultInput struct {
	ID           string
	Status       string
	EmailAddress string
	PricePaid    string
}

// CheckoutRedirect paths returned when checkout preconditions fail.
const (
	RedirectCart            = "/cart"
	RedirectShippingAddress = "/shipping-address"
	RedirectPaymentMethod   = "/payment-method"
	RedirectLogin           = "/sign-in"
)

// ToPaymentResult converts the input into the entity form stored on orders.
// Cash-on-delivery payments carry no provider result and convert to nil.
func (p *PaymentResultInput) ToPaymentResult() *entity.PaymentResult {
	if p == nil {
		return nil
	}

	return &entity.PaymentResult{
		ID:           p.ID,
		Status:       p.Status,
		EmailAddress: p.EmailAddress,
		PricePaid:    p.PricePaid,
	}
}
