package service

import "context"

// PayPalOrder is the provider-side order created for a checkout.
type PayPalOrder struct {
	ID     string
	Status string
}

// PayPalCapture is the result of capturing an approved PayPal order.
type PayPalCapture struct {
	ID           string
	Status       string
	EmailAddress string
	AmountValue  string
}

// PayPalGateway defines the interface for the PayPal checkout-order flow.
type PayPalGateway interface {
	// CreateOrder opens a provider-side order for the given amount in USD.
	CreateOrder(ctx context.Context, amount string) (*PayPalOrder, error)

	// CaptureOrder captures the funds of an approved provider-side order.
	CaptureOrder(ctx context.Context, providerOrderID string) (*PayPalCapture, error)
}

// StripeChargeEvent is the subset of a Stripe event the store acts on.
type StripeChargeEvent struct {
	Type string
	// Charge fields, populated for charge events.
	ChargeID     string
	OrderID      string
	Status       string
	EmailAddress string
	// Amount in the smallest currency unit (cents).
	Amount int64
}

// StripeWebhookVerifier defines the interface for validating and decoding
// Stripe webhook deliveries.
type StripeWebhookVerifier interface {
	// VerifyAndParse checks the signature header against the payload and
	// returns the decoded event.
	VerifyAndParse(payload []byte, signatureHeader string) (*StripeChargeEvent, error)
}
