package usecase

import (
	"context"

	"prostore/internal/domain/entity"
	"prostore/internal/domain/repository"

	"github.com/google/uuid"
)

// OrderUsecase defines the interface for order management use cases
type OrderUsecase interface {
	// CreateOrder places an order from the user's current cart, freezing
	// prices and the shipping address, and clears the cart
	CreateOrder(ctx context.Context, userID uuid.UUID) (*entity.Order, error)

	// GetOrder retrieves a single order with its items
	GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)

	// CreatePayPalOrder opens a provider-side PayPal order and records its ID
	CreatePayPalOrder(ctx context.Context, orderID uuid.UUID) (string, error)

	// ApprovePayPalOrder captures the approved PayPal order and marks the order paid
	ApprovePayPalOrder(ctx context.Context, orderID uuid.UUID, providerOrderID string) error

	// MarkOrderPaid transitions an order to paid, decrementing stock once.
	// Marking an already paid order is a no-op.
	MarkOrderPaid(ctx context.Context, orderID uuid.UUID, result *PaymentResultInput) error

	// MarkOrderDelivered transitions a paid order to delivered
	MarkOrderDelivered(ctx context.Context, orderID uuid.UUID) error

	// DeleteOrder removes an order
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error

	// ListMyOrders returns a page of the user's own orders, newest first
	ListMyOrders(ctx context.Context, userID uuid.UUID, page int) (*Paged[*entity.Order], error)

	// ListOrders returns a page of all orders for the admin view
	ListOrders(ctx context.Context, query string, page int) (*Paged[*entity.Order], error)

	// GetOrderSummary aggregates storefront-wide figures for the admin overview
	GetOrderSummary(ctx context.Context) (*repository.OrderSummary, error)
}
