package repository

import (
	"context"
	"errors"
	"time"

	"prostore/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrOrderNotFound is a domain-specific error returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderListParams controls pagination for order listings.
type OrderListParams struct {
	// Query filters by the customer name, case-insensitive contains. Empty matches all.
	Query string
	Page  int
	Limit int
}

// SalesByMonth is an aggregated revenue figure for one calendar month.
type SalesByMonth struct {
	// Month in "MM/YY" form.
	Month      string
	TotalSales decimal.Decimal
}

// OrderSummary aggregates storefront-wide figures for the admin overview.
type OrderSummary struct {
	OrdersCount   int64
	UsersCount    int64
	ProductsCount int64
	TotalSales    decimal.Decimal
	SalesByMonth  []SalesByMonth
	LatestOrders  []*entity.Order
}

// OrderRepository defines the standard operations for order persistence.
type OrderRepository interface {
	// FindByID retrieves a single order with its items by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// Create persists a new order and its items.
	Create(ctx context.Context, order *entity.Order) error

	// MarkPaid sets the paid flag, timestamp and payment result on an order.
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time, result *entity.PaymentResult) error

	// UpdatePaymentResult stores the provider payment state on an unpaid order,
	// such as the PayPal order ID created for it.
	UpdatePaymentResult(ctx context.Context, id uuid.UUID, result *entity.PaymentResult) error

	// MarkDelivered sets the delivered flag and timestamp on an order.
	MarkDelivered(ctx context.Context, id uuid.UUID, deliveredAt time.Time) error

	// Delete removes an order and its items by ID. Returns ErrOrderNotFound when no row matched.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByUser returns a page of the user's orders, newest first, with the total count.
	ListByUser(ctx context.Context, userID uuid.UUID, params OrderListParams) ([]*entity.Order, int64, error)

	// List returns a page of all orders, newest first, with the total count.
	List(ctx context.Context, params OrderListParams) ([]*entity.Order, int64, error)

	// Summary aggregates counts, total sales and monthly sales across the store.
	Summary(ctx context.Context, latestLimit int) (*OrderSummary, error)
}
