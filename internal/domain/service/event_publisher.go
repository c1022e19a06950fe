package service

import (
	"context"
)

// OrderPaidEvent represents a paid order handed off to the mail worker.
type OrderPaidEvent struct {
	RequestID string `json:"request_id,omitempty"` // For distributed tracing
	OrderID   string `json:"order_id"`
	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`
	Total     string `json:"total"`
	PaidAt    string `json:"paid_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderPaidEvent publishes an order-paid event for async processing
	PublishOrderPaidEvent(ctx context.Context, event *OrderPaidEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
