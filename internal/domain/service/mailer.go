package service

import (
	"context"

	"prostore/internal/domain/entity"
)

// ReceiptMailer defines the interface for sending purchase receipt emails.
type ReceiptMailer interface {
	// SendPurchaseReceipt sends the receipt for a paid order to its customer.
	SendPurchaseReceipt(ctx context.Context, order *entity.Order) error
}
