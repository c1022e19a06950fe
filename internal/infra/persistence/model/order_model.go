package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the GORM-specific struct for the 'orders' table.
// Prices and the shipping address are frozen copies taken at checkout.
type OrderModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	UserName  string    `gorm:"type:varchar(255);not null"`
	UserEmail string    `gorm:"type:varchar(255);not null"`
	// ShippingAddress is the address snapshot stored as a JSON document.
	ShippingAddress []byte `gorm:"type:jsonb;not null"`
	PaymentMethod   string `gorm:"type:varchar(32);not null"`
	// PaymentResult is the provider outcome stored as a JSON document.
	PaymentResult []byte            `gorm:"type:jsonb"`
	Items         []*OrderItemModel `gorm:"foreignKey:OrderID"`
	ItemsPrice    decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	ShippingPrice decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	TaxPrice      decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	TotalPrice    decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	IsPaid        bool              `gorm:"not null;default:false"`
	PaidAt        *time.Time
	IsDelivered   bool `gorm:"not null;default:false"`
	DeliveredAt   *time.Time
	CreatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the GORM-specific struct for the 'order_items' table.
// Each row is a product line copied verbatim from the cart at checkout.
type OrderItemModel struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Slug      string          `gorm:"type:varchar(255);not null"`
	Image     string          `gorm:"type:varchar(255)"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Qty       int             `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
