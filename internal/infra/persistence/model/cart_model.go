package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartModel is the GORM-specific struct for the 'carts' table.
// A cart belongs to a session cookie first and gains a user on sign-in.
type CartModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID        *uuid.UUID `gorm:"type:uuid;index"`
	SessionCartID string     `gorm:"type:varchar(255);not null;index"`
	// Items is a JSON array of cart line snapshots.
	Items         []byte          `gorm:"type:jsonb"`
	ItemsPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ShippingPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TaxPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartModel) TableName() string {
	return "carts"
}
