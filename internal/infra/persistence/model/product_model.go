package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel is the GORM-specific struct for the 'products' table.
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Slug        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Category    string    `gorm:"type:varchar(255);not null;index"`
	Brand       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text;not null"`
	// Images is a JSON array of image URLs.
	Images     []byte          `gorm:"type:jsonb"`
	Banner     string          `gorm:"type:varchar(255)"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock      int             `gorm:"not null;default:0"`
	Rating     decimal.Decimal `gorm:"type:decimal(3,2);not null;default:0"`
	NumReviews int             `gorm:"not null;default:0"`
	IsFeatured bool            `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
