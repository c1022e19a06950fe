package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewModel is the GORM-specific struct for the 'reviews' table.
// One review per user and product, enforced by the composite unique index.
type ReviewModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_product"`
	ProductID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_product;index"`
	UserName           string    `gorm:"type:varchar(255);not null"`
	Rating             int       `gorm:"not null"`
	Title              string    `gorm:"type:varchar(255);not null"`
	Description        string    `gorm:"type:text;not null"`
	IsVerifiedPurchase bool      `gorm:"not null;default:false"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
