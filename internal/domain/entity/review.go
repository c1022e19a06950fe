package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is a user's rating and write-up for a product. Each user holds at
// most one review per product.
type Review struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	UserName           string
	ProductID          uuid.UUID
	Rating             int
	Title              string
	Description        string
	IsVerifiedPurchase bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
