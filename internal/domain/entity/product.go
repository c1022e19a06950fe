package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item available for purchase.
type Product struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Category    string
	Brand       string
	Description string
	Images      []string
	Banner      string
	Price       decimal.Decimal
	Stock       int
	Rating      decimal.Decimal
	NumReviews  int
	IsFeatured  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InStock reports whether at least qty units remain.
func (p *Product) InStock(qty int) bool {
	return p.Stock >= qty
}
