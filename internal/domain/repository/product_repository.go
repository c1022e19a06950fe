package repository

import (
	"context"
	"errors"

	"prostore/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is a domain-specific error returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ErrInsufficientStock is returned when a guarded stock decrement would drive
// stock below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// Catalog sort orders.
const (
	SortNewest  = "newest"
	SortLowest  = "lowest"
	SortHighest = "highest"
	SortRating  = "rating"
)

// ProductSearchParams controls catalog search filtering and pagination.
type ProductSearchParams struct {
	// Query filters by product name, case-insensitive contains. Empty or "all" matches everything.
	Query string
	// Category filters by exact category. Empty or "all" matches everything.
	Category string
	// Price filters by an inclusive "min-max" range, e.g. "51-100". Empty or "all" matches everything.
	Price string
	// Rating filters by minimum rating. Empty or "all" matches everything.
	Rating string
	// Sort is one of the Sort* constants. Anything else falls back to newest.
	Sort  string
	Page  int
	Limit int
}

// CategoryCount is a category name with the number of products in it.
type CategoryCount struct {
	Category string
	Count    int64
}

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindBySlug retrieves a single product by its URL slug.
	FindBySlug(ctx context.Context, slug string) (*entity.Product, error)

	// Create persists a new product entity to the storage.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product entity in the storage.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product by ID. Returns ErrProductNotFound when no row matched.
	Delete(ctx context.Context, id uuid.UUID) error

	// Search returns a page of products matching the filters, with the total
	// count of products matching the same filters.
	Search(ctx context.Context, params ProductSearchParams) ([]*entity.Product, int64, error)

	// FindLatest returns the newest products up to limit.
	FindLatest(ctx context.Context, limit int) ([]*entity.Product, error)

	// FindFeatured returns featured products, newest first, up to limit.
	FindFeatured(ctx context.Context, limit int) ([]*entity.Product, error)

	// ListCategories returns all distinct categories with product counts.
	ListCategories(ctx context.Context) ([]CategoryCount, error)

	// DecrementStock atomically subtracts qty from the product's stock.
	// Returns ErrInsufficientStock when the remaining stock would go negative.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) error

	// UpdateRating sets the aggregated rating and review count of a product.
	UpdateRating(ctx context.Context, id uuid.UUID, rating string, numReviews int) error
}
