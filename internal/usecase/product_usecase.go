package usecase

import (
	"context"

	"prostore/internal/domain/entity"
	"prostore/internal/domain/repository"

	"github.com/google/uuid"
)

// ProductInput carries the fields for creating or updating a product.
type ProductInput struct {
	Name        string   `json:"name" validate:"required,min=3"`
	Slug        string   `json:"slug" validate:"required,min=3"`
	Category    string   `json:"category" validate:"required"`
	Brand       string   `json:"brand" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Images      []string `json:"images" validate:"required,min=1"`
	Banner      string   `json:"banner"`
	Price       string   `json:"price" validate:"required"`
	Stock       int      `json:"stock" validate:"gte=0"`
	IsFeatured  bool     `json:"isFeatured"`
}

// SearchInput carries the catalog search filters.
type SearchInput struct {
	Query    string
	Category string
	Price    string
	Rating   string
	Sort     string
	Page     int
}

// ProductUsecase defines the interface for catalog management use cases
type ProductUsecase interface {
	// GetProduct retrieves a single product by ID
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// GetProductBySlug retrieves a single product by its URL slug
	GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error)

	// GetLatestProducts returns the newest products for the home page
	GetLatestProducts(ctx context.Context) ([]*entity.Product, error)

	// GetFeaturedProducts returns the featured products for the home carousel
	GetFeaturedProducts(ctx context.Context) ([]*entity.Product, error)

	// SearchProducts returns a filtered, sorted page of the catalog
	SearchProducts(ctx context.Context, input SearchInput) (*Paged[*entity.Product], error)

	// ListCategories returns all distinct categories with product counts
	ListCategories(ctx context.Context) ([]repository.CategoryCount, error)

	// CreateProduct adds a product to the catalog
	CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error)

	// UpdateProduct modifies an existing product
	UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error)

	// DeleteProduct removes a product from the catalog
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// GenerateProductQR generates a QR code linking to the product page
	GenerateProductQR(ctx context.Context, slug string) ([]byte, error)
}
