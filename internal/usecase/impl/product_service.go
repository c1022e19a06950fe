package impl

import (
	"context"
	"time"

	"prostore/config"
	"prostore/internal/domain/entity"
	domainerrors "prostore/internal/domain/errors"
	"prostore/internal/domain/repository"
	"prostore/internal/domain/service"
	"prostore/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

type productService struct {
	productRepo   repository.ProductRepository
	qrcodeService service.QRCodeService
	config        *config.Config
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo   repository.ProductRepository
	QRCodeService service.QRCodeService
	Config        *config.Config
}

// NewProductService creates a new product service instance
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo:   params.ProductRepo,
		qrcodeService: params.QRCodeService,
		config:        params.Config,
	}
}

// GetProduct retrieves a single product by ID
func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// GetProductBySlug retrieves a single product by its URL slug
func (s *productService) GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by slug")
	}

	return product, nil
}

// GetLatestProducts returns the newest products for the home page
func (s *productService) GetLatestProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := s.productRepo.FindLatest(ctx, s.config.Catalog.LatestLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find latest products")
	}

	return products, nil
}

// GetFeaturedProducts returns the featured products for the home carousel
func (s *productService) GetFeaturedProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := s.productRepo.FindFeatured(ctx, s.config.Catalog.FeaturedLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find featured products")
	}

	return products, nil
}

// SearchProducts returns a filtered, sorted page of the catalog
func (s *productService) SearchProducts(ctx context.Context, input usecase.SearchInput) (*usecase.Paged[*entity.Product], error) {
	params := repository.ProductSearchParams{
		Query:    input.Query,
		Category: input.Category,
		Price:    input.Price,
		Rating:   input.Rating,
		Sort:     input.Sort,
		Page:     normalizePage(input.Page),
		Limit:    s.config.Catalog.PageSize,
	}

	products, count, err := s.productRepo.Search(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search products")
	}

	return &usecase.Paged[*entity.Product]{
		Data:       products,
		TotalPages: totalPages(count, params.Limit),
	}, nil
}

// ListCategories returns all distinct categories with product counts
func (s *productService) ListCategories(ctx context.Context) ([]repository.CategoryCount, error) {
	categories, err := s.productRepo.ListCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// CreateProduct adds a product to the catalog
func (s *productService) CreateProduct(ctx context.Context, input *usecase.ProductInput) (*entity.Product, error) {
	price, err := decimal.NewFromString(input.Price)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("price must be a decimal number")
	}

	product := &entity.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Slug:        input.Slug,
		Category:    input.Category,
		Brand:       input.Brand,
		Description: input.Description,
		Images:      input.Images,
		Banner:      input.Banner,
		Price:       price,
		Stock:       input.Stock,
		Rating:      decimal.Zero,
		IsFeatured:  input.IsFeatured,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	return product, nil
}

// UpdateProduct modifies an existing product
func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, input *usecase.ProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(input.Price)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("price must be a decimal number")
	}

	product.Name = input.Name
	product.Slug = input.Slug
	product.Category = input.Category
	product.Brand = input.Brand
	product.Description = input.Description
	product.Images = input.Images
	product.Banner = input.Banner
	product.Price = price
	product.Stock = input.Stock
	product.IsFeatured = input.IsFeatured
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

// DeleteProduct removes a product from the catalog
func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to delete product")
	}

	return nil
}

// GenerateProductQR generates a QR code linking to the product page
func (s *productService) GenerateProductQR(ctx context.Context, slug string) ([]byte, error) {
	// The slug must exist before a link is handed out.
	if _, err := s.GetProductBySlug(ctx, slug); err != nil {
		return nil, err
	}

	qrCode, err := s.qrcodeService.GenerateProductQR(slug)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate product QR")
	}

	return qrCode, nil
}
