package impl

import (
	"context"
	"testing"

	"prostore/config"
	"prostore/internal/domain/entity"
	domainerrors "prostore/internal/domain/errors"
	"prostore/internal/domain/repository"
	mockRepo "prostore/internal/mocks/repository"
	mockSvc "prostore/internal/mocks/service"
	"prostore/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type productServiceFixture struct {
	svc         usecase.ProductUsecase
	productRepo *mockRepo.MockProductRepository
	qrcode      *mockSvc.MockQRCodeService
}

func newProductServiceForTest(t *testing.T) *productServiceFixture {
	f := &productServiceFixture{
		productRepo: mockRepo.NewMockProductRepository(t),
		qrcode:      mockSvc.NewMockQRCodeService(t),
	}

	f.svc = NewProductService(ProductServiceParams{
		ProductRepo:   f.productRepo,
		QRCodeService: f.qrcode,
		Config: &config.Config{
			Catalog: &config.CatalogConfig{PageSize: 12, LatestLimit: 4, FeaturedLimit: 4},
		},
	})

	return f
}

func TestProductService_CreateProduct_ParsesPrice(t *testing.T) {
	f := newProductServiceForTest(t)
	ctx := context.Background()

	f.productRepo.On("Create", ctx, mock.MatchedBy(func(p *entity.Product) bool {
		return p.Name == "Polo Classic" && p.Price.StringFixed(2) == "59.99" && p.Rating.IsZero()
	})).Return(nil)

	product, err := f.svc.CreateProduct(ctx, &usecase.ProductInput{
		Name:        "Polo Classic",
		Slug:        "polo-classic",
		Category:    "Shirts",
		Brand:       "Polo",
		Description: "A classic polo shirt.",
		Images:      []string{"/images/polo.jpg"},
		Price:       "59.99",
		Stock:       5,
	})
	require.NoError(t, err)
	assert.Equal(t, "polo-classic", product.Slug)
}

func TestProductService_CreateProduct_RejectsBadPrice(t *testing.T) {
	f := newProductServiceForTest(t)
	ctx := context.Background()

	_, err := f.svc.CreateProduct(ctx, &usecase.ProductInput{
		Name:  "Polo Classic",
		Slug:  "polo-classic",
		Price: "not-a-price",
	})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
}

func TestProductService_SearchProducts_PassesFiltersAndPaginates(t *testing.T) {
	f := newProductServiceForTest(t)
	ctx := context.Background()

	f.productRepo.On("Search", ctx, repository.ProductSearchParams{
		Query:    "polo",
		Category: "Shirts",
		Price:    "51-100",
		Rating:   "4",
		Sort:     repository.SortLowest,
		Page:     2,
		Limit:    12,
	}).Return([]*entity.Product{{ID: uuid.New()}}, int64(25), nil)

	page, err := f.svc.SearchProducts(ctx, usecase.SearchInput{
		Query:    "polo",
		Category: "Shirts",
		Price:    "51-100",
		Rating:   "4",
		Sort:     repository.SortLowest,
		Page:     2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalPages)
}

func TestProductService_DeleteProduct_NotFound(t *testing.T) {
	f := newProductServiceForTest(t)
	ctx := context.Background()
	id := uuid.New()

	f.productRepo.On("Delete", ctx, id).Return(repository.ErrProductNotFound)

	err := f.svc.DeleteProduct(ctx, id)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_GenerateProductQR_RequiresExistingSlug(t *testing.T) {
	f := newProductServiceForTest(t)
	ctx := context.Background()

	f.productRepo.On("FindBySlug", ctx, "missing").
		Return(nil, repository.ErrProductNotFound)

	_, err := f.svc.GenerateProductQR(ctx, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_GenerateProductQR_ReturnsImage(t *testing.T) {
	f := newProductServiceForTest(t)
	ctx := context.Background()

	f.productRepo.On("FindBySlug", ctx, "polo-classic").
		Return(&entity.Product{ID: uuid.New(), Slug: "polo-classic"}, nil)
	f.qrcode.On("GenerateProductQR", "polo-classic").
		Return([]byte{0x89, 0x50, 0x4e, 0x47}, nil)

	png, err := f.svc.GenerateProductQR(ctx, "polo-classic")
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
