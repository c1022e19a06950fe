package impl

import (
	"context"
	"testing"

	"prostore/internal/domain/entity"
	domainerrors "prostore/internal/domain/errors"
	"prostore/internal/domain/repository"
	mockRepo "prostore/internal/mocks/repository"
	"prostore/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCartServiceForTest(t *testing.T) (usecase.CartUsecase, *mockRepo.MockCartRepository, *mockRepo.MockProductRepository) {
	cartRepo := mockRepo.NewMockCartRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	svc := NewCartService(CartServiceParams{
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
	})

	return svc, cartRepo, productRepo
}

func testProduct(price string, stock int) *entity.Product {
	return &entity.Product{
		ID:     uuid.New(),
		Name:   "Polo Classic",
		Slug:   "polo-classic",
		Images: []string{"/images/polo.jpg"},
		Price:  decimal.RequireFromString(price),
		Stock:  stock,
	}
}

func TestCartService_GetCart_NoCartYet(t *testing.T) {
	svc, cartRepo, _ := newCartServiceForTest(t)
	ctx := context.Background()

	cartRepo.On("FindBySessionCartID", ctx, "session-1").
		Return(nil, repository.ErrCartNotFound)

	cart, err := svc.GetCart(ctx, usecase.CartIdentity{SessionCartID: "session-1"})
	require.NoError(t, err)
	assert.Nil(t, cart)
}

func TestCartService_AddItem_CreatesCartOnFirstUse(t *testing.T) {
	svc, cartRepo, productRepo := newCartServiceForTest(t)
	ctx := context.Background()
	product := testProduct("59.99", 5)

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	cartRepo.On("FindBySessionCartID", ctx, "session-1").
		Return(nil, repository.ErrCartNotFound)
	cartRepo.On("Create", ctx, mock.AnythingOfType("*entity.Cart")).Return(nil)

	cart, err := svc.AddItem(ctx, usecase.CartIdentity{SessionCartID: "session-1"}, product.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Qty)
	assert.Equal(t, "session-1", cart.SessionCartID)
	assert.True(t, cart.ItemsPrice.Equal(decimal.RequireFromString("59.99")))
	assert.True(t, cart.ShippingPrice.Equal(decimal.RequireFromString("10")))
	assert.True(t, cart.TaxPrice.Equal(decimal.RequireFromString("9.00")))
	assert.True(t, cart.TotalPrice.Equal(decimal.RequireFromString("78.99")))
}

func TestCartService_AddItem_IncrementsExistingLine(t *testing.T) {
	svc, cartRepo, productRepo := newCartServiceForTest(t)
	ctx := context.Background()
	product := testProduct("40.00", 3)

	existing := &entity.Cart{
		ID:            uuid.New(),
		SessionCartID: "session-1",
		Items: []entity.CartItem{{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Qty:       2,
		}},
	}

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	cartRepo.On("FindBySessionCartID", ctx, "session-1").Return(existing, nil)
	cartRepo.On("Update", ctx, mock.AnythingOfType("*entity.Cart")).Return(nil)

	cart, err := svc.AddItem(ctx, usecase.CartIdentity{SessionCartID: "session-1"}, product.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Qty)
	// 120 crosses the free shipping threshold.
	assert.True(t, cart.ShippingPrice.IsZero())
}

func TestCartService_AddItem_RejectsWhenStockExhausted(t *testing.T) {
	svc, cartRepo, productRepo := newCartServiceForTest(t)
	ctx := context.Background()
	product := testProduct("40.00", 2)

	existing := &entity.Cart{
		ID:            uuid.New(),
		SessionCartID: "session-1",
		Items: []entity.CartItem{{
			ProductID: product.ID,
			Price:     product.Price,
			Qty:       2,
		}},
	}

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	cartRepo.On("FindBySessionCartID", ctx, "session-1").Return(existing, nil)

	_, err := svc.AddItem(ctx, usecase.CartIdentity{SessionCartID: "session-1"}, product.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOutOfStock)
}

func TestCartService_AddItem_RejectsNewLineWithoutStock(t *testing.T) {
	svc, cartRepo, productRepo := newCartServiceForTest(t)
	ctx := context.Background()
	product := testProduct("40.00", 0)

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	cartRepo.On("FindBySessionCartID", ctx, "session-1").
		Return(nil, repository.ErrCartNotFound)

	_, err := svc.AddItem(ctx, usecase.CartIdentity{SessionCartID: "session-1"}, product.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOutOfStock)
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	svc, _, productRepo := newCartServiceForTest(t)
	ctx := context.Background()
	productID := uuid.New()

	productRepo.On("FindByID", ctx, productID).
		Return(nil, repository.ErrProductNotFound)

	_, err := svc.AddItem(ctx, usecase.CartIdentity{SessionCartID: "session-1"}, productID)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCartService_RemoveItem_DecrementsQuantity(t *testing.T) {
	svc, cartRepo, _ := newCartServiceForTest(t)
	ctx := context.Background()
	productID := uuid.New()

	existing := &entity.Cart{
		ID:            uuid.New(),
		SessionCartID: "session-1",
		Items: []entity.CartItem{{
			ProductID: productID,
			Price:     decimal.RequireFromString("25.00"),
			Qty:       2,
		}},
	}

	cartRepo.On("FindBySessionCartID", ctx, "session-1").Return(existing, nil)
	cartRepo.On("Update", ctx, mock.AnythingOfType("*entity.Cart")).Return(nil)

	cart, err := svc.RemoveItem(ctx, usecase.CartIdentity{SessionCartID: "session-1"}, productID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Qty)
}

func TestCartService_RemoveItem_DropsLineAtOne(t *testing.T) {
	svc, cartRepo, _ := newCartServiceForTest(t)
	ctx := context.Background()
	productID := uuid.New()

	existing := &entity.Cart{
		ID:            uuid.New(),
		SessionCartID: "session-1",
		Items: []entity.CartItem{{
			ProductID: productID,
			Price:     decimal.RequireFromString("25.00"),
			Qty:       1,
		}},
	}

	cartRepo.On("FindBySessionCartID", ctx, "session-1").Return(existing, nil)
	cartRepo.On("Update", ctx, mock.AnythingOfType("*entity.Cart")).Return(nil)

	cart, err := svc.RemoveItem(ctx, usecase.CartIdentity{SessionCartID: "session-1"}, productID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.ItemsPrice.IsZero())
}

func TestCartService_RemoveItem_UnknownLine(t *testing.T) {
	svc, cartRepo, _ := newCartServiceForTest(t)
	ctx := context.Background()

	existing := &entity.Cart{
		ID:            uuid.New(),
		SessionCartID: "session-1",
		Items: []entity.CartItem{{
			ProductID: uuid.New(),
			Price:     decimal.RequireFromString("25.00"),
			Qty:       1,
		}},
	}

	cartRepo.On("FindBySessionCartID", ctx, "session-1").Return(existing, nil)

	_, err := svc.RemoveItem(ctx, usecase.CartIdentity{SessionCartID: "session-1"}, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrItemNotFound)
}

func TestCartService_FindCart_PrefersUserOverSession(t *testing.T) {
	svc, cartRepo, _ := newCartServiceForTest(t)
	ctx := context.Background()
	userID := uuid.New()

	owned := &entity.Cart{ID: uuid.New(), UserID: &userID, SessionCartID: "session-1"}
	cartRepo.On("FindByUserID", ctx, userID).Return(owned, nil)

	cart, err := svc.GetCart(ctx, usecase.CartIdentity{SessionCartID: "session-1", UserID: &userID})
	require.NoError(t, err)
	assert.Equal(t, owned.ID, cart.ID)
}
