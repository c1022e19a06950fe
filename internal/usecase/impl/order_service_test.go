package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"prostore/config"
	"prostore/internal/domain/entity"
	domainerrors "prostore/internal/domain/errors"
	"prostore/internal/domain/repository"
	"prostore/internal/domain/service"
	mockRepo "prostore/internal/mocks/repository"
	mockSvc "prostore/internal/mocks/service"
	"prostore/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderServiceFixture struct {
	svc         usecase.OrderUsecase
	orderRepo   *mockRepo.MockOrderRepository
	cartRepo    *mockRepo.MockCartRepository
	userRepo    *mockRepo.MockUserRepository
	productRepo *mockRepo.MockProductRepository
	paypal      *mockSvc.MockPayPalGateway
	publisher   *mockSvc.MockEventPublisher
}

func newOrderServiceForTest(t *testing.T) *orderServiceFixture {
	f := &orderServiceFixture{
		orderRepo:   mockRepo.NewMockOrderRepository(t),
		cartRepo:    mockRepo.NewMockCartRepository(t),
		userRepo:    mockRepo.NewMockUserRepository(t),
		productRepo: mockRepo.NewMockProductRepository(t),
		paypal:      mockSvc.NewMockPayPalGateway(t),
		publisher:   mockSvc.NewMockEventPublisher(t),
	}

	txManager := &mockRepo.StubTransactionManager{
		Factory: &mockRepo.StubRepositoryFactory{
			OrderRepo:   f.orderRepo,
			CartRepo:    f.cartRepo,
			UserRepo:    f.userRepo,
			ProductRepo: f.productRepo,
		},
	}

	cfg := &config.Config{
		Catalog: &config.CatalogConfig{PageSize: 10, LatestLimit: 4, FeaturedLimit: 4},
	}

	f.svc = NewOrderService(OrderServiceParams{
		TxManager: txManager,
		OrderRepo: f.orderRepo,
		CartRepo:  f.cartRepo,
		UserRepo:  f.userRepo,
		PayPal:    f.paypal,
		Publisher: f.publisher,
		Config:    cfg,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return f
}

func checkoutUser(id uuid.UUID) *entity.User {
	return &entity.User{
		ID:    id,
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Address: &entity.Address{
			FullName:      "Jane Doe",
			StreetAddress: "1 Main St",
			City:          "Springfield",
			PostalCode:    "12345",
			Country:       "USA",
		},
		PaymentMethod: entity.PaymentMethodPayPal,
	}
}

func checkoutCart(userID uuid.UUID) *entity.Cart {
	return &entity.Cart{
		ID:     uuid.New(),
		UserID: &userID,
		Items: []entity.CartItem{{
			ProductID: uuid.New(),
			Name:      "Polo Classic",
			Slug:      "polo-classic",
			Price:     decimal.RequireFromString("59.99"),
			Qty:       2,
		}},
		ItemsPrice:    decimal.RequireFromString("119.98"),
		ShippingPrice: decimal.Zero,
		TaxPrice:      decimal.RequireFromString("18.00"),
		TotalPrice:    decimal.RequireFromString("137.98"),
	}
}

func TestOrderService_CreateOrder_FreezesCartAndResetsIt(t *testing.T) {
	f := newOrderServiceForTest(t)
	ctx := context.Background()
	userID := uuid.New()
	cart := checkoutCart(userID)

	f.userRepo.On("FindByID", ctx, userID).Return(checkoutUser(userID), nil)
	f.cartRepo.On("FindByUserID", ctx, userID).Return(cart, nil)
	f.orderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	f.cartRepo.On("Update", ctx, mock.MatchedBy(func(c *entity.Cart) bool {
		return len(c.Items) == 0 &&
			c.ItemsPrice.IsZero() && c.ShippingPrice.IsZero() &&
			c.TaxPrice.IsZero() && c.TotalPrice.IsZero()
	})).Return(nil)

	order, err := f.svc.CreateOrder(ctx, userID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Qty)
	assert.Equal(t, order.ID, order.Items[0].OrderID)
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("137.98")))
	assert.Equal(t, entity.PaymentMethodPayPal, order.PaymentMethod)
	assert.Equal(t, "Springfield", order.ShippingAddress.City)
	assert.False(t, order.IsPaid)
}

func TestOrderService_CreateOrder_CartResetFailureAbortsOrder(t *testing.T) {
	f := newOrderServiceForTest(t)
	ctx := context.Background()
	userID := uuid.New()
	cart := checkoutCart(userID)

	f.userRepo.On("FindByID", ctx, userID).Return(checkoutUser(userID), nil)
	f.cartRepo.On("FindByUserID", ctx, userID).Return(cart, nil)
	f.orderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	f.cartRepo.On("Update", ctx, mock.AnythingOfType("*entity.Cart")).
		Return(errors.New("connection reset"))

	order, err := f.svc.CreateOrder(ctx, userID)
	require.Error(t, err)
	assert.Nil(t, order)
	assert.Contains(t, err.Error(), "failed to reset cart")
}

func TestOrderService_CreateOrder_EmptyCartRedirects(t *testing.T) {
	f := newOrderServiceForTest(t)
	ctx := context.Background()
	userID := uuid.New()

	f.userRepo.On("FindByID", ctx, userID).Return(checkoutUser(userID), nil)
	f.cartRepo.On("FindByUserID", ctx, userID).Return(nil, repository.ErrCartNotFound)

	_, err := f.svc.CreateOrder(ctx, userID)
	require.Error(t, err)

	var redirector domainerrors.Redirector
	require.ErrorAs(t, err, &redirector)
	assert.Equal(t, usecase.RedirectCart, redirector.RedirectTo())
}

func TestOrderService_CreateOrder_MissingAddressRedirects(t *testing.T) {
	f := newOrderServiceForTest(t)
	ctx := context.Background()
	userID := uuid.New()

	user := checkoutUser(userID)
	user.Address = nil

	f.userRepo.On("FindByID", ctx, userID).Return(user, nil)
	f.cartRepo.On("FindByUserID", ctx, userID).Return(checkoutCart(userID), nil)

	_, err := f.svc.CreateOrder(ctx, userID)
	require.Error(t, err)

	var redirector domainerrors.Redirector
	require.ErrorAs(t, err, &redirector)
	assert.Equal(t, usecase.RedirectShippingAddress, redirector.RedirectTo())
}

func TestOrderService_CreateOrder_MissingPaymentMethodRedirects(t *testing.T) {
	f := newOrderServiceForTest(t)
	ctx := context.Background()
	userID := uuid.New()

	user := checkoutUser(userID)
	user.PaymentMethod = ""

	f.userRepo.On("FindByID", ctx, userID).Return(user, nil)
	f.cartRepo.On("FindByUserID", ctx, userID).Return(checkoutCart(userID), nil)

	_, err := f.svc.CreateOrder(ctx, userID)
	require.Error(t, err)

	var redirector domainerrors.Redirector
	require.ErrorAs(t, err, &redirector)
	assert.Equal(t, usecase.RedirectPaymentMethod, redirector.RedirectTo())
}

func paidableOrder(paid bool) *entity.Order {
	return &entity.Order{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		UserName:  "Jane Doe",
		UserEmail: "jane@example.com",
		Items: []entity.OrderItem{
			{ProductID: uuid.New(), Name: "Polo Classic", Qty: 2, Price: decimal.RequireFromString("59.99")},
			{ProductID: uuid.New(), Name: "Hoodie", Qty: 1, Price: decimal.RequireFromString("18.00")},
		},
		TotalPrice: decimal.RequireFromString("137.98"),
		IsPaid:     paid,
	}
}

func TestOrderService_MarkOrderPaid_DecrementsStockOnce(t *testing.T) {
	f := newOrderServiceForTest(t)
	ctx := context.Background()
	order := paidableOrder(false)

	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	f.productRepo.On("DecrementStock", ctx, order.Items[0].ProductID, 2).Return(nil)
	f.productRepo.On("DecrementStock", ctx, order.Items[1].ProductID, 1).Return(nil)
	f.orderRepo.On("MarkPaid", ctx, order.ID, mock.AnythingOfType("time.Time"), mock.MatchedBy(func(r *entity.PaymentResult) bool {
		return r.ID == "capture-1" && r.Status == "COMPLETED"
	})).Return(nil)
	f.publisher.On("PublishOrderPaidEvent", ctx, mock.MatchedBy(func(e *service.OrderPaidEvent) bool {
		return e.OrderID == order.ID.String() && e.UserEmail == "jane@example.com"
	})).Return(nil)

	err := f.svc.MarkOrderPaid(ctx, order.ID, &usecase.PaymentResultInput{
		ID:           "capture-1",
		Status:       "COMPLETED",
		EmailAddress: "jane@example.com",
		PricePaid:    "137.98",
	})
	require.NoError(t, err)
}

func TestOrderService_MarkOrderPaid_AlreadyPaidIsNoOp(t *testing.T) {
	f := newOrderServiceForTest(t)
	ctx := context.Background()
	order := paidableOrder(true)

	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

	err := f.svc.MarkOrderPaid(ctx, order.ID, &usecase.PaymentResultInput{ID: "capture-1"})
	require.NoError(t, err)
	f.orderRepo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.productRepo.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_MarkOrderPaid_InsufficientStock(t *testing.T) {
	f := newOrderServiceForTest(t)
	ctx := context.Background()
	order := paidableOrder(false)

	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	f.productRepo.On("DecrementStock", ctx, order.Items[0].ProductID, 2).
		Return(repository.ErrInsufficientStock)

	err := f.svc.MarkOrderPaid(ctx, order.ID, &usecase.PaymentResultInput{ID: "capture-1"})
	assert.ErrorContains(t, err, "Not enough stock")
}

func TestOrderService_ApprovePayPalOrder_CaptureMismatch(t *testing.T) {
	f := newOrderServiceForTest(t)
	ctx := context.Background()

	order := paidableOrder(false)
	order.PaymentResult = &entity.PaymentResult{ID: "provider-1"}

	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	f.paypal.On("CaptureOrder", ctx, "provider-1").Return(&service.PayPalCapture{
		ID:     "provider-other",
		Status: "COMPLETED",
	}, nil)

	err := f.svc.ApprovePayPalOrder(ctx, order.ID, "provider-1")
	assert.ErrorIs(t, err, domainerrors.ErrPaymentMismatch)
}

func TestOrderService_ApprovePayPalOrder_CapturesAndPays(t *testing.T) {
	f := newOrderServiceForTest(t)
	ctx := context.Background()

	order := paidableOrder(false)
	order.PaymentResult = &entity.PaymentResult{ID: "provider-1"}

	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	f.paypal.On("CaptureOrder", ctx, "provider-1").Return(&service.PayPalCapture{
		ID:           "provider-1",
		Status:       "COMPLETED",
		EmailAddress: "jane@example.com",
		AmountValue:  "137.98",
	}, nil)
	f.productRepo.On("DecrementStock", ctx, mock.Anything, mock.Anything).Return(nil)
	f.orderRepo.On("MarkPaid", ctx, order.ID, mock.AnythingOfType("time.Time"), mock.MatchedBy(func(r *entity.PaymentResult) bool {
		return r.ID == "provider-1" && r.PricePaid == "137.98"
	})).Return(nil)
	f.publisher.On("PublishOrderPaidEvent", ctx, mock.Anything).Return(nil)

	err := f.svc.ApprovePayPalOrder(ctx, order.ID, "provider-1")
	require.NoError(t, err)
}

func TestOrderService_CreatePayPalOrder_StoresProviderOrderID(t *testing.T) {
	f := newOrderServiceForTest(t)
	ctx := context.Background()
	order := paidableOrder(false)

	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	f.paypal.On("CreateOrder", ctx, "137.98").Return(&service.PayPalOrder{ID: "provider-1", Status: "CREATED"}, nil)
	f.orderRepo.On("UpdatePaymentResult", ctx, order.ID, mock.MatchedBy(func(r *entity.PaymentResult) bool {
		return r.ID == "provider-1"
	})).Return(nil)

	providerOrderID, err := f.svc.CreatePayPalOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "provider-1", providerOrderID)
}

func TestOrderService_MarkOrderDelivered_RequiresPayment(t *testing.T) {
	f := newOrderServiceForTest(t)
	ctx := context.Background()
	order := paidableOrder(false)

	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

	err := f.svc.MarkOrderDelivered(ctx, order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotPaid)
}

func TestOrderService_MarkOrderDelivered_AlreadyDelivered(t *testing.T) {
	f := newOrderServiceForTest(t)
	ctx := context.Background()

	order := paidableOrder(true)
	order.IsDelivered = true

	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

	err := f.svc.MarkOrderDelivered(ctx, order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderAlreadyDelivered)
}

func TestOrderService_MarkOrderDelivered_Succeeds(t *testing.T) {
	f := newOrderServiceForTest(t)
	ctx := context.Background()
	order := paidableOrder(true)

	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	f.orderRepo.On("MarkDelivered", ctx, order.ID, mock.AnythingOfType("time.Time")).Return(nil)

	err := f.svc.MarkOrderDelivered(ctx, order.ID)
	require.NoError(t, err)
}

func TestOrderService_ListMyOrders_ComputesTotalPages(t *testing.T) {
	f := newOrderServiceForTest(t)
	ctx := context.Background()
	userID := uuid.New()

	f.orderRepo.On("ListByUser", ctx, userID, repository.OrderListParams{Page: 1, Limit: 10}).
		Return([]*entity.Order{paidableOrder(true)}, int64(21), nil)

	page, err := f.svc.ListMyOrders(ctx, userID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalPages)
	assert.Len(t, page.Data, 1)
}

func TestOrderService_PublishFailureDoesNotFailPayment(t *testing.T) {
	f := newOrderServiceForTest(t)
	ctx := context.Background()
	order := paidableOrder(false)

	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	f.productRepo.On("DecrementStock", ctx, mock.Anything, mock.Anything).Return(nil)
	f.orderRepo.On("MarkPaid", ctx, order.ID, mock.AnythingOfType("time.Time"), mock.Anything).Return(nil)
	f.publisher.On("PublishOrderPaidEvent", ctx, mock.Anything).
		Return(assert.AnError)

	err := f.svc.MarkOrderPaid(ctx, order.ID, &usecase.PaymentResultInput{ID: "capture-1", PricePaid: "137.98"})
	require.NoError(t, err)
}
