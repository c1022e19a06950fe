// Package usecase provides hand-rolled testify mocks for the application
// layer interfaces.
package usecase

import (
	"context"
	"testing"

	"prostore/internal/domain/entity"
	"prostore/internal/domain/repository"
	"prostore/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockOrderUsecase is a mock implementation of usecase.OrderUsecase.
type MockOrderUsecase struct {
	mock.Mock
}

// NewMockOrderUsecase creates a new MockOrderUsecase bound to the test lifecycle.
func NewMockOrderUsecase(t *testing.T) *MockOrderUsecase {
	m := &MockOrderUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOrderUsecase) CreateOrder(ctx context.Context, userID uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderUsecase) GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderUsecase) CreatePayPalOrder(ctx context.Context, orderID uuid.UUID) (string, error) {
	args := m.Called(ctx, orderID)

	return args.String(0), args.Error(1)
}

func (m *MockOrderUsecase) ApprovePayPalOrder(ctx context.Context, orderID uuid.UUID, providerOrderID string) error {
	args := m.Called(ctx, orderID, providerOrderID)

	return args.Error(0)
}

func (m *MockOrderUsecase) MarkOrderPaid(ctx context.Context, orderID uuid.UUID, result *usecase.PaymentResultInput) error {
	args := m.Called(ctx, orderID, result)

	return args.Error(0)
}

func (m *MockOrderUsecase) MarkOrderDelivered(ctx context.Context, orderID uuid.UUID) error {
	args := m.Called(ctx, orderID)

	return args.Error(0)
}

func (m *MockOrderUsecase) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	args := m.Called(ctx, orderID)

	return args.Error(0)
}

func (m *MockOrderUsecase) ListMyOrders(ctx context.Context, userID uuid.UUID, page int) (*usecase.Paged[*entity.Order], error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.Paged[*entity.Order]), args.Error(1)
}

func (m *MockOrderUsecase) ListOrders(ctx context.Context, query string, page int) (*usecase.Paged[*entity.Order], error) {
	args := m.Called(ctx, query, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.Paged[*entity.Order]), args.Error(1)
}

func (m *MockOrderUsecase) GetOrderSummary(ctx context.Context) (*repository.OrderSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*repository.OrderSummary), args.Error(1)
}
