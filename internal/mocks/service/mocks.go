// Package service provides testify mocks for the domain service interfaces.
package service

import (
	"context"
	"testing"
	"time"

	"prostore/internal/domain/entity"
	"prostore/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher mocks service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a mock with expectations asserted on cleanup.
func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

// MockTokenService mocks service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a mock with expectations asserted on cleanup.
func NewMockTokenService(t *testing.T) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) GenerateTokens(userID uuid.UUID, roles []string) (string, string, error) {
	args := m.Called(userID, roles)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockTokenService) GetRefreshTokenDuration() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

// MockPayPalGateway mocks service.PayPalGateway.
type MockPayPalGateway struct {
	mock.Mock
}

// NewMockPayPalGateway creates a mock with expectations asserted on cleanup.
func NewMockPayPalGateway(t *testing.T) *MockPayPalGateway {
	m := &MockPayPalGateway{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPayPalGateway) CreateOrder(ctx context.Context, amount string) (*service.PayPalOrder, error) {
	args := m.Called(ctx, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.PayPalOrder), args.Error(1)
}

func (m *MockPayPalGateway) CaptureOrder(ctx context.Context, providerOrderID string) (*service.PayPalCapture, error) {
	args := m.Called(ctx, providerOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.PayPalCapture), args.Error(1)
}

// MockStripeWebhookVerifier mocks service.StripeWebhookVerifier.
type MockStripeWebhookVerifier struct {
	mock.Mock
}

// NewMockStripeWebhookVerifier creates a mock with expectations asserted on cleanup.
func NewMockStripeWebhookVerifier(t *testing.T) *MockStripeWebhookVerifier {
	m := &MockStripeWebhookVerifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockStripeWebhookVerifier) VerifyAndParse(payload []byte, signatureHeader string) (*service.StripeChargeEvent, error) {
	args := m.Called(payload, signatureHeader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.StripeChargeEvent), args.Error(1)
}

// MockEventPublisher mocks service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a mock with expectations asserted on cleanup.
func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) PublishOrderPaidEvent(ctx context.Context, event *service.OrderPaidEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// MockReceiptMailer mocks service.ReceiptMailer.
type MockReceiptMailer struct {
	mock.Mock
}

// NewMockReceiptMailer creates a mock with expectations asserted on cleanup.
func NewMockReceiptMailer(t *testing.T) *MockReceiptMailer {
	m := &MockReceiptMailer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockReceiptMailer) SendPurchaseReceipt(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

// MockQRCodeService mocks service.QRCodeService.
type MockQRCodeService struct {
	mock.Mock
}

// NewMockQRCodeService creates a mock with expectations asserted on cleanup.
func NewMockQRCodeService(t *testing.T) *MockQRCodeService {
	m := &MockQRCodeService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockQRCodeService) GenerateProductQR(slug string) ([]byte, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}
