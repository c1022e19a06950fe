package handler

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"prostore/config"
	"prostore/internal/domain/entity"
	"prostore/internal/domain/repository"
	"prostore/internal/domain/service"
	mockrepository "prostore/internal/mocks/repository"
	mockservice "prostore/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type receiptFixture struct {
	handler   *ReceiptHandler
	orderRepo *mockrepository.MockOrderRepository
	mailer    *mockservice.MockReceiptMailer
}

func newReceiptFixture(t *testing.T) *receiptFixture {
	orderRepo := mockrepository.NewMockOrderRepository(t)
	mailer := mockservice.NewMockReceiptMailer(t)

	handler := NewReceiptHandler(ReceiptHandlerParams{
		Config:    &config.Config{},
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		OrderRepo: orderRepo,
		Mailer:    mailer,
	})

	return &receiptFixture{
		handler:   handler,
		orderRepo: orderRepo,
		mailer:    mailer,
	}
}

func pushRequest(t *testing.T, event *service.OrderPaidEvent) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var pushMsg PubSubMessage
	pushMsg.Message.Data = base64.StdEncoding.EncodeToString(data)
	pushMsg.Message.MessageID = event.OrderID
	pushMsg.Subscription = "projects/local/subscriptions/order-paid-sub"

	body, err := json.Marshal(pushMsg)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func paidOrder(orderID uuid.UUID) *entity.Order {
	paidAt := time.Now()

	return &entity.Order{
		ID:         orderID,
		UserEmail:  "jane@example.com",
		UserName:   "Jane",
		Items:      []entity.OrderItem{{Name: "Polo Shirt", Slug: "polo-shirt", Qty: 2, Price: decimal.RequireFromString("59.99")}},
		TotalPrice: decimal.RequireFromString("137.98"),
		IsPaid:     true,
		PaidAt:     &paidAt,
		CreatedAt:  time.Now(),
	}
}

func TestReceiptHandler_HandlePush_SendsReceipt(t *testing.T) {
	fixture := newReceiptFixture(t)
	orderID := uuid.New()
	order := paidOrder(orderID)

	fixture.orderRepo.On("FindByID", mock.Anything, orderID).Return(order, nil)
	fixture.mailer.On("SendPurchaseReceipt", mock.Anything, order).Return(nil)

	c, rec := pushRequest(t, &service.OrderPaidEvent{OrderID: orderID.String(), UserEmail: order.UserEmail})

	require.NoError(t, fixture.handler.HandlePush(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReceiptHandler_HandlePush_MailerFailureIsRetried(t *testing.T) {
	fixture := newReceiptFixture(t)
	orderID := uuid.New()
	order := paidOrder(orderID)

	fixture.orderRepo.On("FindByID", mock.Anything, orderID).Return(order, nil)
	fixture.mailer.On("SendPurchaseReceipt", mock.Anything, order).
		Return(assert.AnError)

	c, rec := pushRequest(t, &service.OrderPaidEvent{OrderID: orderID.String()})

	require.NoError(t, fixture.handler.HandlePush(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReceiptHandler_HandlePush_UnknownOrderIsAcked(t *testing.T) {
	fixture := newReceiptFixture(t)
	orderID := uuid.New()

	fixture.orderRepo.On("FindByID", mock.Anything, orderID).
		Return(nil, repository.ErrOrderNotFound)

	c, rec := pushRequest(t, &service.OrderPaidEvent{OrderID: orderID.String()})

	require.NoError(t, fixture.handler.HandlePush(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	fixture.mailer.AssertNotCalled(t, "SendPurchaseReceipt", mock.Anything, mock.Anything)
}

func TestReceiptHandler_HandlePush_UnpaidOrderIsRetried(t *testing.T) {
	fixture := newReceiptFixture(t)
	orderID := uuid.New()
	order := paidOrder(orderID)
	order.IsPaid = false

	fixture.orderRepo.On("FindByID", mock.Anything, orderID).Return(order, nil)

	c, rec := pushRequest(t, &service.OrderPaidEvent{OrderID: orderID.String()})

	require.NoError(t, fixture.handler.HandlePush(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReceiptHandler_HandlePush_MalformedBody(t *testing.T) {
	fixture := newReceiptFixture(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader("not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, fixture.handler.HandlePush(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
