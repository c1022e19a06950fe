package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domainerrors "prostore/internal/domain/errors"
	"prostore/internal/domain/service"
	mockservice "prostore/internal/mocks/service"
	mockusecase "prostore/internal/mocks/usecase"
	"prostore/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type webhookFixture struct {
	handler  *WebhookHandler
	verifier *mockservice.MockStripeWebhookVerifier
	orderUC  *mockusecase.MockOrderUsecase
}

func newWebhookFixture(t *testing.T) *webhookFixture {
	verifier := mockservice.NewMockStripeWebhookVerifier(t)
	orderUC := mockusecase.NewMockOrderUsecase(t)

	handler := NewWebhookHandler(verifier, orderUC, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return &webhookFixture{
		handler:  handler,
		verifier: verifier,
		orderUC:  orderUC,
	}
}

func stripeRequest(payload string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", "t=1,v1=sig")
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestWebhookHandler_HandleStripe_ChargeSucceededMarksOrderPaid(t *testing.T) {
	fixture := newWebhookFixture(t)
	orderID := uuid.New()

	fixture.verifier.On("VerifyAndParse", mock.Anything, "t=1,v1=sig").
		Return(&service.StripeChargeEvent{
			Type:         "charge.succeeded",
			ChargeID:     "ch_123",
			OrderID:      orderID.String(),
			Status:       "succeeded",
			EmailAddress: "jane@example.com",
			Amount:       13798,
		}, nil)
	fixture.orderUC.On("MarkOrderPaid", mock.Anything, orderID, &usecase.PaymentResultInput{
		ID:           "ch_123",
		Status:       "COMPLETED",
		EmailAddress: "jane@example.com",
		PricePaid:    "137.98",
	}).Return(nil)

	c, rec := stripeRequest(`{"type":"charge.succeeded"}`)

	require.NoError(t, fixture.handler.HandleStripe(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookHandler_HandleStripe_InvalidSignature(t *testing.T) {
	fixture := newWebhookFixture(t)

	fixture.verifier.On("VerifyAndParse", mock.Anything, "t=1,v1=sig").
		Return(nil, assert.AnError)

	c, _ := stripeRequest(`{}`)

	err := fixture.handler.HandleStripe(c)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrWebhookSignatureInvalid.ErrorCode(), appErr.ErrorCode())
	fixture.orderUC.AssertNotCalled(t, "MarkOrderPaid", mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhookHandler_HandleStripe_IgnoresOtherEvents(t *testing.T) {
	fixture := newWebhookFixture(t)

	fixture.verifier.On("VerifyAndParse", mock.Anything, "t=1,v1=sig").
		Return(&service.StripeChargeEvent{Type: "charge.refunded"}, nil)

	c, rec := stripeRequest(`{"type":"charge.refunded"}`)

	require.NoError(t, fixture.handler.HandleStripe(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	fixture.orderUC.AssertNotCalled(t, "MarkOrderPaid", mock.Anything, mock.Anything, mock.Anything)
}
