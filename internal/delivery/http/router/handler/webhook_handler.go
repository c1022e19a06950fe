package handler

import (
	"io"
	"log/slog"
	"net/http"

	"prostore/internal/delivery/http/response"
	domainerrors "prostore/internal/domain/errors"
	"prostore/internal/domain/service"
	"prostore/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	stripeSignatureHeader = "Stripe-Signature"
	stripeChargeSucceeded = "charge.succeeded"

	maxWebhookBody = 1 << 20
)

// WebhookHandler receives payment provider callbacks.
type WebhookHandler struct {
	verifier service.StripeWebhookVerifier
	orderUC  usecase.OrderUsecase
	logger   *slog.Logger
}

// NewWebhookHandler is the constructor for WebhookHandler, injected by Fx.
func NewWebhookHandler(verifier service.StripeWebhookVerifier, orderUC usecase.OrderUsecase, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		verifier: verifier,
		orderUC:  orderUC,
		logger:   logger,
	}
}

// HandleStripe verifies and processes a Stripe webhook delivery. A verified
// charge.succeeded event marks the referenced order paid; other event types
// are acknowledged and ignored.
func (h *WebhookHandler) HandleStripe(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Failed to read webhook payload")
	}

	event, err := h.verifier.VerifyAndParse(payload, c.Request().Header.Get(stripeSignatureHeader))
	if err != nil {
		h.logger.Warn("Rejected Stripe webhook", slog.Any("error", err))

		return domainerrors.ErrWebhookSignatureInvalid
	}

	if event.Type != stripeChargeSucceeded {
		return response.Success(c, http.StatusOK, map[string]string{"received": event.Type}, "Event ignored")
	}

	orderID, err := uuid.Parse(event.OrderID)
	if err != nil {
		h.logger.Warn("Stripe charge missing order reference",
			slog.String("charge_id", event.ChargeID))

		return response.BadRequest(c, "INVALID_INPUT", "Charge metadata is missing the order ID")
	}

	// Stripe reports amounts in cents
	pricePaid := decimal.NewFromInt(event.Amount).Div(decimal.NewFromInt(100))

	result := &usecase.PaymentResultInput{
		ID:           event.ChargeID,
		Status:       "COMPLETED",
		EmailAddress: event.EmailAddress,
		PricePaid:    pricePaid.StringFixed(2),
	}

	if err := h.orderUC.MarkOrderPaid(c.Request().Context(), orderID, result); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"orderId": orderID.String()}, "Order marked as paid")
}
