package handler

import (
	"log/slog"
	"net/http"

	"prostore/internal/delivery/http/middleware"
	"prostore/internal/delivery/http/response"
	"prostore/internal/domain/entity"
	domainerrors "prostore/internal/domain/errors"
	"prostore/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: logger,
	}
}

// Create places an order from the caller's current cart.
func (h *OrderHandler) Create(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	order, err := h.uc.CreateOrder(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order created successfully")
}

// Get returns a single order with its items. Customers may only read their
// own orders; admins may read any.
func (h *OrderHandler) Get(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	order, err := h.uc.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	if !h.canAccessOrder(c, order) {
		return domainerrors.ErrForbidden
	}

	return response.Success(c, http.StatusOK, order, "")
}

// ListMine returns a page of the caller's own orders.
func (h *OrderHandler) ListMine(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	paged, err := h.uc.ListMyOrders(c.Request().Context(), userID, parsePageParam(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, paged, "")
}

// List returns a page of all orders for the admin view.
func (h *OrderHandler) List(c echo.Context) error {
	paged, err := h.uc.ListOrders(c.Request().Context(), c.QueryParam("query"), parsePageParam(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, paged, "")
}

// Summary aggregates storefront-wide figures for the admin overview.
func (h *OrderHandler) Summary(c echo.Context) error {
	summary, err := h.uc.GetOrderSummary(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summary, "")
}

// CreatePayPalOrder opens a provider-side PayPal order for payment.
func (h *OrderHandler) CreatePayPalOrder(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	providerOrderID, err := h.uc.CreatePayPalOrder(c.Request().Context(), orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]string{"paypalOrderId": providerOrderID}, "PayPal order created")
}

type approvePayPalRequest struct {
	PayPalOrderID string `json:"paypalOrderId" validate:"required"`
}

// ApprovePayPalOrder captures the approved PayPal order and marks the order paid.
func (h *OrderHandler) ApprovePayPalOrder(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	var input *approvePayPalRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid approval input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	if err := h.uc.ApprovePayPalOrder(c.Request().Context(), orderID, input.PayPalOrderID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order paid successfully")
}

// MarkPaid marks a cash-on-delivery order as paid, admin only.
func (h *OrderHandler) MarkPaid(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	if err := h.uc.MarkOrderPaid(c.Request().Context(), orderID, nil); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order marked as paid")
}

// MarkDelivered marks a paid order as delivered, admin only.
func (h *OrderHandler) MarkDelivered(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	if err := h.uc.MarkOrderDelivered(c.Request().Context(), orderID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order marked as delivered")
}

// Delete removes an order, admin only.
func (h *OrderHandler) Delete(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	if err := h.uc.DeleteOrder(c.Request().Context(), orderID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order deleted successfully")
}

func (h *OrderHandler) canAccessOrder(c echo.Context, order *entity.Order) bool {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return false
	}
	if order.UserID == userID {
		return true
	}

	roles, _ := c.Get(middleware.ContextKeyRoles).([]string)
	for _, role := range roles {
		if role == entity.RoleAdmin {
			return true
		}
	}

	return false
}
