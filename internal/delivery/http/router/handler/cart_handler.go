package handler

import (
	"log/slog"
	"net/http"

	"prostore/internal/delivery/http/middleware"
	"prostore/internal/delivery/http/response"
	"prostore/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler holds dependencies for shopping cart handlers.
type CartHandler struct {
	uc     usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: logger,
	}
}

// identity builds the cart identity from the session cookie and, when the
// caller is signed in, the authenticated user ID.
func (h *CartHandler) identity(c echo.Context) usecase.CartIdentity {
	identity := usecase.CartIdentity{
		SessionCartID: middleware.GetSessionCartID(c),
	}
	if userID, ok := middleware.GetUserID(c); ok {
		identity.UserID = &userID
	}

	return identity
}

// GetCart returns the caller's cart.
func (h *CartHandler) GetCart(c echo.Context) error {
	cart, err := h.uc.GetCart(c.Request().Context(), h.identity(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "")
}

type cartItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
}

// AddItem adds one unit of a product to the cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	var input *cartItemRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	cart, err := h.uc.AddItem(c.Request().Context(), h.identity(c), input.ProductID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Item added to cart")
}

// RemoveItem removes one unit of a product from the cart.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	cart, err := h.uc.RemoveItem(c.Request().Context(), h.identity(c), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Item removed from cart")
}
