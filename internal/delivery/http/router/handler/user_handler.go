// Package handler contains the HTTP handlers for the storefront API.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"prostore/internal/delivery/http/middleware"
	"prostore/internal/delivery/http/response"
	"prostore/internal/domain/entity"
	domainerrors "prostore/internal/domain/errors"
	"prostore/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// userView is the account shape returned to clients. It never carries the
// password hash.
type userView struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Role          string          `json:"role"`
	Address       *entity.Address `json:"address,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func toUserView(user *entity.User) *userView {
	return &userView{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Role:          user.Role,
		Address:       user.Address,
		PaymentMethod: user.PaymentMethod,
		CreatedAt:     user.CreatedAt,
	}
}

// authView bundles the signed-in account with its token pair.
type authView struct {
	User   *userView           `json:"user"`
	Tokens *usecase.AuthTokens `json:"tokens"`
}

// UserHandler holds dependencies for account-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles the sign-up request.
func (h *UserHandler) Register(c echo.Context) error {
	var input *usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	user, tokens, err := h.uc.Register(c.Request().Context(), input, middleware.GetSessionCartID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, authView{User: toUserView(user), Tokens: tokens}, "User registered successfully")
}

// Login handles the sign-in request.
func (h *UserHandler) Login(c echo.Context) error {
	var input *usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}
	input.SessionCartID = middleware.GetSessionCartID(c)

	user, tokens, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, authView{User: toUserView(user), Tokens: tokens}, "Login successful")
}

// GetProfile returns the signed-in user's account.
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	user, err := h.uc.GetUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "")
}

// UpdateProfile updates the signed-in user's name and email.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	var input *usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	user, err := h.uc.UpdateProfile(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "Profile updated successfully")
}

// UpdateShippingAddress stores the signed-in user's shipping address.
func (h *UserHandler) UpdateShippingAddress(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	var address *entity.Address
	if err := c.Bind(&address); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid address input")
	}
	if err := c.Validate(address); err != nil {
		return err
	}

	if err := h.uc.UpdateShippingAddress(c.Request().Context(), userID, address); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, address, "Shipping address updated successfully")
}

type updatePaymentMethodRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

// UpdatePaymentMethod stores the signed-in user's preferred payment method.
func (h *UserHandler) UpdatePaymentMethod(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	var input *updatePaymentMethodRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment method input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	if err := h.uc.UpdatePaymentMethod(c.Request().Context(), userID, input.PaymentMethod); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"paymentMethod": input.PaymentMethod}, "Payment method updated successfully")
}

// ListUsers returns a page of users for the admin view.
func (h *UserHandler) ListUsers(c echo.Context) error {
	page := parsePageParam(c)
	query := c.QueryParam("query")

	paged, err := h.uc.ListUsers(c.Request().Context(), query, page)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*userView, 0, len(paged.Data))
	for _, user := range paged.Data {
		views = append(views, toUserView(user))
	}

	return response.Success(c, http.StatusOK, usecase.Paged[*userView]{
		Data:       views,
		TotalPages: paged.TotalPages,
	}, "")
}

// UpdateUser modifies a user's name and role as an admin.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user ID")
	}

	var input *usecase.UpdateUserInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	user, err := h.uc.UpdateUser(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "User updated successfully")
}

// DeleteUser removes a user account as an admin.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user ID")
	}

	if err := h.uc.DeleteUser(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted successfully")
}
