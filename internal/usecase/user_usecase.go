package usecase

import (
	"context"

	"prostore/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterInput carries the sign-up form fields.
type RegisterInput struct {
	Name            string `json:"name" validate:"required,min=2"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// LoginInput carries the sign-in form fields.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	// SessionCartID adopts the guest cart into the signing-in account.
	SessionCartID string `json:"-"`
}

// AuthTokens holds the token pair issued on successful authentication.
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UpdateProfileInput carries the self-service profile fields.
type UpdateProfileInput struct {
	Name  string `json:"name" validate:"required,min=2"`
	Email string `json:"email" validate:"required,email"`
}

// UpdateUserInput carries the admin-editable user fields.
type UpdateUserInput struct {
	Name string `json:"name" validate:"required,min=2"`
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// UserUsecase defines the interface for account management use cases
type UserUsecase interface {
	// Register creates a new account and signs it in
	Register(ctx context.Context, input *RegisterInput, sessionCartID string) (*entity.User, *AuthTokens, error)

	// Login authenticates a user and adopts the session cart
	Login(ctx context.Context, input *LoginInput) (*entity.User, *AuthTokens, error)

	// GetUser retrieves a single user by ID
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// UpdateProfile updates the caller's own name and email
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)

	// UpdateShippingAddress stores the caller's shipping address
	UpdateShippingAddress(ctx context.Context, userID uuid.UUID, address *entity.Address) error

	// UpdatePaymentMethod stores the caller's preferred payment method
	UpdatePaymentMethod(ctx context.Context, userID uuid.UUID, method string) error

	// ListUsers returns a page of users for the admin view
	ListUsers(ctx context.Context, query string, page int) (*Paged[*entity.User], error)

	// UpdateUser modifies a user's name and role as an admin
	UpdateUser(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*entity.User, error)

	// DeleteUser removes a user account
	DeleteUser(ctx context.Context, id uuid.UUID) error
}
