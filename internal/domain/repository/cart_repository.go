package repository

import (
	"context"
	"errors"

	"prostore/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCartNotFound is a domain-specific error returned when a cart is not found.
var ErrCartNotFound = errors.New("cart not found")

// CartRepository defines the standard operations for cart persistence.
type CartRepository interface {
	// FindByID retrieves a single cart by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error)

	// FindByUserID retrieves the cart owned by the given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// FindBySessionCartID retrieves the cart bound to the given session cart cookie.
	FindBySessionCartID(ctx context.Context, sessionCartID string) (*entity.Cart, error)

	// Create persists a new cart entity to the storage.
	Create(ctx context.Context, cart *entity.Cart) error

	// Update replaces the cart's items and totals.
	Update(ctx context.Context, cart *entity.Cart) error

	// AssignUser stamps the user ID onto the cart identified by sessionCartID,
	// adopting a guest cart on sign-in.
	AssignUser(ctx context.Context, sessionCartID string, userID uuid.UUID) error

	// DeleteByUserID removes any cart owned by the given user.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
