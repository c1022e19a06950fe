package usecase

import (
	"context"

	"prostore/internal/domain/entity"

	"github.com/google/uuid"
)

// CartIdentity names the cart a request operates on. SessionCartID always
// identifies the cart. UserID is set once the caller is signed in.
type CartIdentity struct {
	SessionCartID string
	UserID        *uuid.UUID
}

// CartUsecase defines the interface for shopping cart use cases
type CartUsecase interface {
	// GetCart retrieves the caller's cart, or nil when none exists yet
	GetCart(ctx context.Context, identity CartIdentity) (*entity.Cart, error)

	// AddItem adds one unit of a product to the cart, creating the cart on first use
	AddItem(ctx context.Context, identity CartIdentity, productID uuid.UUID) (*entity.Cart, error)

	// RemoveItem removes one unit of a product from the cart, dropping the line at zero
	RemoveItem(ctx context.Context, identity CartIdentity, productID uuid.UUID) (*entity.Cart, error)
}
