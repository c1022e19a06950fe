// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"prostore/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserListParams controls filtering and pagination for admin user listings.
type UserListParams struct {
	// Query filters by name, case-insensitive contains. Empty matches all.
	Query string
	Page  int
	Limit int
}

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// List returns a page of users ordered by newest first, with the total
	// count of users matching the filter.
	List(ctx context.Context, params UserListParams) ([]*entity.User, int64, error)

	// Delete removes a user by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
