package repository

import (
	"context"
	"errors"

	"prostore/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrReviewNotFound is a domain-specific error returned when a review is not found.
var ErrReviewNotFound = errors.New("review not found")

// RatingAggregate is the average rating and review count for one product.
type RatingAggregate struct {
	// Average rating in string form to preserve scale, e.g. "4.33".
	Average    string
	NumReviews int
}

// ReviewRepository defines the standard operations for review persistence.
type ReviewRepository interface {
	// FindByID retrieves a single review by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)

	// FindByUserAndProduct retrieves the review the user wrote for the product.
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.Review, error)

	// ListByProduct returns the product's reviews, newest first.
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)

	// Create persists a new review entity to the storage.
	Create(ctx context.Context, review *entity.Review) error

	// Update modifies an existing review entity in the storage.
	Update(ctx context.Context, review *entity.Review) error

	// AggregateByProduct computes the average rating and count across the
	// product's reviews.
	AggregateByProduct(ctx context.Context, productID uuid.UUID) (*RatingAggregate, error)
}
