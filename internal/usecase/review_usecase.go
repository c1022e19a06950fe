package usecase

import (
	"context"

	"prostore/internal/domain/entity"

	"github.com/google/uuid"
)

// ReviewInput carries the fields for creating or updating a review.
type ReviewInput struct {
	ProductID   uuid.UUID `json:"productId" validate:"required"`
	Rating      int       `json:"rating" validate:"required,min=1,max=5"`
	Title       string    `json:"title" validate:"required,min=3"`
	Description string    `json:"description" validate:"required,min=3"`
}

// ReviewUsecase defines the interface for product review use cases
type ReviewUsecase interface {
	// UpsertReview creates or replaces the user's review of a product and
	// refreshes the product's rating aggregate
	UpsertReview(ctx context.Context, userID uuid.UUID, input *ReviewInput) (*entity.Review, error)

	// ListProductReviews returns a product's reviews, newest first
	ListProductReviews(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)

	// GetMyReview retrieves the review the user wrote for a product, or nil
	GetMyReview(ctx context.Context, userID, productID uuid.UUID) (*entity.Review, error)
}
