package impl

import (
	"context"
	"time"

	"prostore/internal/domain/entity"
	domainerrors "prostore/internal/domain/errors"
	"prostore/internal/domain/repository"
	"prostore/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type reviewService struct {
	txManager  repository.TransactionManager
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	ReviewRepo repository.ReviewRepository
	UserRepo   repository.UserRepository
}

// NewReviewService creates a new review service instance
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		txManager:  params.TxManager,
		reviewRepo: params.ReviewRepo,
		userRepo:   params.UserRepo,
	}
}

// UpsertReview creates or replaces the user's review of a product and
// refreshes the product's rating aggregate
func (s *reviewService) UpsertReview(ctx context.Context, userID uuid.UUID, input *usecase.ReviewInput) (*entity.Review, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	var review *entity.Review

	// The review write and the rating aggregate on the product must commit
	// together, otherwise concurrent reviews leave a stale average.
	err = s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		productRepo := factory.NewProductRepository()
		reviewRepo := factory.NewReviewRepository()

		product, err := productRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to find product")
		}

		existing, err := reviewRepo.FindByUserAndProduct(ctx, userID, product.ID)
		if err != nil && !errors.Is(err, repository.ErrReviewNotFound) {
			return errors.Wrap(err, "failed to find review")
		}

		if existing != nil {
			existing.Rating = input.Rating
			existing.Title = input.Title
			existing.Description = input.Description
			existing.UpdatedAt = time.Now()

			if err := reviewRepo.Update(ctx, existing); err != nil {
				return errors.Wrap(err, "failed to update review")
			}
			review = existing
		} else {
			review = &entity.Review{
				ID:          uuid.New(),
				UserID:      userID,
				UserName:    user.Name,
				ProductID:   product.ID,
				Rating:      input.Rating,
				Title:       input.Title,
				Description: input.Description,
				CreatedAt:   time.Now(),
				UpdatedAt:   time.Now(),
			}

			if err := reviewRepo.Create(ctx, review); err != nil {
				return errors.Wrap(err, "failed to create review")
			}
		}

		aggregate, err := reviewRepo.AggregateByProduct(ctx, product.ID)
		if err != nil {
			return errors.Wrap(err, "failed to aggregate reviews")
		}

		if err := productRepo.UpdateRating(ctx, product.ID, aggregate.Average, aggregate.NumReviews); err != nil {
			return errors.Wrap(err, "failed to update product rating")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

// ListProductReviews returns a product's reviews, newest first
func (s *reviewService) ListProductReviews(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	reviews, err := s.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews by product")
	}

	return reviews, nil
}

// GetMyReview retrieves the review the user wrote for a product, or nil
func (s *reviewService) GetMyReview(ctx context.Context, userID, productID uuid.UUID) (*entity.Review, error) {
	review, err := s.reviewRepo.FindByUserAndProduct(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find review")
	}

	return review, nil
}
