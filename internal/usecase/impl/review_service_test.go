package impl

import (
	"context"
	"testing"

	"prostore/internal/domain/entity"
	domainerrors "prostore/internal/domain/errors"
	"prostore/internal/domain/repository"
	mockRepo "prostore/internal/mocks/repository"
	"prostore/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reviewServiceFixture struct {
	svc         usecase.ReviewUsecase
	reviewRepo  *mockRepo.MockReviewRepository
	userRepo    *mockRepo.MockUserRepository
	productRepo *mockRepo.MockProductRepository
}

func newReviewServiceForTest(t *testing.T) *reviewServiceFixture {
	f := &reviewServiceFixture{
		reviewRepo:  mockRepo.NewMockReviewRepository(t),
		userRepo:    mockRepo.NewMockUserRepository(t),
		productRepo: mockRepo.NewMockProductRepository(t),
	}

	txManager := &mockRepo.StubTransactionManager{
		Factory: &mockRepo.StubRepositoryFactory{
			ReviewRepo:  f.reviewRepo,
			UserRepo:    f.userRepo,
			ProductRepo: f.productRepo,
		},
	}

	f.svc = NewReviewService(ReviewServiceParams{
		TxManager:  txManager,
		ReviewRepo: f.reviewRepo,
		UserRepo:   f.userRepo,
	})

	return f
}

func TestReviewService_UpsertReview_CreatesAndAggregates(t *testing.T) {
	f := newReviewServiceForTest(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	f.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Name: "Jane Doe"}, nil)
	f.productRepo.On("FindByID", ctx, productID).
		Return(&entity.Product{ID: productID}, nil)
	f.reviewRepo.On("FindByUserAndProduct", ctx, userID, productID).
		Return(nil, repository.ErrReviewNotFound)
	f.reviewRepo.On("Create", ctx, mock.MatchedBy(func(r *entity.Review) bool {
		return r.UserID == userID && r.ProductID == productID && r.Rating == 4 && r.UserName == "Jane Doe"
	})).Return(nil)
	f.reviewRepo.On("AggregateByProduct", ctx, productID).
		Return(&repository.RatingAggregate{Average: "4.00", NumReviews: 1}, nil)
	f.productRepo.On("UpdateRating", ctx, productID, "4.00", 1).Return(nil)

	review, err := f.svc.UpsertReview(ctx, userID, &usecase.ReviewInput{
		ProductID:   productID,
		Rating:      4,
		Title:       "Solid",
		Description: "Fits well and arrived quickly.",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
}

func TestReviewService_UpsertReview_ReplacesExisting(t *testing.T) {
	f := newReviewServiceForTest(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	existing := &entity.Review{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Rating:    2,
		Title:     "Meh",
	}

	f.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Name: "Jane Doe"}, nil)
	f.productRepo.On("FindByID", ctx, productID).
		Return(&entity.Product{ID: productID}, nil)
	f.reviewRepo.On("FindByUserAndProduct", ctx, userID, productID).
		Return(existing, nil)
	f.reviewRepo.On("Update", ctx, mock.MatchedBy(func(r *entity.Review) bool {
		return r.ID == existing.ID && r.Rating == 5 && r.Title == "Changed my mind"
	})).Return(nil)
	f.reviewRepo.On("AggregateByProduct", ctx, productID).
		Return(&repository.RatingAggregate{Average: "5.00", NumReviews: 1}, nil)
	f.productRepo.On("UpdateRating", ctx, productID, "5.00", 1).Return(nil)

	review, err := f.svc.UpsertReview(ctx, userID, &usecase.ReviewInput{
		ProductID:   productID,
		Rating:      5,
		Title:       "Changed my mind",
		Description: "Grew on me after a week.",
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, review.ID)
	f.reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_UpsertReview_UnknownProduct(t *testing.T) {
	f := newReviewServiceForTest(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	f.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID}, nil)
	f.productRepo.On("FindByID", ctx, productID).
		Return(nil, repository.ErrProductNotFound)

	_, err := f.svc.UpsertReview(ctx, userID, &usecase.ReviewInput{
		ProductID:   productID,
		Rating:      4,
		Title:       "Solid",
		Description: "Fits well.",
	})
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestReviewService_GetMyReview_NoneYet(t *testing.T) {
	f := newReviewServiceForTest(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	f.reviewRepo.On("FindByUserAndProduct", ctx, userID, productID).
		Return(nil, repository.ErrReviewNotFound)

	review, err := f.svc.GetMyReview(ctx, userID, productID)
	require.NoError(t, err)
	assert.Nil(t, review)
}
