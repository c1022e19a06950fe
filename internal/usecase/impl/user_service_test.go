package impl

import (
	"context"
	"testing"

	"prostore/config"
	"prostore/internal/domain/entity"
	domainerrors "prostore/internal/domain/errors"
	"prostore/internal/domain/repository"
	mockRepo "prostore/internal/mocks/repository"
	mockSvc "prostore/internal/mocks/service"
	"prostore/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userServiceFixture struct {
	svc      usecase.UserUsecase
	userRepo *mockRepo.MockUserRepository
	cartRepo *mockRepo.MockCartRepository
	hasher   *mockSvc.MockPasswordHasher
	tokens   *mockSvc.MockTokenService
}

func newUserServiceForTest(t *testing.T) *userServiceFixture {
	f := &userServiceFixture{
		userRepo: mockRepo.NewMockUserRepository(t),
		cartRepo: mockRepo.NewMockCartRepository(t),
		hasher:   mockSvc.NewMockPasswordHasher(t),
		tokens:   mockSvc.NewMockTokenService(t),
	}

	txManager := &mockRepo.StubTransactionManager{
		Factory: &mockRepo.StubRepositoryFactory{
			UserRepo: f.userRepo,
			CartRepo: f.cartRepo,
		},
	}

	f.svc = NewUserService(UserServiceParams{
		TxManager:      txManager,
		UserRepo:       f.userRepo,
		CartRepo:       f.cartRepo,
		PasswordHasher: f.hasher,
		TokenService:   f.tokens,
		Config: &config.Config{
			Catalog: &config.CatalogConfig{PageSize: 10},
		},
	})

	return f
}

func TestUserService_Register_CreatesAccountAndAdoptsCart(t *testing.T) {
	f := newUserServiceForTest(t)
	ctx := context.Background()

	f.userRepo.On("FindByEmail", ctx, "jane@example.com").
		Return(nil, repository.ErrUserNotFound)
	f.hasher.On("Hash", "secret123").Return("hashed", nil)
	f.userRepo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "jane@example.com" && u.Role == entity.RoleUser && u.PasswordHash == "hashed"
	})).Return(nil)
	f.cartRepo.On("FindBySessionCartID", ctx, "session-1").
		Return(&entity.Cart{ID: uuid.New(), SessionCartID: "session-1"}, nil)
	f.cartRepo.On("DeleteByUserID", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil)
	f.cartRepo.On("AssignUser", ctx, "session-1", mock.AnythingOfType("uuid.UUID")).Return(nil)
	f.tokens.On("GenerateTokens", mock.AnythingOfType("uuid.UUID"), []string{entity.RoleUser}).
		Return("access", "refresh", nil)

	user, tokens, err := f.svc.Register(ctx, &usecase.RegisterInput{
		Name:            "Jane Doe",
		Email:           "Jane@Example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "access", tokens.AccessToken)
	assert.Equal(t, "refresh", tokens.RefreshToken)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	f := newUserServiceForTest(t)
	ctx := context.Background()

	f.userRepo.On("FindByEmail", ctx, "jane@example.com").
		Return(&entity.User{ID: uuid.New(), Email: "jane@example.com"}, nil)

	_, _, err := f.svc.Register(ctx, &usecase.RegisterInput{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "secret123",
	}, "")
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserService_Login_Succeeds(t *testing.T) {
	f := newUserServiceForTest(t)
	ctx := context.Background()
	userID := uuid.New()

	f.userRepo.On("FindByEmail", ctx, "jane@example.com").
		Return(&entity.User{ID: userID, Email: "jane@example.com", PasswordHash: "hashed", Role: entity.RoleUser}, nil)
	f.hasher.On("Check", "secret123", "hashed").Return(true)
	f.cartRepo.On("FindBySessionCartID", ctx, "session-1").
		Return(&entity.Cart{ID: uuid.New(), SessionCartID: "session-1"}, nil)
	f.cartRepo.On("DeleteByUserID", ctx, userID).Return(nil)
	f.cartRepo.On("AssignUser", ctx, "session-1", userID).Return(nil)
	f.tokens.On("GenerateTokens", userID, []string{entity.RoleUser}).
		Return("access", "refresh", nil)

	user, tokens, err := f.svc.Login(ctx, &usecase.LoginInput{
		Email:         "jane@example.com",
		Password:      "secret123",
		SessionCartID: "session-1",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	f := newUserServiceForTest(t)
	ctx := context.Background()

	f.userRepo.On("FindByEmail", ctx, "jane@example.com").
		Return(&entity.User{ID: uuid.New(), PasswordHash: "hashed"}, nil)
	f.hasher.On("Check", "wrong", "hashed").Return(false)

	_, _, err := f.svc.Login(ctx, &usecase.LoginInput{Email: "jane@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownEmailMapsToInvalidCredentials(t *testing.T) {
	f := newUserServiceForTest(t)
	ctx := context.Background()

	f.userRepo.On("FindByEmail", ctx, "jane@example.com").
		Return(nil, repository.ErrUserNotFound)

	_, _, err := f.svc.Login(ctx, &usecase.LoginInput{Email: "jane@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_NoSessionCartSkipsAdoption(t *testing.T) {
	f := newUserServiceForTest(t)
	ctx := context.Background()
	userID := uuid.New()

	f.userRepo.On("FindByEmail", ctx, "jane@example.com").
		Return(&entity.User{ID: userID, PasswordHash: "hashed", Role: entity.RoleUser}, nil)
	f.hasher.On("Check", "secret123", "hashed").Return(true)
	f.tokens.On("GenerateTokens", userID, []string{entity.RoleUser}).
		Return("access", "refresh", nil)

	_, _, err := f.svc.Login(ctx, &usecase.LoginInput{Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)
	f.cartRepo.AssertNotCalled(t, "AssignUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_UpdatePaymentMethod_RejectsUnknownMethod(t *testing.T) {
	f := newUserServiceForTest(t)
	ctx := context.Background()

	err := f.svc.UpdatePaymentMethod(ctx, uuid.New(), "Bitcoin")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidPaymentMethod)
}

func TestUserService_UpdatePaymentMethod_StoresMethod(t *testing.T) {
	f := newUserServiceForTest(t)
	ctx := context.Background()
	userID := uuid.New()

	f.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID}, nil)
	f.userRepo.On("Update", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.PaymentMethod == entity.PaymentMethodStripe
	})).Return(nil)

	err := f.svc.UpdatePaymentMethod(ctx, userID, entity.PaymentMethodStripe)
	require.NoError(t, err)
}

func TestUserService_ListUsers_ComputesTotalPages(t *testing.T) {
	f := newUserServiceForTest(t)
	ctx := context.Background()

	f.userRepo.On("List", ctx, repository.UserListParams{Query: "jane", Page: 2, Limit: 10}).
		Return([]*entity.User{{ID: uuid.New()}}, int64(11), nil)

	page, err := f.svc.ListUsers(ctx, "jane", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalPages)
}
