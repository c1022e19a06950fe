package impl

import (
	"context"
	"strings"
	"time"

	"prostore/config"
	"prostore/internal/domain/entity"
	domainerrors "prostore/internal/domain/errors"
	"prostore/internal/domain/repository"
	"prostore/internal/domain/service"
	"prostore/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type userService struct {
	txManager      repository.TransactionManager
	userRepo       repository.UserRepository
	cartRepo       repository.CartRepository
	passwordHasher service.PasswordHasher
	tokenService   service.TokenService
	config         *config.Config
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	UserRepo       repository.UserRepository
	CartRepo       repository.CartRepository
	PasswordHasher service.PasswordHasher
	TokenService   service.TokenService
	Config         *config.Config
}

// NewUserService creates a new user service instance
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:      params.TxManager,
		userRepo:       params.UserRepo,
		cartRepo:       params.CartRepo,
		passwordHasher: params.PasswordHasher,
		tokenService:   params.TokenService,
		config:         params.Config,
	}
}

// Register creates a new account and signs it in
func (s *userService) Register(ctx context.Context, input *usecase.RegisterInput, sessionCartID string) (*entity.User, *usecase.AuthTokens, error) {
	email := normalizeEmail(input.Email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, nil, errors.Wrap(err, "failed to find user by email")
	}
	if existing != nil {
		return nil, nil, domainerrors.ErrUserAlreadyExists
	}

	hash, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, nil, domainerrors.ErrPasswordHashFailed
	}

	user := &entity.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, errors.Wrap(err, "failed to create user")
	}

	if err := s.adoptSessionCart(ctx, user.ID, sessionCartID); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// Login authenticates a user and adopts the session cart
func (s *userService) Login(ctx context.Context, input *usecase.LoginInput) (*entity.User, *usecase.AuthTokens, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, domainerrors.ErrInvalidCredentials
		}

		return nil, nil, errors.Wrap(err, "failed to find user by email")
	}

	if !s.passwordHasher.Check(input.Password, user.PasswordHash) {
		return nil, nil, domainerrors.ErrInvalidCredentials
	}

	if err := s.adoptSessionCart(ctx, user.ID, input.SessionCartID); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// GetUser retrieves a single user by ID
func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// UpdateProfile updates the caller's own name and email
func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Email = normalizeEmail(input.Email)
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	return user, nil
}

// UpdateShippingAddress stores the caller's shipping address
func (s *userService) UpdateShippingAddress(ctx context.Context, userID uuid.UUID, address *entity.Address) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	user.Address = address
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to update user address")
	}

	return nil
}

// UpdatePaymentMethod stores the caller's preferred payment method
func (s *userService) UpdatePaymentMethod(ctx context.Context, userID uuid.UUID, method string) error {
	if !entity.IsValidPaymentMethod(method) {
		return domainerrors.ErrInvalidPaymentMethod
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	user.PaymentMethod = method
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to update payment method")
	}

	return nil
}

// ListUsers returns a page of users for the admin view
func (s *userService) ListUsers(ctx context.Context, query string, page int) (*usecase.Paged[*entity.User], error) {
	params := repository.UserListParams{
		Query: query,
		Page:  normalizePage(page),
		Limit: s.config.Catalog.PageSize,
	}

	users, count, err := s.userRepo.List(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return &usecase.Paged[*entity.User]{
		Data:       users,
		TotalPages: totalPages(count, params.Limit),
	}, nil
}

// UpdateUser modifies a user's name and role as an admin
func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, input *usecase.UpdateUserInput) (*entity.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Role = input.Role
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	return user, nil
}

// DeleteUser removes a user account
func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to delete user")
	}

	return nil
}

// adoptSessionCart moves the guest cart onto the account signing in. Any cart
// the account previously owned is replaced by the session cart.
func (s *userService) adoptSessionCart(ctx context.Context, userID uuid.UUID, sessionCartID string) error {
	if sessionCartID == "" {
		return nil
	}

	_, err := s.cartRepo.FindBySessionCartID(ctx, sessionCartID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to find session cart")
	}

	err = s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		cartRepo := factory.NewCartRepository()

		if err := cartRepo.DeleteByUserID(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to delete previous cart")
		}

		if err := cartRepo.AssignUser(ctx, sessionCartID, userID); err != nil {
			return errors.Wrap(err, "failed to assign cart to user")
		}

		return nil
	})

	return err
}

func (s *userService) issueTokens(user *entity.User) (*usecase.AuthTokens, error) {
	accessToken, refreshToken, err := s.tokenService.GenerateTokens(user.ID, []string{user.Role})
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	return &usecase.AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
