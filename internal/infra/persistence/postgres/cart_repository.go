package postgres

import (
	"context"
	"encoding/json"

	"prostore/internal/domain/entity"
	domainerrors "prostore/internal/domain/errors"
	"prostore/internal/domain/repository"
	"prostore/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// cartRepository implements the domain's CartRepository interface using GORM.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

// FindByID retrieves a single cart by its unique ID.
func (repo *cartRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByUserID retrieves the cart owned by the given user.
func (repo *cartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	return repo.findOne(ctx, "user_id = ?", userID)
}

// FindBySessionCartID retrieves the cart bound to the given session cart cookie.
func (repo *cartRepository) FindBySessionCartID(ctx context.Context, sessionCartID string) (*entity.Cart, error) {
	return repo.findOne(ctx, "session_cart_id = ?", sessionCartID)
}

func (repo *cartRepository) findOne(ctx context.Context, cond string, arg any) (*entity.Cart, error) {
	var cartM model.CartModel
	if err := repo.db.WithContext(ctx).First(&cartM, cond, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}

	return toCartDomain(&cartM)
}

// Create persists a new cart entity to the database.
func (repo *cartRepository) Create(ctx context.Context, cart *entity.Cart) error {
	cartM, err := fromCartDomain(cart)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(cartM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create cart")
	}

	cart.ID = cartM.ID
	cart.CreatedAt = cartM.CreatedAt
	cart.UpdatedAt = cartM.UpdatedAt

	return nil
}

// Update replaces the cart's items and totals.
func (repo *cartRepository) Update(ctx context.Context, cart *entity.Cart) error {
	cartM, err := fromCartDomain(cart)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Save(cartM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update cart")
	}

	cart.UpdatedAt = cartM.UpdatedAt

	return nil
}

// AssignUser stamps the user ID onto the cart identified by sessionCartID,
// adopting a guest cart on sign-in.
func (repo *cartRepository) AssignUser(ctx context.Context, sessionCartID string, userID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CartModel{}).
		Where("session_cart_id = ?", sessionCartID).
		Update("user_id", userID)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to assign cart to user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartNotFound
	}

	return nil
}

// DeleteByUserID removes any cart owned by the given user.
func (repo *cartRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.CartModel{}, "user_id = ?", userID).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete cart by user")
	}

	return nil
}

// --- Mapper Functions ---

// toCartDomain converts a GORM CartModel to a domain Cart entity.
func toCartDomain(data *model.CartModel) (*entity.Cart, error) {
	if data == nil {
		return nil, nil
	}

	var items []entity.CartItem
	if len(data.Items) > 0 {
		if err := json.Unmarshal(data.Items, &items); err != nil {
			return nil, errors.Wrap(err, "failed to decode cart items")
		}
	}

	return &entity.Cart{
		ID:            data.ID,
		UserID:        data.UserID,
		SessionCartID: data.SessionCartID,
		Items:         items,
		ItemsPrice:    data.ItemsPrice,
		ShippingPrice: data.ShippingPrice,
		TaxPrice:      data.TaxPrice,
		TotalPrice:    data.TotalPrice,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}, nil
}

// fromCartDomain converts a domain Cart entity to a GORM CartModel.
func fromCartDomain(data *entity.Cart) (*model.CartModel, error) {
	if data == nil {
		return nil, nil
	}

	items, err := json.Marshal(data.Items)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode cart items")
	}

	return &model.CartModel{
		ID:            data.ID,
		UserID:        data.UserID,
		SessionCartID: data.SessionCartID,
		Items:         items,
		ItemsPrice:    data.ItemsPrice,
		ShippingPrice: data.ShippingPrice,
		TaxPrice:      data.TaxPrice,
		TotalPrice:    data.TotalPrice,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}, nil
}
