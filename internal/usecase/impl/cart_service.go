// Package impl provides the concrete implementations of the use case interfaces.
package impl

import (
	"context"
	"time"

	"prostore/internal/domain/entity"
	domainerrors "prostore/internal/domain/errors"
	"prostore/internal/domain/pricing"
	"prostore/internal/domain/repository"
	"prostore/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
}

// NewCartService creates a new cart service instance
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
	}
}

// GetCart retrieves the caller's cart, or nil when none exists yet
func (s *cartService) GetCart(ctx context.Context, identity usecase.CartIdentity) (*entity.Cart, error) {
	cart, err := s.findCart(ctx, identity)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}

	return cart, nil
}

// AddItem adds one unit of a product to the cart, creating the cart on first use
func (s *cartService) AddItem(ctx context.Context, identity usecase.CartIdentity, productID uuid.UUID) (*entity.Cart, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	cart, err := s.findCart(ctx, identity)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		return nil, errors.Wrap(err, "failed to find cart")
	}

	if cart == nil {
		return s.createCartWithItem(ctx, identity, product)
	}

	if idx := cart.FindItem(productID); idx >= 0 {
		// One more unit of an existing line.
		if !product.InStock(cart.Items[idx].Qty + 1) {
			return nil, domainerrors.ErrOutOfStock
		}
		cart.Items[idx].Qty++
	} else {
		if !product.InStock(1) {
			return nil, domainerrors.ErrOutOfStock
		}
		cart.Items = append(cart.Items, newCartItem(product))
	}

	applyTotals(cart)

	if err := s.cartRepo.Update(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to update cart")
	}

	return cart, nil
}

// RemoveItem removes one unit of a product from the cart, dropping the line at zero
func (s *cartService) RemoveItem(ctx context.Context, identity usecase.CartIdentity, productID uuid.UUID) (*entity.Cart, error) {
	cart, err := s.findCart(ctx, identity)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, domainerrors.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}

	idx := cart.FindItem(productID)
	if idx < 0 {
		return nil, domainerrors.ErrItemNotFound
	}

	if cart.Items[idx].Qty <= 1 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	} else {
		cart.Items[idx].Qty--
	}

	applyTotals(cart)

	if err := s.cartRepo.Update(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to update cart")
	}

	return cart, nil
}

// findCart resolves the cart by user when signed in, falling back to the
// session cart cookie.
func (s *cartService) findCart(ctx context.Context, identity usecase.CartIdentity) (*entity.Cart, error) {
	if identity.UserID != nil {
		return s.cartRepo.FindByUserID(ctx, *identity.UserID)
	}

	return s.cartRepo.FindBySessionCartID(ctx, identity.SessionCartID)
}

func (s *cartService) createCartWithItem(ctx context.Context, identity usecase.CartIdentity, product *entity.Product) (*entity.Cart, error) {
	if !product.InStock(1) {
		return nil, domainerrors.ErrOutOfStock
	}

	cart := &entity.Cart{
		ID:            uuid.New(),
		UserID:        identity.UserID,
		SessionCartID: identity.SessionCartID,
		Items:         []entity.CartItem{newCartItem(product)},
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	applyTotals(cart)

	if err := s.cartRepo.Create(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to create cart")
	}

	return cart, nil
}

func newCartItem(product *entity.Product) entity.CartItem {
	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}

	return entity.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Slug:      product.Slug,
		Image:     image,
		Price:     product.Price,
		Qty:       1,
	}
}

func applyTotals(cart *entity.Cart) {
	totals := pricing.Calculate(cart.Items)
	cart.ItemsPrice = totals.ItemsPrice
	cart.ShippingPrice = totals.ShippingPrice
	cart.TaxPrice = totals.TaxPrice
	cart.TotalPrice = totals.TotalPrice
	cart.UpdatedAt = time.Now()
}
