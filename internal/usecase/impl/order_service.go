package impl

import (
	"context"
	"log/slog"
	"time"

	"prostore/config"
	deliverycontext "prostore/internal/delivery/context"
	"prostore/internal/domain/entity"
	domainerrors "prostore/internal/domain/errors"
	"prostore/internal/domain/repository"
	"prostore/internal/domain/service"
	"prostore/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const paypalCaptureCompleted = "COMPLETED"

type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	userRepo  repository.UserRepository
	paypal    service.PayPalGateway
	publisher service.EventPublisher
	config    *config.Config
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	CartRepo  repository.CartRepository
	UserRepo  repository.UserRepository
	PayPal    service.PayPalGateway
	Publisher service.EventPublisher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewOrderService creates a new order service instance
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		cartRepo:  params.CartRepo,
		userRepo:  params.UserRepo,
		paypal:    params.PayPal,
		publisher: params.Publisher,
		config:    params.Config,
		logger:    params.Logger,
	}
}

// CreateOrder places an order from the user's current cart, freezing prices
// and the shipping address, and clears the cart
func (s *orderService) CreateOrder(ctx context.Context, userID uuid.UUID) (*entity.Order, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		return nil, errors.Wrap(err, "failed to find cart")
	}

	// Checkout preconditions, each with a redirect hint for the client.
	if cart == nil || cart.IsEmpty() {
		return nil, domainerrors.ErrCartEmpty.WithRedirect(usecase.RedirectCart)
	}
	if user.Address == nil {
		return nil, domainerrors.ErrNoShippingAddress.WithRedirect(usecase.RedirectShippingAddress)
	}
	if user.PaymentMethod == "" {
		return nil, domainerrors.ErrNoPaymentMethod.WithRedirect(usecase.RedirectPaymentMethod)
	}

	order := &entity.Order{
		ID:              uuid.New(),
		UserID:          userID,
		UserName:        user.Name,
		UserEmail:       user.Email,
		ShippingAddress: *user.Address,
		PaymentMethod:   user.PaymentMethod,
		ItemsPrice:      cart.ItemsPrice,
		ShippingPrice:   cart.ShippingPrice,
		TaxPrice:        cart.TaxPrice,
		TotalPrice:      cart.TotalPrice,
		CreatedAt:       time.Now(),
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, entity.OrderItem{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Slug:      item.Slug,
			Image:     item.Image,
			Price:     item.Price,
			Qty:       item.Qty,
		})
	}

	// Order creation and cart reset must commit together.
	err = s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.NewOrderRepository().Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		// The emptied cart carries no cached totals, not even the
		// base shipping fee.
		cart.Items = nil
		cart.ItemsPrice = decimal.Zero
		cart.ShippingPrice = decimal.Zero
		cart.TaxPrice = decimal.Zero
		cart.TotalPrice = decimal.Zero

		if err := factory.NewCartRepository().Update(ctx, cart); err != nil {
			return errors.Wrap(err, "failed to reset cart")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// GetOrder retrieves a single order with its items
func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// CreatePayPalOrder opens a provider-side PayPal order and records its ID
func (s *orderService) CreatePayPalOrder(ctx context.Context, orderID uuid.UUID) (string, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order.IsPaid {
		return "", domainerrors.ErrOrderAlreadyPaid
	}

	providerOrder, err := s.paypal.CreateOrder(ctx, order.TotalPrice.StringFixed(2))
	if err != nil {
		return "", errors.Wrap(err, "failed to create paypal order")
	}

	result := &entity.PaymentResult{ID: providerOrder.ID}
	if err := s.orderRepo.UpdatePaymentResult(ctx, orderID, result); err != nil {
		return "", errors.Wrap(err, "failed to store paypal order id")
	}

	return providerOrder.ID, nil
}

// ApprovePayPalOrder captures the approved PayPal order and marks the order paid
func (s *orderService) ApprovePayPalOrder(ctx context.Context, orderID uuid.UUID, providerOrderID string) error {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	capture, err := s.paypal.CaptureOrder(ctx, providerOrderID)
	if err != nil {
		return errors.Wrap(err, "failed to capture paypal order")
	}

	// The capture must match the provider order recorded at creation time.
	if order.PaymentResult == nil ||
		capture.ID != order.PaymentResult.ID ||
		capture.Status != paypalCaptureCompleted {
		return domainerrors.ErrPaymentMismatch
	}

	return s.MarkOrderPaid(ctx, orderID, &usecase.PaymentResultInput{
		ID:           capture.ID,
		Status:       capture.Status,
		EmailAddress: capture.EmailAddress,
		PricePaid:    capture.AmountValue,
	})
}

// MarkOrderPaid transitions an order to paid, decrementing stock once.
// Marking an already paid order is a no-op.
func (s *orderService) MarkOrderPaid(ctx context.Context, orderID uuid.UUID, result *usecase.PaymentResultInput) error {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.IsPaid {
		return nil
	}

	paidAt := time.Now()

	err = s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		productRepo := factory.NewProductRepository()
		for _, item := range order.Items {
			if err := productRepo.DecrementStock(ctx, item.ProductID, item.Qty); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return domainerrors.ErrOutOfStock.WithDetails(item.Name)
				}

				return errors.Wrap(err, "failed to decrement stock")
			}
		}

		if err := factory.NewOrderRepository().MarkPaid(ctx, orderID, paidAt, result.ToPaymentResult()); err != nil {
			return errors.Wrap(err, "failed to mark order paid")
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.publishOrderPaid(ctx, order, paidAt)

	return nil
}

// MarkOrderDelivered transitions a paid order to delivered
func (s *orderService) MarkOrderDelivered(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.IsPaid {
		return domainerrors.ErrOrderNotPaid
	}
	if order.IsDelivered {
		return domainerrors.ErrOrderAlreadyDelivered
	}

	if err := s.orderRepo.MarkDelivered(ctx, orderID, time.Now()); err != nil {
		return errors.Wrap(err, "failed to mark order delivered")
	}

	return nil
}

// DeleteOrder removes an order
func (s *orderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domainerrors.ErrOrderNotFound
		}

		return errors.Wrap(err, "failed to delete order")
	}

	return nil
}

// ListMyOrders returns a page of the user's own orders, newest first
func (s *orderService) ListMyOrders(ctx context.Context, userID uuid.UUID, page int) (*usecase.Paged[*entity.Order], error) {
	params := repository.OrderListParams{
		Page:  normalizePage(page),
		Limit: s.config.Catalog.PageSize,
	}

	orders, count, err := s.orderRepo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders by user")
	}

	return &usecase.Paged[*entity.Order]{
		Data:       orders,
		TotalPages: totalPages(count, params.Limit),
	}, nil
}

// ListOrders returns a page of all orders for the admin view
func (s *orderService) ListOrders(ctx context.Context, query string, page int) (*usecase.Paged[*entity.Order], error) {
	params := repository.OrderListParams{
		Query: query,
		Page:  normalizePage(page),
		Limit: s.config.Catalog.PageSize,
	}

	orders, count, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return &usecase.Paged[*entity.Order]{
		Data:       orders,
		TotalPages: totalPages(count, params.Limit),
	}, nil
}

// GetOrderSummary aggregates storefront-wide figures for the admin overview
func (s *orderService) GetOrderSummary(ctx context.Context) (*repository.OrderSummary, error) {
	summary, err := s.orderRepo.Summary(ctx, s.config.Catalog.LatestLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate order summary")
	}

	return summary, nil
}

// publishOrderPaid hands the paid order to the mail worker. Publish failures
// are logged rather than surfaced, the payment itself already committed.
func (s *orderService) publishOrderPaid(ctx context.Context, order *entity.Order, paidAt time.Time) {
	event := &service.OrderPaidEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		OrderID:   order.ID.String(),
		UserEmail: order.UserEmail,
		UserName:  order.UserName,
		Total:     order.TotalPrice.StringFixed(2),
		PaidAt:    paidAt.Format(time.RFC3339),
	}

	if err := s.publisher.PublishOrderPaidEvent(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order paid event",
			slog.String("order_id", event.OrderID),
			slog.Any("error", err))
	}
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}

	return page
}

func totalPages(count int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}

	return (count + int64(limit) - 1) / int64(limit)
}
