package postgres

import (
	"context"
	"encoding/json"
	"time"

	"prostore/internal/domain/entity"
	domainerrors "prostore/internal/domain/errors"
	"prostore/internal/domain/repository"
	"prostore/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the domain's OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// FindByID retrieves a single order with its items by its unique ID.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		First(&orderM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM)
}

// Create persists a new order and its items.
// GORM inserts the associated items alongside the order row. Callers run this
// inside txManager.Execute so the cart reset commits with it.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM, err := fromOrderDomain(order)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("order references an unknown user or product")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt

	return nil
}

// MarkPaid sets the paid flag, timestamp and payment result on an order.
func (repo *orderRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time, result *entity.PaymentResult) error {
	encoded, err := json.Marshal(result)
	if err != nil {
		return errors.Wrap(err, "failed to encode payment result")
	}

	updated := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_paid":        true,
			"paid_at":        paidAt,
			"payment_result": encoded,
		})
	if updated.Error != nil {
		return domainerrors.NewDatabaseExecuteError(updated.Error, "failed to mark order paid")
	}
	if updated.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// UpdatePaymentResult stores the provider payment state on an unpaid order.
func (repo *orderRepository) UpdatePaymentResult(ctx context.Context, id uuid.UUID, result *entity.PaymentResult) error {
	encoded, err := json.Marshal(result)
	if err != nil {
		return errors.Wrap(err, "failed to encode payment result")
	}

	updated := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("payment_result", encoded)
	if updated.Error != nil {
		return domainerrors.NewDatabaseExecuteError(updated.Error, "failed to update payment result")
	}
	if updated.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// MarkDelivered sets the delivered flag and timestamp on an order.
func (repo *orderRepository) MarkDelivered(ctx context.Context, id uuid.UUID, deliveredAt time.Time) error {
	updated := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_delivered": true,
			"delivered_at": deliveredAt,
		})
	if updated.Error != nil {
		return domainerrors.NewDatabaseExecuteError(updated.Error, "failed to mark order delivered")
	}
	if updated.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// Delete removes an order and its items by ID.
func (repo *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.OrderItemModel{}, "order_id = ?", id).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete order items")
	}

	result := repo.db.WithContext(ctx).Delete(&model.OrderModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// ListByUser returns a page of the user's orders, newest first, with the total count.
func (repo *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID, params repository.OrderListParams) ([]*entity.Order, int64, error) {
	return repo.list(ctx, repo.db.WithContext(ctx).Where("user_id = ?", userID), params)
}

// List returns a page of all orders, newest first, with the total count.
func (repo *orderRepository) List(ctx context.Context, params repository.OrderListParams) ([]*entity.Order, int64, error) {
	query := repo.db.WithContext(ctx)
	if params.Query != "" {
		query = query.Where("user_name ILIKE ?", "%"+params.Query+"%")
	}

	return repo.list(ctx, query, params)
}

func (repo *orderRepository) list(_ context.Context, query *gorm.DB, params repository.OrderListParams) ([]*entity.Order, int64, error) {
	query = query.Model(&model.OrderModel{})

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count orders")
	}

	var models []*model.OrderModel
	err := query.
		Preload("Items").
		Order("created_at DESC").
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(models))
	for _, orderM := range models {
		order, err := toOrderDomain(orderM)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}

	return orders, count, nil
}

// Summary aggregates counts, total sales and monthly sales across the store.
func (repo *orderRepository) Summary(ctx context.Context, latestLimit int) (*repository.OrderSummary, error) {
	summary := &repository.OrderSummary{}
	db := repo.db.WithContext(ctx)

	if err := db.Model(&model.OrderModel{}).Count(&summary.OrdersCount).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count orders")
	}
	if err := db.Model(&model.UserModel{}).Count(&summary.UsersCount).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}
	if err := db.Model(&model.ProductModel{}).Count(&summary.ProductsCount).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count products")
	}

	err := db.Model(&model.OrderModel{}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&summary.TotalSales).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to sum sales")
	}

	err = db.Model(&model.OrderModel{}).
		Select("to_char(created_at, 'MM/YY') AS month, SUM(total_price) AS total_sales").
		Group("to_char(created_at, 'MM/YY')").
		Order("month DESC").
		Scan(&summary.SalesByMonth).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate monthly sales")
	}

	latest, _, err := repo.List(ctx, repository.OrderListParams{Page: 1, Limit: latestLimit})
	if err != nil {
		return nil, err
	}
	summary.LatestOrders = latest

	return summary, nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) (*entity.Order, error) {
	if data == nil {
		return nil, nil
	}

	var address entity.Address
	if len(data.ShippingAddress) > 0 {
		if err := json.Unmarshal(data.ShippingAddress, &address); err != nil {
			return nil, errors.Wrap(err, "failed to decode shipping address")
		}
	}

	var paymentResult *entity.PaymentResult
	if len(data.PaymentResult) > 0 {
		paymentResult = &entity.PaymentResult{}
		if err := json.Unmarshal(data.PaymentResult, paymentResult); err != nil {
			return nil, errors.Wrap(err, "failed to decode payment result")
		}
	}

	items := make([]entity.OrderItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, entity.OrderItem{
			OrderID:   itemM.OrderID,
			ProductID: itemM.ProductID,
			Name:      itemM.Name,
			Slug:      itemM.Slug,
			Image:     itemM.Image,
			Price:     itemM.Price,
			Qty:       itemM.Qty,
		})
	}

	return &entity.Order{
		ID:              data.ID,
		UserID:          data.UserID,
		UserName:        data.UserName,
		UserEmail:       data.UserEmail,
		ShippingAddress: address,
		PaymentMethod:   data.PaymentMethod,
		PaymentResult:   paymentResult,
		Items:           items,
		ItemsPrice:      data.ItemsPrice,
		ShippingPrice:   data.ShippingPrice,
		TaxPrice:        data.TaxPrice,
		TotalPrice:      data.TotalPrice,
		IsPaid:          data.IsPaid,
		PaidAt:          data.PaidAt,
		IsDelivered:     data.IsDelivered,
		DeliveredAt:     data.DeliveredAt,
		CreatedAt:       data.CreatedAt,
	}, nil
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) (*model.OrderModel, error) {
	if data == nil {
		return nil, nil
	}

	address, err := json.Marshal(data.ShippingAddress)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode shipping address")
	}

	var paymentResult []byte
	if data.PaymentResult != nil {
		encoded, err := json.Marshal(data.PaymentResult)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode payment result")
		}
		paymentResult = encoded
	}

	items := make([]*model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, &model.OrderItemModel{
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Slug:      item.Slug,
			Image:     item.Image,
			Price:     item.Price,
			Qty:       item.Qty,
		})
	}

	return &model.OrderModel{
		ID:              data.ID,
		UserID:          data.UserID,
		UserName:        data.UserName,
		UserEmail:       data.UserEmail,
		ShippingAddress: address,
		PaymentMethod:   data.PaymentMethod,
		PaymentResult:   paymentResult,
		Items:           items,
		ItemsPrice:      data.ItemsPrice,
		ShippingPrice:   data.ShippingPrice,
		TaxPrice:        data.TaxPrice,
		TotalPrice:      data.TotalPrice,
		IsPaid:          data.IsPaid,
		PaidAt:          data.PaidAt,
		IsDelivered:     data.IsDelivered,
		DeliveredAt:     data.DeliveredAt,
		CreatedAt:       data.CreatedAt,
	}, nil
}
