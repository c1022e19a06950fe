package postgres

import (
	"context"
	"encoding/json"
	"strings"

	"prostore/internal/domain/entity"
	domainerrors "prostore/internal/domain/errors"
	"prostore/internal/domain/repository"
	"prostore/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// matchAll is the filter value meaning "no filter" for catalog searches.
const matchAll = "all"

// productRepository implements the domain's ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// FindByID retrieves a single product by its unique ID.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.db.WithContext(ctx).First(&productM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM)
}

// FindBySlug retrieves a single product by its URL slug.
func (repo *productRepository) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.db.WithContext(ctx).First(&productM, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by slug")
	}

	return toProductDomain(&productM)
}

// Create persists a new product entity to the database.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM, err := fromProductDomain(product)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrSlugAlreadyExists.WrapMessage("slug already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Update modifies an existing product entity in the database.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM, err := fromProductDomain(product)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Save(productM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrSlugAlreadyExists.WrapMessage("slug already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update product")
	}

	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Delete removes a product by ID. Returns ErrProductNotFound when no row matched.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// Search returns a page of products matching the filters, with the total count
// of products matching the same filters.
func (repo *productRepository) Search(ctx context.Context, params repository.ProductSearchParams) ([]*entity.Product, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.ProductModel{})

	if filterSet(params.Query) {
		query = query.Where("name ILIKE ?", "%"+params.Query+"%")
	}
	if filterSet(params.Category) {
		query = query.Where("category = ?", params.Category)
	}
	if filterSet(params.Price) {
		// Inclusive "min-max" range.
		if bounds := strings.SplitN(params.Price, "-", 2); len(bounds) == 2 {
			query = query.Where("price BETWEEN ? AND ?", bounds[0], bounds[1])
		}
	}
	if filterSet(params.Rating) {
		query = query.Where("rating >= ?", params.Rating)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count products")
	}

	switch params.Sort {
	case repository.SortLowest:
		query = query.Order("price ASC")
	case repository.SortHighest:
		query = query.Order("price DESC")
	case repository.SortRating:
		query = query.Order("rating DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var models []*model.ProductModel
	err := query.
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to search products")
	}

	products, err := toProductDomains(models)
	if err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

// FindLatest returns the newest products up to limit.
func (repo *productRepository) FindLatest(ctx context.Context, limit int) ([]*entity.Product, error) {
	var models []*model.ProductModel
	err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find latest products")
	}

	return toProductDomains(models)
}

// FindFeatured returns featured products, newest first, up to limit.
func (repo *productRepository) FindFeatured(ctx context.Context, limit int) ([]*entity.Product, error) {
	var models []*model.ProductModel
	err := repo.db.WithContext(ctx).
		Where("is_featured = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find featured products")
	}

	return toProductDomains(models)
}

// ListCategories returns all distinct categories with product counts.
func (repo *productRepository) ListCategories(ctx context.Context) ([]repository.CategoryCount, error) {
	var categories []repository.CategoryCount
	err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("category ASC").
		Scan(&categories).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// DecrementStock atomically subtracts qty from the product's stock.
// The guard in the WHERE clause keeps concurrent payments from driving stock negative.
func (repo *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to decrement stock")
	}
	if result.RowsAffected == 0 {
		return repository.ErrInsufficientStock
	}

	return nil
}

// UpdateRating sets the aggregated rating and review count of a product.
func (repo *productRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating string, numReviews int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"rating":      rating,
			"num_reviews": numReviews,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product rating")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func filterSet(value string) bool {
	return value != "" && value != matchAll
}

// --- Mapper Functions ---

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) (*entity.Product, error) {
	if data == nil {
		return nil, nil
	}

	var images []string
	if len(data.Images) > 0 {
		if err := json.Unmarshal(data.Images, &images); err != nil {
			return nil, errors.Wrap(err, "failed to decode product images")
		}
	}

	return &entity.Product{
		ID:          data.ID,
		Name:        data.Name,
		Slug:        data.Slug,
		Category:    data.Category,
		Brand:       data.Brand,
		Description: data.Description,
		Images:      images,
		Banner:      data.Banner,
		Price:       data.Price,
		Stock:       data.Stock,
		Rating:      data.Rating,
		NumReviews:  data.NumReviews,
		IsFeatured:  data.IsFeatured,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}, nil
}

func toProductDomains(models []*model.ProductModel) ([]*entity.Product, error) {
	products := make([]*entity.Product, 0, len(models))
	for _, productM := range models {
		product, err := toProductDomain(productM)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, nil
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel.
func fromProductDomain(data *entity.Product) (*model.ProductModel, error) {
	if data == nil {
		return nil, nil
	}

	images, err := json.Marshal(data.Images)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode product images")
	}

	return &model.ProductModel{
		ID:          data.ID,
		Name:        data.Name,
		Slug:        data.Slug,
		Category:    data.Category,
		Brand:       data.Brand,
		Description: data.Description,
		Images:      images,
		Banner:      data.Banner,
		Price:       data.Price,
		Stock:       data.Stock,
		Rating:      data.Rating,
		NumReviews:  data.NumReviews,
		IsFeatured:  data.IsFeatured,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}, nil
}
