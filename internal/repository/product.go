package repository

import (
	"context"
	"errors"

	"storefront/internal/cache"
	"storefront/internal/models"

	"gorm.io/gorm"
)

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository returns a new ProductRepository implementation.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	key := cache.ProductKey(id)

	err := cache.Aside(ctx, key, &product, cache.ProductTTL, func() error {
		if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Product", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		if isForeignKeyViolation(err) {
			return models.NewValidationError("The selected category id is invalid.")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		if isForeignKeyViolation(err) {
			return models.NewValidationError("The selected category id is invalid.")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateProduct(ctx, product.ID)
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Product", id)
	}
	cache.InvalidateProduct(ctx, id)
	return nil
}
