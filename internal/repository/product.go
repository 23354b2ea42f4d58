package repository

import (
	"context"
	"errors"

	"github.com/yomanino/EcoRed-EcoTrama/internal/cache"
	"github.com/yomanino/EcoRed-EcoTrama/internal/models"

	"gorm.io/gorm"
)

// ProductRepository defines lookups over the static product catalog.
type ProductRepository interface {
	// GetByBarcode returns (nil, nil) when no product matches the barcode,
	// so callers can distinguish a miss from a store failure.
	GetByBarcode(ctx context.Context, barcode string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository returns a new ProductRepository implementation.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	var product models.Product
	key := cache.ProductKey(barcode)

	err := cache.Aside(ctx, key, &product, cache.ProductTTL, func() error {
		if err := r.db.WithContext(ctx).Where("barcode = ?", barcode).First(&product).Error; err != nil {
			return err
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("El producto ya existe")
		}
		return models.NewInternalError(err)
	}
	return nil
}
