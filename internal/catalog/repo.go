package catalog

import (
	"context"
	stdErrors "errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazaarlabs/bazaar-backend/pkg/db/models"
	"github.com/bazaarlabs/bazaar-backend/pkg/pagination"
)

// Repository exposes catalog persistence operations for products and
// vendor listings.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateProduct inserts a new shared product.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// FindProduct loads a product by id.
func (r *Repository) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductExists reports whether the product id references a stored row.
func (r *Repository) ProductExists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := r.FindProduct(ctx, id)
	if err == nil {
		return true, nil
	}
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// SaveProduct persists every field of the provided product.
func (r *Repository) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// DeleteProduct removes the product row.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

// ListProducts returns a page of products ordered by (created_at, id)
// descending.
func (r *Repository) ListProducts(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if cursor != nil {
		clause, args := cursor.Predicate("created_at")
		query = query.Where(clause, args...)
	}

	var products []models.Product
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// CreateStock inserts a new vendor listing.
func (r *Repository) CreateStock(ctx context.Context, stock *models.ProductStock) error {
	if err := r.db.WithContext(ctx).Create(stock).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Preload("Product").First(stock, "id = ?", stock.ID).Error
}

// FindStock loads a listing with its product by id.
func (r *Repository) FindStock(ctx context.Context, id uuid.UUID) (*models.ProductStock, error) {
	var stock models.ProductStock
	if err := r.db.WithContext(ctx).Preload("Product").First(&stock, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

// SaveStock persists every field of the provided listing.
func (r *Repository) SaveStock(ctx context.Context, stock *models.ProductStock) error {
	return r.db.WithContext(ctx).Save(stock).Error
}

// DeleteStock removes the listing row.
func (r *Repository) DeleteStock(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ProductStock{}, "id = ?", id).Error
}

// ListStocks returns a page of listings ordered by (created_at, id)
// descending, optionally filtered to one vendor.
func (r *Repository) ListStocks(ctx context.Context, vendorID *uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.ProductStock, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductStock{}).Preload("Product")
	if vendorID != nil {
		query = query.Where("vendor_id = ?", *vendorID)
	}
	if cursor != nil {
		clause, args := cursor.Predicate("created_at")
		query = query.Where(clause, args...)
	}

	var stocks []models.ProductStock
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&stocks).Error
	if err != nil {
		return nil, err
	}
	return stocks, nil
}
