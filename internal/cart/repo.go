package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazaarlabs/bazaar-backend/pkg/db/models"
	"github.com/bazaarlabs/bazaar-backend/pkg/pagination"
)

// Repository exposes cart persistence. Lookups take an optional consumer
// scope; a scoped query treats other consumers' rows as nonexistent.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new cart row and reloads it with its listing.
func (r *Repository) Create(ctx context.Context, item *models.Cart) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Preload("ProductStock").
		Preload("ProductStock.Product").
		First(item, "id = ?", item.ID).Error
}

// FindScoped loads a cart row by id. A non-nil consumerID restricts the
// lookup to that consumer's rows.
func (r *Repository) FindScoped(ctx context.Context, id uuid.UUID, consumerID *uuid.UUID) (*models.Cart, error) {
	query := r.db.WithContext(ctx).
		Preload("ProductStock").
		Preload("ProductStock.Product").
		Where("id = ?", id)
	if consumerID != nil {
		query = query.Where("consumer_id = ?", *consumerID)
	}

	var item models.Cart
	if err := query.First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Save persists every field of the provided cart row.
func (r *Repository) Save(ctx context.Context, item *models.Cart) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes the cart row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Cart{}, "id = ?", id).Error
}

// ListScoped returns a page of cart rows ordered by (added_at, id)
// descending, restricted to one consumer when consumerID is non-nil.
func (r *Repository) ListScoped(ctx context.Context, consumerID *uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Cart, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Preload("ProductStock").
		Preload("ProductStock.Product")
	if consumerID != nil {
		query = query.Where("consumer_id = ?", *consumerID)
	}
	if cursor != nil {
		clause, args := cursor.Predicate("added_at")
		query = query.Where(clause, args...)
	}

	var items []models.Cart
	err := query.
		Order("added_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
