package transactions

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazaarlabs/bazaar-backend/pkg/db/models"
)

// Repository exposes transaction persistence. Transactions are written
// once, as a unit with their lines, and never mutated afterwards.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a transactions repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create writes a transaction and its line snapshots atomically.
func (r *Repository) Create(ctx context.Context, consumerID uuid.UUID, lines []CreateLine) (*models.Transaction, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("a transaction requires at least one line")
	}

	txn := &models.Transaction{ConsumerID: consumerID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(txn).Error; err != nil {
			return err
		}
		for _, line := range lines {
			sold := &models.ProductSold{
				TransactionID: txn.ID,
				ProductID:     line.ProductID,
				Stock:         line.Stock,
				Price:         line.Price,
			}
			if err := tx.Create(sold).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, txn.ID)
}

// FindByID loads a transaction with its lines and their products.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Products").
		Preload("Products.Product").
		First(&txn, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &txn, nil
}
