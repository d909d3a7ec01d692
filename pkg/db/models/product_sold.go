package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductSold snapshots a sold line item. It is decoupled from the live
// ProductStock so later price or stock edits never alter purchase history.
type ProductSold struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	TransactionID uuid.UUID       `gorm:"column:transaction_id;type:uuid;not null"`
	ProductID     uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Product       Product         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Stock         int             `gorm:"column:stock;not null"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
}

func (p *ProductSold) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
