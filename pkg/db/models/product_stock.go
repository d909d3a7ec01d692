package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductStock is a vendor's priced, quantified listing of a Product.
// The vendor reference is stamped server-side on creation and is never
// client-writable.
type ProductStock struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Product   Product         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	VendorID  uuid.UUID       `gorm:"column:vendor_id;type:uuid;not null"`
	Vendor    *Account        `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE"`
	Stock     int             `gorm:"column:stock;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (s *ProductStock) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
