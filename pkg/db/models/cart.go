package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart is a consumer's pending reservation of a ProductStock. The consumer
// reference is stamped server-side; neither it nor the stock reference can
// be changed through updates.
type Cart struct {
	ID             uuid.UUID     `gorm:"column:id;type:uuid;primaryKey"`
	ProductStockID uuid.UUID     `gorm:"column:product_stock_id;type:uuid;not null"`
	ProductStock   ProductStock  `gorm:"foreignKey:ProductStockID;constraint:OnDelete:CASCADE"`
	ConsumerID     uuid.UUID     `gorm:"column:consumer_id;type:uuid;not null"`
	Consumer       *Account      `gorm:"foreignKey:ConsumerID;constraint:OnDelete:CASCADE"`
	CartStock      int           `gorm:"column:cart_stock;not null"`
	AddedAt        time.Time     `gorm:"column:added_at;autoCreateTime"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
