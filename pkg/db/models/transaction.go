package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction records a finalized purchase for a consumer. Rows are written
// once and never updated.
type Transaction struct {
	ID         uuid.UUID     `gorm:"column:id;type:uuid;primaryKey"`
	ConsumerID uuid.UUID     `gorm:"column:consumer_id;type:uuid;not null"`
	Consumer   *Account      `gorm:"foreignKey:ConsumerID;constraint:OnDelete:CASCADE"`
	Products   []ProductSold `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE"`
	ListedAt   time.Time     `gorm:"column:listed_at;autoCreateTime"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
