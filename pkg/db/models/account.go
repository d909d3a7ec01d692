package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazaarlabs/bazaar-backend/pkg/enums"
)

// Account represents the canonical identity entity.
type Account struct {
	ID           uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	Name         string                `gorm:"column:name;not null"`
	Email        string                `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string                `gorm:"column:password_hash;not null"`
	Category     enums.AccountCategory `gorm:"column:category;not null;default:'consumer'"`
	IsActive     bool                  `gorm:"column:is_active;not null"`
	IsStaff      bool                  `gorm:"column:is_staff;not null;default:false"`
	IsSuperuser  bool                  `gorm:"column:is_superuser;not null;default:false"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
