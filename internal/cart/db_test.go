package cart

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bazaarlabs/bazaar-backend/pkg/db/models"
	"github.com/bazaarlabs/bazaar-backend/pkg/enums"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = conn.AutoMigrate(
		&models.Account{},
		&models.Product{},
		&models.ProductStock{},
		&models.Cart{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return conn
}

func mustCreateTestAccount(t *testing.T, tx *gorm.DB, category enums.AccountCategory) *models.Account {
	t.Helper()
	account := &models.Account{
		ID:           uuid.New(),
		Name:         "Cart Tester",
		Email:        fmt.Sprintf("bz_test_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
		Category:     category,
		IsActive:     true,
		IsStaff:      category == enums.AccountCategoryAdmin,
		IsSuperuser:  category == enums.AccountCategoryAdmin,
	}
	if err := tx.Create(account).Error; err != nil {
		t.Fatalf("create account: %v", err)
	}
	return account
}

func mustCreateTestStock(t *testing.T, tx *gorm.DB, vendorID uuid.UUID) *models.ProductStock {
	t.Helper()

	product := &models.Product{
		Name: fmt.Sprintf("Widget %s", uuid.NewString()),
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}

	stock := &models.ProductStock{
		ProductID: product.ID,
		VendorID:  vendorID,
		Stock:     100,
		Price:     decimal.NewFromInt(10),
	}
	if err := tx.Create(stock).Error; err != nil {
		t.Fatalf("create stock: %v", err)
	}
	return stock
}
