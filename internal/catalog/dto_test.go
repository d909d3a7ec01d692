package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazaarlabs/bazaar-backend/pkg/db/models"
	"github.com/bazaarlabs/bazaar-backend/pkg/enums"
)

func TestStockResponseCarriesLoadedProduct(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	vendor := mustCreateTestAccount(t, db, enums.AccountCategoryVendor)
	product := mustCreateTestProduct(t, db)

	stock := &models.ProductStock{
		ProductID: product.ID,
		VendorID:  vendor.ID,
		Stock:     5,
	}
	require.NoError(t, repo.CreateStock(ctx, stock))

	resp := NewStockResponse(stock)
	assert.Equal(t, stock.ID, resp.ID)
	assert.Equal(t, product.ID, resp.Product.ID)
	assert.Equal(t, product.Name, resp.Product.Name)
	assert.Equal(t, vendor.ID, resp.VendorID)
}

func TestStockResponseWithoutPreloadHasEmptyProduct(t *testing.T) {
	stock := &models.ProductStock{Stock: 3}

	resp := NewStockResponse(stock)
	assert.Equal(t, 3, resp.Stock)
	assert.Empty(t, resp.Product.Name)
}
