package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bazaarlabs/bazaar-backend/internal/authz"
	"github.com/bazaarlabs/bazaar-backend/pkg/db/models"
	"github.com/bazaarlabs/bazaar-backend/pkg/enums"
	pkgerrors "github.com/bazaarlabs/bazaar-backend/pkg/errors"
	"github.com/bazaarlabs/bazaar-backend/pkg/pagination"
)

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: NewRepository(db)})
	require.NoError(t, err)
	return svc
}

func actorFor(account *models.Account) authz.Actor {
	return authz.Actor{ID: account.ID, Category: account.Category, Authenticated: true}
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr, "expected a typed error, got %v", err)
	assert.Equal(t, code, appErr.Code())
}

func TestCreateProductRequiresVendorOrAdmin(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	consumer := mustCreateTestAccount(t, db, enums.AccountCategoryConsumer)
	vendor := mustCreateTestAccount(t, db, enums.AccountCategoryVendor)

	_, err := svc.CreateProduct(ctx, actorFor(consumer), ProductCreateRequest{Name: "Gadget"})
	assertCode(t, err, pkgerrors.CodeForbidden)

	resp, err := svc.CreateProduct(ctx, actorFor(vendor), ProductCreateRequest{Name: "Gadget"})
	require.NoError(t, err)
	assert.Equal(t, "Gadget", resp.Name)
	assert.NotEqual(t, uuid.Nil, resp.ID)
}

func TestProductMutationIsAdminOnly(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	vendor := mustCreateTestAccount(t, db, enums.AccountCategoryVendor)
	admin := mustCreateTestAccount(t, db, enums.AccountCategoryAdmin)
	product := mustCreateTestProduct(t, db)

	name := "Renamed"
	_, err := svc.UpdateProduct(ctx, actorFor(vendor), product.ID, ProductUpdateRequest{Name: &name})
	assertCode(t, err, pkgerrors.CodeForbidden)

	err = svc.DeleteProduct(ctx, actorFor(vendor), product.ID)
	assertCode(t, err, pkgerrors.CodeForbidden)

	updated, err := svc.UpdateProduct(ctx, actorFor(admin), product.ID, ProductUpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	require.NoError(t, svc.DeleteProduct(ctx, actorFor(admin), product.ID))

	_, err = svc.GetProduct(ctx, actorFor(admin), product.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestCreateStockStampsActingVendor(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	vendor := mustCreateTestAccount(t, db, enums.AccountCategoryVendor)
	product := mustCreateTestProduct(t, db)

	resp, err := svc.CreateStock(ctx, actorFor(vendor), StockCreateRequest{
		ProductID: product.ID,
		Stock:     10,
		Price:     decimal.NewFromFloat(19.99),
	})
	require.NoError(t, err)

	assert.Equal(t, vendor.ID, resp.VendorID)
	assert.Equal(t, product.ID, resp.Product.ID)
	assert.Equal(t, 10, resp.Stock)
	assert.True(t, resp.Price.Equal(decimal.NewFromFloat(19.99)))
}

func TestCreateStockRejectsConsumer(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)

	consumer := mustCreateTestAccount(t, db, enums.AccountCategoryConsumer)
	product := mustCreateTestProduct(t, db)

	_, err := svc.CreateStock(context.Background(), actorFor(consumer), StockCreateRequest{
		ProductID: product.ID,
		Stock:     1,
		Price:     decimal.NewFromInt(5),
	})
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestCreateStockRequiresExistingProduct(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)

	vendor := mustCreateTestAccount(t, db, enums.AccountCategoryVendor)

	_, err := svc.CreateStock(context.Background(), actorFor(vendor), StockCreateRequest{
		ProductID: uuid.New(),
		Stock:     1,
		Price:     decimal.NewFromInt(5),
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateStockRejectsNegativeValues(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)

	vendor := mustCreateTestAccount(t, db, enums.AccountCategoryVendor)
	product := mustCreateTestProduct(t, db)
	ctx := context.Background()

	_, err := svc.CreateStock(ctx, actorFor(vendor), StockCreateRequest{
		ProductID: product.ID,
		Stock:     -1,
		Price:     decimal.NewFromInt(5),
	})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateStock(ctx, actorFor(vendor), StockCreateRequest{
		ProductID: product.ID,
		Stock:     1,
		Price:     decimal.NewFromInt(-5),
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdateStockOwnership(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	owner := mustCreateTestAccount(t, db, enums.AccountCategoryVendor)
	rival := mustCreateTestAccount(t, db, enums.AccountCategoryVendor)
	admin := mustCreateTestAccount(t, db, enums.AccountCategoryAdmin)
	product := mustCreateTestProduct(t, db)

	created, err := svc.CreateStock(ctx, actorFor(owner), StockCreateRequest{
		ProductID: product.ID,
		Stock:     5,
		Price:     decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	newStock := 7
	_, err = svc.UpdateStock(ctx, actorFor(rival), created.ID, StockUpdateRequest{Stock: &newStock})
	assertCode(t, err, pkgerrors.CodeForbidden)

	updated, err := svc.UpdateStock(ctx, actorFor(owner), created.ID, StockUpdateRequest{Stock: &newStock})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Stock)
	assert.Equal(t, owner.ID, updated.VendorID)

	price := decimal.NewFromInt(12)
	updated, err = svc.UpdateStock(ctx, actorFor(admin), created.ID, StockUpdateRequest{Price: &price})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(price))

	err = svc.DeleteStock(ctx, actorFor(rival), created.ID)
	assertCode(t, err, pkgerrors.CodeForbidden)

	require.NoError(t, svc.DeleteStock(ctx, actorFor(owner), created.ID))
}

func TestGetStockUnknownIDIsNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)

	consumer := mustCreateTestAccount(t, db, enums.AccountCategoryConsumer)

	_, err := svc.GetStock(context.Background(), actorFor(consumer), uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestListStocksFiltersByVendor(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	vendorA := mustCreateTestAccount(t, db, enums.AccountCategoryVendor)
	vendorB := mustCreateTestAccount(t, db, enums.AccountCategoryVendor)
	product := mustCreateTestProduct(t, db)

	for _, vendor := range []*models.Account{vendorA, vendorA, vendorB} {
		_, err := svc.CreateStock(ctx, actorFor(vendor), StockCreateRequest{
			ProductID: product.ID,
			Stock:     1,
			Price:     decimal.NewFromInt(1),
		})
		require.NoError(t, err)
	}

	page, err := svc.ListStocks(ctx, actorFor(vendorB), &vendorA.ID, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, page.Stocks, 2)
	for _, stock := range page.Stocks {
		assert.Equal(t, vendorA.ID, stock.VendorID)
	}

	all, err := svc.ListStocks(ctx, actorFor(vendorB), nil, pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, all.Stocks, 3)
}

func TestReadsRequireAuthentication(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	_, err := svc.ListProducts(ctx, authz.Actor{}, pagination.Params{})
	assertCode(t, err, pkgerrors.CodeUnauthorized)

	_, err = svc.GetStock(ctx, authz.Actor{}, uuid.New())
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}
