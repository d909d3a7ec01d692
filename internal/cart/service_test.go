package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bazaarlabs/bazaar-backend/internal/authz"
	"github.com/bazaarlabs/bazaar-backend/internal/catalog"
	"github.com/bazaarlabs/bazaar-backend/pkg/db/models"
	"github.com/bazaarlabs/bazaar-backend/pkg/enums"
	pkgerrors "github.com/bazaarlabs/bazaar-backend/pkg/errors"
	"github.com/bazaarlabs/bazaar-backend/pkg/pagination"
)

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:    NewRepository(db),
		Catalog: catalog.NewRepository(db),
	})
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

func TestCreateStampsActingConsumer(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	consumer := mustCreateTestAccount(t, db, enums.AccountCategoryConsumer)
	vendor := mustCreateTestAccount(t, db, enums.AccountCategoryVendor)
	stock := mustCreateTestStock(t, db, vendor.ID)

	resp, err := svc.Create(ctx, actorFor(consumer), CreateRequest{
		ProductStockID: stock.ID,
		CartStock:      3,
	})
	require.NoError(t, err)

	assert.Equal(t, consumer.ID, resp.ConsumerID)
	assert.Equal(t, stock.ID, resp.Stock.ID)
	assert.Equal(t, 3, resp.CartStock)
}

func TestCreateRejectsVendor(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)

	vendor := mustCreateTestAccount(t, db, enums.AccountCategoryVendor)
	stock := mustCreateTestStock(t, db, vendor.ID)

	_, err := svc.Create(context.Background(), actorFor(vendor), CreateRequest{
		ProductStockID: stock.ID,
		CartStock:      1,
	})
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestCreateRequiresExistingStock(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)

	consumer := mustCreateTestAccount(t, db, enums.AccountCategoryConsumer)

	_, err := svc.Create(context.Background(), actorFor(consumer), CreateRequest{
		ProductStockID: uuid.New(),
		CartStock:      1,
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateRejectsZeroQuantity(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)

	consumer := mustCreateTestAccount(t, db, enums.AccountCategoryConsumer)
	vendor := mustCreateTestAccount(t, db, enums.AccountCategoryVendor)
	stock := mustCreateTestStock(t, db, vendor.ID)

	_, err := svc.Create(context.Background(), actorFor(consumer), CreateRequest{
		ProductStockID: stock.ID,
		CartStock:      0,
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestForeignRowsBehaveAsMissing(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	owner := mustCreateTestAccount(t, db, enums.AccountCategoryConsumer)
	other := mustCreateTestAccount(t, db, enums.AccountCategoryConsumer)
	vendor := mustCreateTestAccount(t, db, enums.AccountCategoryVendor)
	stock := mustCreateTestStock(t, db, vendor.ID)

	created, err := svc.Create(ctx, actorFor(owner), CreateRequest{
		ProductStockID: stock.ID,
		CartStock:      2,
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, actorFor(other), created.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)

	quantity := 5
	_, err = svc.Update(ctx, actorFor(other), created.ID, UpdateRequest{CartStock: &quantity})
	assertCode(t, err, pkgerrors.CodeNotFound)

	err = svc.Delete(ctx, actorFor(other), created.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)

	// The owner still sees the row untouched.
	got, err := svc.Get(ctx, actorFor(owner), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CartStock)
}

func TestVendorIsForbiddenEvenForUnknownIDs(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)

	vendor := mustCreateTestAccount(t, db, enums.AccountCategoryVendor)

	_, err := svc.Get(context.Background(), actorFor(vendor), uuid.New())
	assertCode(t, err, pkgerrors.CodeForbidden)

	_, err = svc.List(context.Background(), actorFor(vendor), pagination.Params{})
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestUpdateChangesQuantityOnly(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	consumer := mustCreateTestAccount(t, db, enums.AccountCategoryConsumer)
	vendor := mustCreateTestAccount(t, db, enums.AccountCategoryVendor)
	stock := mustCreateTestStock(t, db, vendor.ID)

	created, err := svc.Create(ctx, actorFor(consumer), CreateRequest{
		ProductStockID: stock.ID,
		CartStock:      1,
	})
	require.NoError(t, err)

	quantity := 9
	updated, err := svc.Update(ctx, actorFor(consumer), created.ID, UpdateRequest{CartStock: &quantity})
	require.NoError(t, err)

	assert.Equal(t, 9, updated.CartStock)
	assert.Equal(t, created.Stock.ID, updated.Stock.ID)
	assert.Equal(t, created.ConsumerID, updated.ConsumerID)
}

func TestListIsScopedToConsumer(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	alice := mustCreateTestAccount(t, db, enums.AccountCategoryConsumer)
	bob := mustCreateTestAccount(t, db, enums.AccountCategoryConsumer)
	admin := mustCreateTestAccount(t, db, enums.AccountCategoryAdmin)
	vendor := mustCreateTestAccount(t, db, enums.AccountCategoryVendor)
	stock := mustCreateTestStock(t, db, vendor.ID)

	for _, consumer := range []*models.Account{alice, alice, bob} {
		_, err := svc.Create(ctx, actorFor(consumer), CreateRequest{
			ProductStockID: stock.ID,
			CartStock:      1,
		})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, actorFor(alice), pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	page, err = svc.List(ctx, actorFor(bob), pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	page, err = svc.List(ctx, actorFor(admin), pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
}
