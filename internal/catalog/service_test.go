package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ubhospitality/inventory-backend/pkg/db"
	"github.com/ubhospitality/inventory-backend/pkg/enums"
	pkgerrors "github.com/ubhospitality/inventory-backend/pkg/errors"
)

const sqliteUUIDDefault = "(lower(hex(randomblob(4)) || '-' || hex(randomblob(2)) || '-4' || substr(hex(randomblob(2)),2) || '-' || substr('89ab', abs(random()) % 4 + 1, 1) || substr(hex(randomblob(2)),2) || '-' || hex(randomblob(6))))"

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.Exec(`DROP TABLE IF EXISTS inventory_items`).Error)
	require.NoError(t, conn.Exec(`DROP TABLE IF EXISTS categories`).Error)

	categories := `
CREATE TABLE categories (
  id TEXT PRIMARY KEY DEFAULT ` + sqliteUUIDDefault + `,
  name TEXT NOT NULL UNIQUE,
  description TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	items := `
CREATE TABLE inventory_items (
  id TEXT PRIMARY KEY DEFAULT ` + sqliteUUIDDefault + `,
  category_id TEXT NOT NULL,
  name TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
  price NUMERIC NOT NULL DEFAULT 0 CHECK (price >= 0),
  recommended_quantity INTEGER NOT NULL DEFAULT 0 CHECK (recommended_quantity >= 0),
  warning_quantity INTEGER NOT NULL DEFAULT 0 CHECK (warning_quantity >= 0),
  created_at DATETIME,
  last_updated DATETIME,
  CHECK (warning_quantity <= recommended_quantity)
);`
	require.NoError(t, conn.Exec(categories).Error)
	require.NoError(t, conn.Exec(items).Error)
	return conn
}

func newCatalogTestService(t *testing.T) (Service, *Repository, *gorm.DB) {
	t.Helper()

	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)
	svc, err := NewService(repo, db.NewFromConn(conn))
	require.NoError(t, err)
	return svc, repo, conn
}

func mustCreateCategory(t *testing.T, svc Service, name string) *CategoryDTO {
	t.Helper()
	category, err := svc.CreateCategory(context.Background(), enums.UserRoleManager, CreateCategoryInput{Name: name})
	require.NoError(t, err)
	return category
}

func mustCreateItem(t *testing.T, svc Service, categoryID uuid.UUID, name string, qty, recommended, warning int) *ItemDTO {
	t.Helper()
	item, err := svc.CreateItem(context.Background(), enums.UserRoleManager, CreateItemInput{
		CategoryID:          categoryID,
		Name:                name,
		Quantity:            qty,
		Price:               decimal.NewFromFloat(4.50),
		RecommendedQuantity: recommended,
		WarningQuantity:     warning,
	})
	require.NoError(t, err)
	return item
}

func TestCreateCategoryRequiresManager(t *testing.T) {
	svc, _, _ := newCatalogTestService(t)

	for _, role := range []enums.UserRole{enums.UserRoleEmployee, enums.UserRoleFrontDesk, enums.UserRoleHousekeeping} {
		_, err := svc.CreateCategory(context.Background(), role, CreateCategoryInput{Name: "Linens"})
		typed := pkgerrors.As(err)
		require.NotNil(t, typed, "role %s", role)
		assert.Equal(t, pkgerrors.CodeForbidden, typed.Code(), "role %s", role)
	}

	category, err := svc.CreateCategory(context.Background(), enums.UserRoleAdmin, CreateCategoryInput{Name: "Linens"})
	require.NoError(t, err)
	assert.Equal(t, "Linens", category.Name)
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	svc, _, _ := newCatalogTestService(t)
	mustCreateCategory(t, svc, "Cleaning Supplies")

	_, err := svc.CreateCategory(context.Background(), enums.UserRoleManager, CreateCategoryInput{Name: "Cleaning Supplies"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestDeleteCategoryBlockedWhileItemsRemain(t *testing.T) {
	svc, _, _ := newCatalogTestService(t)
	category := mustCreateCategory(t, svc, "Toiletries")
	item := mustCreateItem(t, svc, category.ID, "Shampoo", 10, 20, 5)

	err := svc.DeleteCategory(context.Background(), enums.UserRoleManager, category.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	require.NoError(t, svc.DeleteItem(context.Background(), enums.UserRoleManager, item.ID))
	require.NoError(t, svc.DeleteCategory(context.Background(), enums.UserRoleManager, category.ID))

	_, err = svc.GetCategory(context.Background(), category.ID)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestCreateItemValidatesThresholds(t *testing.T) {
	svc, _, _ := newCatalogTestService(t)
	category := mustCreateCategory(t, svc, "Minibar")

	_, err := svc.CreateItem(context.Background(), enums.UserRoleManager, CreateItemInput{
		CategoryID:          category.ID,
		Name:                "Sparkling Water",
		Quantity:            5,
		Price:               decimal.NewFromInt(2),
		RecommendedQuantity: 10,
		WarningQuantity:     15,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "warning_quantity")
}

func TestCreateItemUnknownCategory(t *testing.T) {
	svc, _, _ := newCatalogTestService(t)

	_, err := svc.CreateItem(context.Background(), enums.UserRoleManager, CreateItemInput{
		CategoryID:          uuid.New(),
		Name:                "Orphan",
		Price:               decimal.NewFromInt(1),
		RecommendedQuantity: 5,
		WarningQuantity:     1,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpdateItemDoesNotTouchQuantity(t *testing.T) {
	svc, _, _ := newCatalogTestService(t)
	category := mustCreateCategory(t, svc, "Linens")
	item := mustCreateItem(t, svc, category.ID, "Bath Towel", 40, 60, 15)

	newName := "Bath Towel Large"
	newPrice := decimal.NewFromFloat(7.25)
	updated, err := svc.UpdateItem(context.Background(), enums.UserRoleManager, item.ID, UpdateItemInput{
		Name:  &newName,
		Price: &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, "Bath Towel Large", updated.Name)
	assert.True(t, newPrice.Equal(updated.Price))
	assert.Equal(t, 40, updated.Quantity)
}

func TestListItemsBelowWarningFilter(t *testing.T) {
	svc, repo, _ := newCatalogTestService(t)
	category := mustCreateCategory(t, svc, "Pantry")
	low := mustCreateItem(t, svc, category.ID, "Coffee Pods", 3, 50, 10)
	mustCreateItem(t, svc, category.ID, "Tea Bags", 80, 60, 10)

	items, err := svc.ListItems(context.Background(), ListItemsInput{BelowWarning: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, low.ID, items[0].ID)
	assert.True(t, items[0].BelowWarning)

	// Boundary: quantity equal to the warning level counts as low stock.
	require.NoError(t, repo.SetItemQuantity(context.Background(), low.ID, 10))
	items, err = svc.ListItems(context.Background(), ListItemsInput{BelowWarning: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestSetItemQuantityUnknownItem(t *testing.T) {
	_, repo, _ := newCatalogTestService(t)

	err := repo.SetItemQuantity(context.Background(), uuid.New(), 5)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
