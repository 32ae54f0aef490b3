package storage

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hkcatalog_api/internal/catalog/internal/models"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func productRows(ids ...int64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"product_id", "site_id", "platform_category_id", "name", "description", "type",
		"price", "member_price", "supply_status", "inventory",
		"scheduled_release_time", "scheduled_offshelf_time", "auto_offshelf_soldout",
		"only_member", "status", "created_at", "updated_at", "created_by", "updated_by",
	})
	now := time.Now()
	for _, id := range ids {
		rows.AddRow(id, 23, 1, "vibrating ring", "desc", "toy",
			19.90, 15.90, 0, 5, nil, nil, false, false, 1, now, now, 42, 42)
	}
	return rows
}

func TestCreateProduct(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO catalog.site_products_d")).
		WithArgs(int64(23), int64(1), "vibrating ring", "desc", "toy", 19.90, 15.90,
			0, 5, nil, nil, false, false, 1, int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"product_id"}).AddRow(int64(101)))

	id, err := repo.CreateProduct(&models.Product{
		SiteID:             23,
		PlatformCategoryID: 1,
		Name:               "vibrating ring",
		Description:        "desc",
		Type:               "toy",
		Price:              19.90,
		MemberPrice:        15.90,
		Inventory:          5,
		Status:             models.ProductStatusActive,
		CreatedBy:          42,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(101), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProductValidation(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewProductRepository(db)

	tests := []struct {
		name    string
		product models.Product
	}{
		{"missing site", models.Product{Name: "x", Inventory: 1}},
		{"missing name", models.Product{SiteID: 1, Inventory: 1}},
		{"negative inventory", models.Product{SiteID: 1, Name: "x", Inventory: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.CreateProduct(&tt.product)
			require.Error(t, err)
			assert.True(t, IsValidation(err), "expected a validation error, got %v", err)
		})
	}
}

func TestGetProductByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog.site_products_d WHERE product_id = $1 AND deleted_at IS NULL")).
		WithArgs(int64(101)).
		WillReturnRows(productRows(101))

	product, err := repo.GetProductByID(23, 101)
	require.NoError(t, err)
	assert.Equal(t, int64(101), product.ID)
	assert.Equal(t, "vibrating ring", product.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog.site_products_d")).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetProductByID(23, 404)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListProductsFilters(t *testing.T) {
	tests := []struct {
		name     string
		filter   models.ProductFilter
		contains []string
		args     []any
	}{
		{
			name:     "no filter",
			filter:   models.ProductFilter{},
			contains: []string{"ORDER BY product_id DESC LIMIT $1 OFFSET $2"},
			args:     []any{20, 0},
		},
		{
			name:     "name filter",
			filter:   models.ProductFilter{NameLike: "ring"},
			contains: []string{"name LIKE '%' || $1 || '%'"},
			args:     []any{"ring", 20, 0},
		},
		{
			name: "status and category",
			filter: models.ProductFilter{
				Status:     intPtr(models.ProductStatusActive),
				CategoryID: int64Ptr(7),
			},
			contains: []string{
				"status = $1",
				"product_id IN (SELECT product_id FROM catalog.site_product_category_d WHERE category_id = $2)",
			},
			args: []any{1, int64(7), 20, 0},
		},
		{
			name:     "inventory normal",
			filter:   models.ProductFilter{InventoryStatus: models.InventoryNormal},
			contains: []string{"inventory > 0"},
			args:     []any{20, 0},
		},
		{
			name:     "inventory none",
			filter:   models.ProductFilter{InventoryStatus: models.InventoryNone},
			contains: []string{"inventory <= 0"},
			args:     []any{20, 0},
		},
		{
			name:   "inventory partial",
			filter: models.ProductFilter{InventoryStatus: models.InventoryPartial},
			contains: []string{
				"inventory > 0 AND EXISTS (SELECT 1 FROM catalog.site_product_main_spec_d ms",
				"ms.inventory = 0",
			},
			args: []any{20, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewProductRepository(db)

			values := make([]driver.Value, 0, len(tt.args))
			for _, a := range tt.args {
				values = append(values, a)
			}

			expect := mock.ExpectQuery(quoteAll(tt.contains))
			expect.WithArgs(values...).WillReturnRows(productRows(2, 1))

			products, err := repo.ListProducts(23, tt.filter, 1, 20)
			require.NoError(t, err)
			require.Len(t, products, 2)
			assert.Equal(t, int64(2), products[0].ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListProductsUnknownInventoryStatus(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewProductRepository(db)

	_, err := repo.ListProducts(23, models.ProductFilter{InventoryStatus: "backorder"}, 1, 20)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestUpdateProductGone(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE catalog.site_products_d")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateProduct(&models.Product{ID: 404, SiteID: 23, Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProduct(t *testing.T) {
	t.Run("live row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProductRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE catalog.site_products_d SET deleted_at = CURRENT_TIMESTAMP")).
			WithArgs(int64(42), int64(101)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.DeleteProduct(23, 101, 42))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already deleted is idempotent", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProductRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE catalog.site_products_d SET deleted_at = CURRENT_TIMESTAMP")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM catalog.site_products_d WHERE product_id = $1)")).
			WithArgs(int64(101)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		require.NoError(t, repo.DeleteProduct(23, 101, 42))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("never existed", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProductRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE catalog.site_products_d SET deleted_at = CURRENT_TIMESTAMP")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err := repo.DeleteProduct(23, 404, 42)
		assert.ErrorIs(t, err, ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetProductWrappedError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog.site_products_d")).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetProductByID(23, 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "failed to get product")
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

// quoteAll builds a regexp that requires every fragment to appear in order.
func quoteAll(fragments []string) string {
	pattern := ""
	for i, f := range fragments {
		if i > 0 {
			pattern += "(?s).*"
		}
		pattern += regexp.QuoteMeta(f)
	}
	return pattern
}
