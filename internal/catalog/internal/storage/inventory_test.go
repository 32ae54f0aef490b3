package storage

import (
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetInventory(t *testing.T) {
	t.Run("rejects negative before any statement", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewInventoryRepository(db)

		err := repo.SetInventory(InventoryTarget{Family: FamilyProducts, SiteID: 23, ID: 101}, -1, 42)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero is a valid level", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewInventoryRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE catalog.site_products_d SET inventory = $1")).
			WithArgs(0, int64(42), int64(101)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetInventory(InventoryTarget{Family: FamilyProducts, SiteID: 23, ID: 101}, 0, 42)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("family without inventory", func(t *testing.T) {
		db, _ := newMockDB(t)
		repo := NewInventoryRepository(db)

		err := repo.SetInventory(InventoryTarget{Family: FamilyImages, SiteID: 23, ID: 1}, 5, 42)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("missing row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewInventoryRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE catalog.site_product_main_spec_d SET inventory = $1")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetInventory(InventoryTarget{Family: FamilyMainSpecs, SiteID: 23, ID: 404}, 5, 42)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDecrementInventory(t *testing.T) {
	target := InventoryTarget{Family: FamilyMainSpecs, SiteID: 23, ID: 55}

	t.Run("guard passes", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewInventoryRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("inventory = inventory - $1")).
			WithArgs(3, int64(42), int64(55)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.DecrementInventory(target, 3, 42))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insufficient stock on live row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewInventoryRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("inventory = inventory - $1")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM catalog.site_product_main_spec_d WHERE main_spec_id = $1 AND deleted_at IS NULL)")).
			WithArgs(int64(55)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err := repo.DecrementInventory(target, 99, 42)
		assert.ErrorIs(t, err, ErrInsufficientStock)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("row gone", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewInventoryRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("inventory = inventory - $1")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err := repo.DecrementInventory(target, 1, 42)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("non-positive delta", func(t *testing.T) {
		db, _ := newMockDB(t)
		repo := NewInventoryRepository(db)

		for _, delta := range []int{0, -5} {
			err := repo.DecrementInventory(target, delta, 42)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		}
	})
}

func TestIncrementInventory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("inventory = inventory + $1")).
		WithArgs(4, int64(42), int64(77)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	target := InventoryTarget{Family: FamilySubSpecs, SiteID: 23, ID: 77}
	require.NoError(t, repo.IncrementInventory(target, 4, 42))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileProductInventory(t *testing.T) {
	t.Run("sums live specs", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewInventoryRepository(db)

		mock.ExpectQuery(quoteAll([]string{
			"UPDATE catalog.site_products_d SET inventory = (",
			"SELECT COALESCE(SUM(inventory), 0) FROM catalog.site_product_main_spec_d WHERE product_id = $1 AND deleted_at IS NULL",
			"RETURNING inventory",
		})).
			WithArgs(int64(101), int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"inventory"}).AddRow(12))

		total, err := repo.ReconcileProductInventory(23, 101, 42)
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("product gone", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewInventoryRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("UPDATE catalog.site_products_d SET inventory = (")).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.ReconcileProductInventory(23, 404, 42)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
