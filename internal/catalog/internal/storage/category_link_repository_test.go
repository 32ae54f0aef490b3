package storage

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hkcatalog_api/internal/catalog/internal/models"
)

func TestAssignProductToCategory(t *testing.T) {
	t.Run("inserts link", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCategoryLinkRepository(db)

		mock.ExpectExec(quoteAll([]string{
			"INSERT INTO catalog.site_product_category_d (product_id, category_id)",
			"ON CONFLICT (product_id, category_id) DO NOTHING",
		})).
			WithArgs(int64(101), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.AssignProductToCategory(23, models.CategoryLink{ProductID: 101, CategoryID: 7})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing pair is a no-op", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCategoryLinkRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO catalog.site_product_category_d")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.AssignProductToCategory(23, models.CategoryLink{ProductID: 101, CategoryID: 7})
		require.NoError(t, err)
	})

	t.Run("rejects non-positive ids", func(t *testing.T) {
		db, _ := newMockDB(t)
		repo := NewCategoryLinkRepository(db)

		err := repo.AssignProductToCategory(23, models.CategoryLink{ProductID: 0, CategoryID: 7})
		assert.True(t, IsValidation(err))
		err = repo.AssignProductToCategory(23, models.CategoryLink{ProductID: 101, CategoryID: -1})
		assert.True(t, IsValidation(err))
	})
}

func TestRemoveProductFromCategory(t *testing.T) {
	t.Run("deletes the association", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCategoryLinkRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM catalog.site_product_category_d WHERE product_id = $1 AND category_id = $2")).
			WithArgs(int64(101), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.RemoveProductFromCategory(23, 101, 7))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing link", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCategoryLinkRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM catalog.site_product_category_d")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.RemoveProductFromCategory(23, 101, 9)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetCategoryIDsByProduct(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryLinkRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT category_id FROM catalog.site_product_category_d WHERE product_id = $1 ORDER BY category_id ASC")).
		WithArgs(int64(101)).
		WillReturnRows(sqlmock.NewRows([]string{"category_id"}).AddRow(3).AddRow(7))

	ids, err := repo.GetCategoryIDsByProduct(23, 101)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 7}, ids)
}

func TestGetCategoryIDsByProducts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryLinkRepository(db)

	rows := sqlmock.NewRows([]string{"product_id", "category_id"}).
		AddRow(101, 3).AddRow(101, 7).AddRow(102, 3)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT product_id, category_id FROM catalog.site_product_category_d WHERE product_id = ANY($1)")).
		WillReturnRows(rows)

	links, err := repo.GetCategoryIDsByProducts(23, []int64{101, 102})
	require.NoError(t, err)
	assert.Equal(t, map[int64][]int64{
		101: {3, 7},
		102: {3},
	}, links)
}
