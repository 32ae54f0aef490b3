package business

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hkcatalog_api/internal/catalog/internal/models"
	"hkcatalog_api/internal/catalog/internal/storage"
)

func newMockService(t *testing.T) (*ProductService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewProductService(db, zap.NewNop()), mock
}

func draftFixture() *ProductDraft {
	return &ProductDraft{
		Product: models.Product{
			SiteID:    23,
			Name:      "vibrating ring",
			Price:     19.90,
			Inventory: 5,
			Status:    models.ProductStatusActive,
			CreatedBy: 42,
		},
		MainSpecs: []models.MainSpec{
			{Name: "red", Price: 19.90, Inventory: 5},
		},
		Images: []models.ProductImage{
			{ImgURL: "https://cdn.example.com/ring.jpg", CoverPic: true},
		},
		CategoryIDs: []int64{7},
	}
}

func TestCreateProductCommitsAllRows(t *testing.T) {
	service, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO catalog.site_products_d")).
		WillReturnRows(sqlmock.NewRows([]string{"product_id"}).AddRow(int64(101)))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO catalog.site_product_main_spec_d")).
		WithArgs(int64(101), "red", "", 19.90, 0.0, 0, 5, int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"main_spec_id"}).AddRow(int64(11)))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO catalog.site_product_images_d")).
		WithArgs(int64(101), "https://cdn.example.com/ring.jpg", true, int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(21)))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO catalog.site_product_category_d")).
		WithArgs(int64(101), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	productID, err := service.CreateProduct(draftFixture())
	require.NoError(t, err)
	assert.Equal(t, int64(101), productID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProductRollsBackOnChildFailure(t *testing.T) {
	service, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO catalog.site_products_d")).
		WillReturnRows(sqlmock.NewRows([]string{"product_id"}).AddRow(int64(101)))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO catalog.site_product_main_spec_d")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := service.CreateProduct(draftFixture())
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProductValidationShortCircuits(t *testing.T) {
	service, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	draft := draftFixture()
	draft.Product.Name = ""
	_, err := service.CreateProduct(draft)
	require.Error(t, err)
	assert.True(t, storage.IsValidation(err))
}

func TestDeleteProductCascadesSoftDeletes(t *testing.T) {
	service, mock := newMockService(t)

	mainSpecRows := sqlmock.NewRows([]string{
		"main_spec_id", "product_id", "name", "img_url", "price", "member_price",
		"supply_status", "inventory", "created_at", "updated_at", "created_by", "updated_by",
	})

	mock.ExpectBegin()
	// product row
	mock.ExpectExec(regexp.QuoteMeta("UPDATE catalog.site_products_d SET deleted_at = CURRENT_TIMESTAMP")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// no live specs, images, videos or links left behind
	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog.site_product_main_spec_d")).
		WillReturnRows(mainSpecRows)
	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog.site_product_images_d")).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "product_id", "img_url", "cover_pic", "created_at", "updated_at", "created_by", "updated_by",
		}))
	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog.site_product_videos_d")).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "product_id", "video_url", "created_at", "updated_at", "created_by", "updated_by",
		}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT category_id FROM catalog.site_product_category_d")).
		WillReturnRows(sqlmock.NewRows([]string{"category_id"}).AddRow(int64(7)))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM catalog.site_product_category_d")).
		WithArgs(int64(101), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, service.DeleteProduct(23, 101, 42))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementInventoryDelegates(t *testing.T) {
	service, mock := newMockService(t)

	mock.ExpectExec(regexp.QuoteMeta("inventory = inventory - $1")).
		WithArgs(2, int64(42), int64(55)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	target := storage.InventoryTarget{Family: storage.FamilyMainSpecs, SiteID: 23, ID: 55}
	require.NoError(t, service.DecrementInventory(target, 2, 42))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileProductInventory(t *testing.T) {
	service, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(inventory), 0)")).
		WithArgs(int64(101), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"inventory"}).AddRow(9))

	total, err := service.ReconcileProductInventory(23, 101, 42)
	require.NoError(t, err)
	assert.Equal(t, 9, total)
}

func TestGetProductMapsNoRows(t *testing.T) {
	service, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog.site_products_d")).
		WillReturnError(sql.ErrNoRows)

	_, err := service.GetProduct(23, 404)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
