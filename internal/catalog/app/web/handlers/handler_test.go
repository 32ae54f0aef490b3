package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hkcatalog_api/internal/catalog/internal/storage"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", storage.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", errors.Join(errors.New("ctx"), storage.ErrNotFound), http.StatusNotFound},
		{"insufficient stock", storage.ErrInsufficientStock, http.StatusConflict},
		{"validation", &storage.ValidationError{Field: "site_id", Reason: "is required"}, http.StatusBadRequest},
		{"anything else", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestQueryInt64(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/products/get?site_id=23&bad=abc", nil)

	v, err := queryInt64(r, "site_id")
	require.NoError(t, err)
	assert.Equal(t, int64(23), v)

	_, err = queryInt64(r, "bad")
	assert.True(t, storage.IsValidation(err))

	_, err = queryInt64(r, "missing")
	assert.True(t, storage.IsValidation(err))
}

func TestPageParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		page, pageSize, err := pageParams(r)
		require.NoError(t, err)
		assert.Equal(t, 1, page)
		assert.Equal(t, 20, pageSize)
	})

	t.Run("explicit", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/products?page=3&page_size=50", nil)
		page, pageSize, err := pageParams(r)
		require.NoError(t, err)
		assert.Equal(t, 3, page)
		assert.Equal(t, 50, pageSize)
	})

	t.Run("garbage", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/products?page=x", nil)
		_, _, err := pageParams(r)
		assert.True(t, storage.IsValidation(err))
	})
}

func TestInventoryRequestTarget(t *testing.T) {
	req := inventoryRequest{Family: "main_spec", SiteID: 23, ID: 55}
	target, err := req.target()
	require.NoError(t, err)
	assert.Equal(t, storage.FamilyMainSpecs, target.Family)
	assert.Equal(t, int64(23), target.SiteID)

	req.Family = "warehouse"
	_, err = req.target()
	assert.True(t, storage.IsValidation(err))
}
