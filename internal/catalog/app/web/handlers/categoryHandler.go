package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"hkcatalog_api/internal/catalog/internal/business"
	"hkcatalog_api/internal/catalog/internal/models"
)

type CategoryHandler struct {
	service *business.CategoryService
	logger  *zap.Logger
}

func NewCategoryHandler(service *business.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{service: service, logger: logger}
}

func (h *CategoryHandler) CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var category models.Category
	if !decodeBody(w, r, &category) {
		return
	}

	id, err := h.service.CreateCategory(&category)
	if err != nil {
		h.logger.Error("create category failed", zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"category_id": id})
}

func (h *CategoryHandler) GetCategoryHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	siteID, err := queryInt64(r, "site_id")
	if err != nil {
		writeError(w, err)
		return
	}
	categoryID, err := queryInt64(r, "category_id")
	if err != nil {
		writeError(w, err)
		return
	}

	category, err := h.service.GetCategory(siteID, categoryID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) ListCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	siteID, err := queryInt64(r, "site_id")
	if err != nil {
		writeError(w, err)
		return
	}
	page, pageSize, err := pageParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	categories, err := h.service.ListCategories(siteID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) UpdateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPut) {
		return
	}

	var category models.Category
	if !decodeBody(w, r, &category) {
		return
	}

	if err := h.service.UpdateCategory(&category); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *CategoryHandler) DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodDelete) {
		return
	}

	siteID, err := queryInt64(r, "site_id")
	if err != nil {
		writeError(w, err)
		return
	}
	categoryID, err := queryInt64(r, "category_id")
	if err != nil {
		writeError(w, err)
		return
	}
	actor, err := queryInt64(r, "actor")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.DeleteCategory(siteID, categoryID, actor); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *CategoryHandler) PlatformCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		categories, err := h.service.GetPlatformCategories()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, categories)
	case http.MethodPost:
		var category models.PlatformCategory
		if !decodeBody(w, r, &category) {
			return
		}
		id, err := h.service.CreatePlatformCategory(&category)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]int64{"category_id": id})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	}
}

func (h *CategoryHandler) PlatformCategoryHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		categoryID, err := queryInt64(r, "category_id")
		if err != nil {
			writeError(w, err)
			return
		}
		category, err := h.service.GetPlatformCategory(categoryID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, category)
	case http.MethodPut:
		var category models.PlatformCategory
		if !decodeBody(w, r, &category) {
			return
		}
		if err := h.service.UpdatePlatformCategory(&category); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	case http.MethodDelete:
		categoryID, err := queryInt64(r, "category_id")
		if err != nil {
			writeError(w, err)
			return
		}
		actor, err := queryInt64(r, "actor")
		if err != nil {
			writeError(w, err)
			return
		}
		if err := h.service.DeletePlatformCategory(categoryID, actor); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	}
}

type categoryLinkRequest struct {
	SiteID     int64 `json:"site_id"`
	ProductID  int64 `json:"product_id"`
	CategoryID int64 `json:"category_id"`
}

func (h *CategoryHandler) AssignProductHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req categoryLinkRequest
	if !decodeBody(w, r, &req) {
		return
	}

	link := models.CategoryLink{ProductID: req.ProductID, CategoryID: req.CategoryID}
	if err := h.service.AssignProductToCategory(req.SiteID, link); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}

func (h *CategoryHandler) RemoveProductHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req categoryLinkRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.service.RemoveProductFromCategory(req.SiteID, req.ProductID, req.CategoryID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *CategoryHandler) ProductCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	siteID, err := queryInt64(r, "site_id")
	if err != nil {
		writeError(w, err)
		return
	}
	productID, err := queryInt64(r, "product_id")
	if err != nil {
		writeError(w, err)
		return
	}

	ids, err := h.service.GetCategoryIDsByProduct(siteID, productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

func (h *CategoryHandler) CategoryProductsHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	siteID, err := queryInt64(r, "site_id")
	if err != nil {
		writeError(w, err)
		return
	}
	categoryID, err := queryInt64(r, "category_id")
	if err != nil {
		writeError(w, err)
		return
	}

	ids, err := h.service.GetProductIDsByCategory(siteID, categoryID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}
