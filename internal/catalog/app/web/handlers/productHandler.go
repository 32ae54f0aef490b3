package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"hkcatalog_api/internal/catalog/internal/business"
	"hkcatalog_api/internal/catalog/internal/models"
	"hkcatalog_api/internal/catalog/internal/storage"
)

type ProductHandler struct {
	service *business.ProductService
	logger  *zap.Logger
}

func NewProductHandler(service *business.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{service: service, logger: logger}
}

func (h *ProductHandler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var draft business.ProductDraft
	if !decodeBody(w, r, &draft) {
		return
	}

	productID, err := h.service.CreateProduct(&draft)
	if err != nil {
		h.logger.Error("create product failed", zap.Error(err))
		writeError(w, err)
		return
	}

	coding, _ := storage.ProductCoding(productID, storage.ShardSuffix(draft.Product.SiteID))
	writeJSON(w, http.StatusCreated, map[string]any{
		"product_id": productID,
		"coding":     coding,
	})
}

func (h *ProductHandler) GetProductHandler(w http.ResponseWriter, r *http.Request) {
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

	product, err := h.service.GetProduct(siteID, productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
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

	filter := models.ProductFilter{
		NameLike:        r.URL.Query().Get("name"),
		InventoryStatus: models.InventoryStatus(r.URL.Query().Get("inventory_status")),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := queryIntDefault(r, "status", 0)
		if err != nil {
			writeError(w, err)
			return
		}
		filter.Status = &status
	}
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		categoryID, err := queryInt64(r, "category_id")
		if err != nil {
			writeError(w, err)
			return
		}
		filter.CategoryID = &categoryID
	}

	products, err := h.service.ListProducts(siteID, filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPut) {
		return
	}

	var product models.Product
	if !decodeBody(w, r, &product) {
		return
	}

	if err := h.service.UpdateProduct(&product); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *ProductHandler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodDelete) {
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
	actor, err := queryInt64(r, "actor")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.DeleteProduct(siteID, productID, actor); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type inventoryRequest struct {
	Family string `json:"family"`
	SiteID int64  `json:"site_id"`
	ID     int64  `json:"id"`
	Value  int    `json:"value"`
	Actor  int64  `json:"actor"`
}

var inventoryFamilies = map[string]storage.TableFamily{
	"product":   storage.FamilyProducts,
	"main_spec": storage.FamilyMainSpecs,
	"sub_spec":  storage.FamilySubSpecs,
}

func (req *inventoryRequest) target() (storage.InventoryTarget, error) {
	family, ok := inventoryFamilies[req.Family]
	if !ok {
		return storage.InventoryTarget{}, &storage.ValidationError{
			Field: "family", Reason: "must be product, main_spec or sub_spec",
		}
	}
	return storage.InventoryTarget{Family: family, SiteID: req.SiteID, ID: req.ID}, nil
}

func (h *ProductHandler) SetInventoryHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req inventoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	target, err := req.target()
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.SetInventory(target, req.Value, req.Actor); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *ProductHandler) DecrementInventoryHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req inventoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	target, err := req.target()
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.DecrementInventory(target, req.Value, req.Actor); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *ProductHandler) IncrementInventoryHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req inventoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	target, err := req.target()
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.IncrementInventory(target, req.Value, req.Actor); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *ProductHandler) ReconcileInventoryHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req inventoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	total, err := h.service.ReconcileProductInventory(req.SiteID, req.ID, req.Actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"inventory": total})
}
