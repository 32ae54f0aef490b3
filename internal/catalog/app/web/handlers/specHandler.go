package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"hkcatalog_api/internal/catalog/internal/business"
	"hkcatalog_api/internal/catalog/internal/models"
)

type SpecHandler struct {
	service *business.SpecService
	logger  *zap.Logger
}

func NewSpecHandler(service *business.SpecService, logger *zap.Logger) *SpecHandler {
	return &SpecHandler{service: service, logger: logger}
}

type mainSpecRequest struct {
	SiteID int64           `json:"site_id"`
	Spec   models.MainSpec `json:"spec"`
}

type subSpecRequest struct {
	SiteID int64          `json:"site_id"`
	Spec   models.SubSpec `json:"spec"`
}

func (h *SpecHandler) MainSpecHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		siteID, err := queryInt64(r, "site_id")
		if err != nil {
			writeError(w, err)
			return
		}
		mainSpecID, err := queryInt64(r, "main_spec_id")
		if err != nil {
			writeError(w, err)
			return
		}
		spec, err := h.service.GetMainSpec(siteID, mainSpecID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, spec)
	case http.MethodPost:
		var req mainSpecRequest
		if !decodeBody(w, r, &req) {
			return
		}
		id, err := h.service.CreateMainSpec(req.SiteID, &req.Spec)
		if err != nil {
			h.logger.Error("create main spec failed", zap.Error(err))
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]int64{"main_spec_id": id})
	case http.MethodPut:
		var req mainSpecRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := h.service.UpdateMainSpec(req.SiteID, &req.Spec); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	case http.MethodDelete:
		siteID, err := queryInt64(r, "site_id")
		if err != nil {
			writeError(w, err)
			return
		}
		mainSpecID, err := queryInt64(r, "main_spec_id")
		if err != nil {
			writeError(w, err)
			return
		}
		actor, err := queryInt64(r, "actor")
		if err != nil {
			writeError(w, err)
			return
		}
		if err := h.service.DeleteMainSpec(siteID, mainSpecID, actor); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	}
}

func (h *SpecHandler) ListMainSpecsHandler(w http.ResponseWriter, r *http.Request) {
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
	page, pageSize, err := pageParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	specs, err := h.service.ListMainSpecsByProduct(siteID, productID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, specs)
}

func (h *SpecHandler) SubSpecHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		siteID, err := queryInt64(r, "site_id")
		if err != nil {
			writeError(w, err)
			return
		}
		subSpecID, err := queryInt64(r, "sub_spec_id")
		if err != nil {
			writeError(w, err)
			return
		}
		spec, err := h.service.GetSubSpec(siteID, subSpecID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, spec)
	case http.MethodPost:
		var req subSpecRequest
		if !decodeBody(w, r, &req) {
			return
		}
		id, err := h.service.CreateSubSpec(req.SiteID, &req.Spec)
		if err != nil {
			h.logger.Error("create sub spec failed", zap.Error(err))
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]int64{"sub_spec_id": id})
	case http.MethodPut:
		var req subSpecRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := h.service.UpdateSubSpec(req.SiteID, &req.Spec); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	case http.MethodDelete:
		siteID, err := queryInt64(r, "site_id")
		if err != nil {
			writeError(w, err)
			return
		}
		subSpecID, err := queryInt64(r, "sub_spec_id")
		if err != nil {
			writeError(w, err)
			return
		}
		actor, err := queryInt64(r, "actor")
		if err != nil {
			writeError(w, err)
			return
		}
		if err := h.service.DeleteSubSpec(siteID, subSpecID, actor); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	}
}

func (h *SpecHandler) ListSubSpecsHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	siteID, err := queryInt64(r, "site_id")
	if err != nil {
		writeError(w, err)
		return
	}
	mainSpecID, err := queryInt64(r, "main_spec_id")
	if err != nil {
		writeError(w, err)
		return
	}
	page, pageSize, err := pageParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	specs, err := h.service.ListSubSpecsByMainSpec(siteID, mainSpecID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, specs)
}
