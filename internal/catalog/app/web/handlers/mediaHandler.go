package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"hkcatalog_api/internal/catalog/internal/business"
	"hkcatalog_api/internal/catalog/internal/models"
)

type MediaHandler struct {
	service *business.MediaService
	logger  *zap.Logger
}

func NewMediaHandler(service *business.MediaService, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{service: service, logger: logger}
}

type imageRequest struct {
	SiteID int64               `json:"site_id"`
	Image  models.ProductImage `json:"image"`
}

type videoRequest struct {
	SiteID int64               `json:"site_id"`
	Video  models.ProductVideo `json:"video"`
}

func (h *MediaHandler) ImageHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		siteID, err := queryInt64(r, "site_id")
		if err != nil {
			writeError(w, err)
			return
		}
		imageID, err := queryInt64(r, "image_id")
		if err != nil {
			writeError(w, err)
			return
		}
		img, err := h.service.GetImage(siteID, imageID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, img)
	case http.MethodPost:
		var req imageRequest
		if !decodeBody(w, r, &req) {
			return
		}
		id, err := h.service.CreateImage(req.SiteID, &req.Image)
		if err != nil {
			h.logger.Error("create image failed", zap.Error(err))
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]int64{"image_id": id})
	case http.MethodPut:
		var req imageRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := h.service.UpdateImage(req.SiteID, &req.Image); err != nil {
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
		imageID, err := queryInt64(r, "image_id")
		if err != nil {
			writeError(w, err)
			return
		}
		actor, err := queryInt64(r, "actor")
		if err != nil {
			writeError(w, err)
			return
		}
		if err := h.service.DeleteImage(siteID, imageID, actor); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	}
}

func (h *MediaHandler) ListImagesHandler(w http.ResponseWriter, r *http.Request) {
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

	images, err := h.service.ListImagesByProduct(siteID, productID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, images)
}

type coverImageRequest struct {
	SiteID    int64 `json:"site_id"`
	ProductID int64 `json:"product_id"`
	ImageID   int64 `json:"image_id"`
	Actor     int64 `json:"actor"`
}

func (h *MediaHandler) SetCoverImageHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req coverImageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.service.SetCoverImage(req.SiteID, req.ProductID, req.ImageID, req.Actor); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *MediaHandler) VideoHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		siteID, err := queryInt64(r, "site_id")
		if err != nil {
			writeError(w, err)
			return
		}
		videoID, err := queryInt64(r, "video_id")
		if err != nil {
			writeError(w, err)
			return
		}
		video, err := h.service.GetVideo(siteID, videoID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, video)
	case http.MethodPost:
		var req videoRequest
		if !decodeBody(w, r, &req) {
			return
		}
		id, err := h.service.CreateVideo(req.SiteID, &req.Video)
		if err != nil {
			h.logger.Error("create video failed", zap.Error(err))
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]int64{"video_id": id})
	case http.MethodPut:
		var req videoRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := h.service.UpdateVideo(req.SiteID, &req.Video); err != nil {
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
		videoID, err := queryInt64(r, "video_id")
		if err != nil {
			writeError(w, err)
			return
		}
		actor, err := queryInt64(r, "actor")
		if err != nil {
			writeError(w, err)
			return
		}
		if err := h.service.DeleteVideo(siteID, videoID, actor); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	}
}

func (h *MediaHandler) ListVideosHandler(w http.ResponseWriter, r *http.Request) {
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

	videos, err := h.service.ListVideosByProduct(siteID, productID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, videos)
}
