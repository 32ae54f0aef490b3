package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"hkcatalog_api/internal/catalog/internal/storage"
)

// Shared plumbing for the JSON handlers: parameter parsing and the mapping
// from storage errors onto HTTP status codes.

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError translates a service error into a JSON error response. Typed
// storage errors keep their meaning; anything else is an internal error.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, storage.ErrInsufficientStock):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "insufficient stock"})
	case storage.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func queryInt64(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, &storage.ValidationError{Field: name, Reason: "is required"}
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &storage.ValidationError{Field: name, Reason: "must be an integer"}
	}
	return v, nil
}

func queryIntDefault(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &storage.ValidationError{Field: name, Reason: "must be an integer"}
	}
	return v, nil
}

// pageParams reads page/page_size with the defaults used across the API.
func pageParams(r *http.Request) (page, pageSize int, err error) {
	page, err = queryIntDefault(r, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	pageSize, err = queryIntDefault(r, "page_size", 20)
	if err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return false
	}
	return true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to decode request body"})
		return false
	}
	return true
}
