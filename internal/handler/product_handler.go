package handler

import (
	"net/http"
	"strconv"

	"catalog-sync/internal/model"
	"catalog-sync/internal/service"
	"catalog-sync/internal/shopify"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	products service.ProductService
	sync     service.SyncService
	logger   zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(products service.ProductService, sync service.SyncService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		sync:     sync,
		logger:   logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /products?page=&per_page= requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet, h.logger)
		return
	}

	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrInvalidPage.Code, model.ErrInvalidPage.Message, h.logger)
		return
	}

	perPage, err := queryInt(r, "per_page", service.DefaultPerPage)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrInvalidPerPage.Code, model.ErrInvalidPerPage.Message, h.logger)
		return
	}

	result, err := h.products.List(r.Context(), page, perPage)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Sync handles POST /products/sync requests.
func (h *ProductHandler) Sync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost, h.logger)
		return
	}

	result, err := h.sync.Sync(r.Context())
	if err != nil {
		status, code := syncErrorStatus(err)
		writeError(w, r, status, code, err.Error(), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Clear handles DELETE /products/clear requests.
func (h *ProductHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, r, http.MethodDelete, h.logger)
		return
	}

	cleared, err := h.products.Clear(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to clear products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.ClearResponse{
		Message: "all products cleared",
		Cleared: cleared,
	})
}

// syncErrorStatus maps a sync failure to a status and error code. Failures
// caused by the remote API are reported as a bad gateway.
func syncErrorStatus(err error) (int, string) {
	if shopify.IsRemoteError(err) {
		return http.StatusBadGateway, model.ErrCodeRemoteUnavailable
	}
	return http.StatusInternalServerError, model.ErrCodeSyncFailed
}

// queryInt parses an integer query parameter, returning def when absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
