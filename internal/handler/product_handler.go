package handler

import (
	"net/http"

	"usedmarket/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// Create handles POST /products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodeDocument(r)
	if err != nil {
		writeServiceError(w, err, "invalid request body", h.logger)
		return
	}

	res, err := h.service.Create(r.Context(), body)
	if err != nil {
		writeServiceError(w, err, "failed to create product", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// Delete handles DELETE /products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "id")
	if err != nil {
		writeServiceError(w, err, "invalid path parameter", h.logger)
		return
	}

	res, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to delete product", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// List handles GET /products requests, optionally narrowed by ?email=.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeServiceError(w, err, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// ListByCategory handles GET /products/{name} requests.
func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	name, err := urlParam(r, "name")
	if err != nil {
		writeServiceError(w, err, "invalid path parameter", h.logger)
		return
	}

	products, err := h.service.ListByCategory(r.Context(), name)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// ListAdvertised handles GET /products/advertise/{email} requests.
func (h *ProductHandler) ListAdvertised(w http.ResponseWriter, r *http.Request) {
	email, err := urlParam(r, "email")
	if err != nil {
		writeServiceError(w, err, "invalid path parameter", h.logger)
		return
	}

	products, err := h.service.ListAdvertised(r.Context(), email)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve advertised products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// Advertise handles PATCH /products/advertise/{id} requests.
func (h *ProductHandler) Advertise(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "id")
	if err != nil {
		writeServiceError(w, err, "invalid path parameter", h.logger)
		return
	}

	res, err := h.service.Advertise(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to advertise product", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, res)
}
