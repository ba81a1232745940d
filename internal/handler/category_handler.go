package handler

import (
	"net/http"

	"usedmarket/internal/service"

	"github.com/rs/zerolog"
)

// CategoryHandler serves the product category list.
type CategoryHandler struct {
	service service.CategoryService
	logger  zerolog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(service service.CategoryService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger.With().Str("handler", "category").Logger(),
	}
}

// List handles GET /productCategories requests.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to retrieve categories", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}
