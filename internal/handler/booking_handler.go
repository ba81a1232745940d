package handler

import (
	"errors"
	"net/http"

	"usedmarket/internal/auth"
	"usedmarket/internal/model"
	"usedmarket/internal/service"

	"github.com/rs/zerolog"
)

// BookingHandler handles booking-related HTTP requests.
type BookingHandler struct {
	service service.BookingService
	logger  zerolog.Logger
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(service service.BookingService, logger zerolog.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		logger:  logger.With().Str("handler", "booking").Logger(),
	}
}

// Create handles POST /bookings requests. A repeated booking is not an HTTP
// error; the client gets a 200 notice with acknowledged=false.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodeDocument(r)
	if err != nil {
		writeServiceError(w, err, "invalid request body", h.logger)
		return
	}

	res, err := h.service.Create(r.Context(), body)
	if err != nil {
		if errors.Is(err, model.ErrBookingExists) {
			writeJSON(w, http.StatusOK, model.NewBookingNotice(body.String(model.BookingName)))
			return
		}
		writeServiceError(w, err, "failed to create booking", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// GetByID handles GET /bookings/{id} requests. An unknown id yields null.
func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "id")
	if err != nil {
		writeServiceError(w, err, "invalid path parameter", h.logger)
		return
	}

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve booking", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

// List handles GET /bookings?email= requests. The route is mounted behind
// the authentication gate, so an identity is always present.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeServiceError(w, model.ErrForbidden, "forbidden access", h.logger)
		return
	}

	bookings, err := h.service.ListForEmail(r.Context(), identity.Email, r.URL.Query().Get("email"))
	if err != nil {
		writeServiceError(w, err, "failed to retrieve bookings", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, bookings)
}
