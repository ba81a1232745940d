package handler

import (
	"encoding/json"
	"net/http"

	"usedmarket/internal/model"
	"usedmarket/internal/service"

	"github.com/rs/zerolog"
)

// PaymentHandler handles payment intent and confirmation requests.
type PaymentHandler struct {
	service service.PaymentService
	logger  zerolog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(service service.PaymentService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger.With().Str("handler", "payment").Logger(),
	}
}

// CreateIntent handles POST /create-payment-intent requests.
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req model.PaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.Price == nil {
		writeServiceError(w, model.MissingField(model.BookingPrice), "price is required", h.logger)
		return
	}

	secret, err := h.service.CreateIntent(r.Context(), *req.Price)
	if err != nil {
		writeServiceError(w, err, "failed to create payment intent", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.PaymentIntentResponse{ClientSecret: secret})
}

// Confirm handles POST /payments requests.
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	body, err := decodeDocument(r)
	if err != nil {
		writeServiceError(w, err, "invalid request body", h.logger)
		return
	}

	res, err := h.service.Confirm(r.Context(), body)
	if err != nil {
		writeServiceError(w, err, "failed to confirm payment", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, res)
}
