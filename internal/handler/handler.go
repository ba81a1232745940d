package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"usedmarket/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	ev := logger.Warn()
	if status >= http.StatusInternalServerError {
		ev = logger.Error()
	}
	ev.Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// writeServiceError maps a service error onto a status code. Anything that
// is not a known domain error is reported as a 500 with a generic message.
func writeServiceError(w http.ResponseWriter, err error, fallback string, logger zerolog.Logger) {
	var de *model.DomainError
	if !errors.As(err, &de) {
		logger.Error().Err(err).Msg(fallback)
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
			Error:   model.ErrCodeInternalError,
			Message: fallback,
		})
		return
	}

	status := http.StatusInternalServerError
	switch de.Code {
	case model.ErrCodeInvalidJSON, model.ErrCodeMissingField, model.ErrCodeInvalidID, model.ErrCodeInvalidParam:
		status = http.StatusBadRequest
	case model.ErrCodeUnauthorised:
		status = http.StatusUnauthorized
	case model.ErrCodeForbidden, model.ErrCodeUserNotFound:
		status = http.StatusForbidden
	case model.ErrCodeBookingExists, model.ErrCodeUserExists, model.ErrCodeDuplicate:
		status = http.StatusConflict
	case model.ErrCodePaymentsDisabled:
		status = http.StatusServiceUnavailable
	}

	logger.Warn().Str("code", de.Code).Int("status", status).Msg(de.Message)
	writeJSON(w, status, model.ErrorResponse{Error: de.Code, Message: de.Message})
}

// decodeDocument reads a JSON object body.
func decodeDocument(r *http.Request) (model.Document, error) {
	var doc model.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		return nil, model.NewDomainError(model.ErrCodeInvalidJSON, "invalid request body")
	}
	if doc == nil {
		return nil, model.NewDomainError(model.ErrCodeInvalidJSON, "request body must be a JSON object")
	}
	return doc, nil
}

// urlParam returns the decoded route parameter. chi matches against
// URL.RawPath when it is set, so only then is the segment still escaped.
func urlParam(r *http.Request, key string) (string, error) {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value, nil
	}
	value, err := url.PathUnescape(value)
	if err != nil {
		return "", model.NewDomainError(model.ErrCodeInvalidParam, "invalid "+key+" in path")
	}
	return value, nil
}
