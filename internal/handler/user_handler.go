package handler

import (
	"errors"
	"net/http"

	"usedmarket/internal/model"
	"usedmarket/internal/service"

	"github.com/rs/zerolog"
)

// UserHandler handles user-related HTTP requests and token issuance.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("handler", "user").Logger(),
	}
}

// Create handles POST /users requests. A taken email answers 200 with an
// isUserExist notice rather than an error status.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodeDocument(r)
	if err != nil {
		writeServiceError(w, err, "invalid request body", h.logger)
		return
	}

	res, err := h.service.Create(r.Context(), body)
	if err != nil {
		if errors.Is(err, model.ErrUserExists) {
			writeJSON(w, http.StatusOK, model.UserNotice{
				IsUserExist: true,
				Message:     model.ErrUserExists.Message,
			})
			return
		}
		writeServiceError(w, err, "failed to create user", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// List handles GET /users requests.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to retrieve users", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// GetRole handles GET /users/role/{email} requests.
func (h *UserHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	email, err := urlParam(r, "email")
	if err != nil {
		writeServiceError(w, err, "invalid path parameter", h.logger)
		return
	}

	role, err := h.service.GetRole(r.Context(), email)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve role", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.RoleResponse{Role: role})
}

// Verify handles PATCH /users/{id} requests.
func (h *UserHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "id")
	if err != nil {
		writeServiceError(w, err, "invalid path parameter", h.logger)
		return
	}

	res, err := h.service.Verify(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to verify user", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// Delete handles DELETE /users/{id} requests.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "id")
	if err != nil {
		writeServiceError(w, err, "invalid path parameter", h.logger)
		return
	}

	res, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to delete user", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// IssueToken handles GET /jwt?email= requests.
func (h *UserHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.service.IssueToken(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			writeJSON(w, http.StatusForbidden, model.TokenResponse{AccessToken: ""})
			return
		}
		writeServiceError(w, err, "failed to issue token", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.TokenResponse{AccessToken: token})
}
