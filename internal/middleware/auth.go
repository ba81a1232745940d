package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"usedmarket/internal/auth"
	"usedmarket/internal/model"

	"github.com/rs/zerolog"
)

// TokenVerifier checks an Authorization header value.
type TokenVerifier interface {
	VerifyHeader(header string) (auth.Identity, error)
}

// RoleLookup resolves the stored role of a user.
type RoleLookup interface {
	GetRole(ctx context.Context, email string) (string, error)
}

// Authenticate rejects requests without a valid bearer token and attaches
// the token's identity to the request context. A missing header is a 401,
// a token that fails verification a 403.
func Authenticate(verifier TokenVerifier, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := verifier.VerifyHeader(r.Header.Get("Authorization"))
			if err != nil {
				if errors.Is(err, auth.ErrMissingCredential) {
					logger.Warn().Str("path", r.URL.Path).Msg("missing credential")
					deny(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "unauthorized access")
					return
				}
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("invalid credential")
				deny(w, http.StatusForbidden, model.ErrCodeForbidden, "forbidden access")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		})
	}
}

// RequireAdmin admits only identities whose stored role is admin. It must be
// mounted after Authenticate.
func RequireAdmin(lookup RoleLookup, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := auth.IdentityFrom(r.Context())
			if !ok {
				deny(w, http.StatusForbidden, model.ErrCodeForbidden, "forbidden access")
				return
			}

			role, err := lookup.GetRole(r.Context(), identity.Email)
			if err != nil {
				logger.Error().Err(err).Str("email", identity.Email).Msg("failed to look up role")
				deny(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to verify role")
				return
			}
			if role != model.RoleAdmin {
				logger.Warn().
					Str("email", identity.Email).
					Str("role", role).
					Str("path", r.URL.Path).
					Msg("admin route refused")
				deny(w, http.StatusForbidden, model.ErrCodeForbidden, "forbidden access")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func deny(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: code, Message: message})
}
