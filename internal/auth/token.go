package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingCredential means the request carried no Authorization header.
	ErrMissingCredential = errors.New("missing credential")
	// ErrInvalidCredential means the token failed signature or expiry checks.
	ErrInvalidCredential = errors.New("invalid credential")
)

// Claims is the token payload.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Identity is the caller decoded from a verified token.
type Identity struct {
	Email string
}

// TokenManager signs and verifies HS256 bearer tokens with a process-wide secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a token manager. ttl is the lifetime of issued tokens.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token embedding email.
func (m *TokenManager) Issue(email string) (string, error) {
	now := m.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Verify checks signature and expiry and returns the embedded identity.
func (m *TokenManager) Verify(token string) (Identity, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Email == "" {
		return Identity{}, ErrInvalidCredential
	}
	return Identity{Email: claims.Email}, nil
}

// VerifyHeader authenticates an Authorization header value of the form
// "Bearer <token>".
func (m *TokenManager) VerifyHeader(header string) (Identity, error) {
	if strings.TrimSpace(header) == "" {
		return Identity{}, ErrMissingCredential
	}

	_, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || strings.TrimSpace(token) == "" {
		return Identity{}, ErrInvalidCredential
	}
	return m.Verify(strings.TrimSpace(token))
}

type identityKey struct{}

// WithIdentity attaches a verified identity to ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity attached by the authentication gate.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
