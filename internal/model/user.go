package model

// User document fields.
const (
	UserEmail    = "email"
	UserRole     = "role"
	UserVerified = "isVerified"
)

// RoleAdmin is the only role the API distinguishes.
const RoleAdmin = "admin"

// UserNotice is returned instead of an insert result when the email is taken.
type UserNotice struct {
	IsUserExist bool   `json:"isUserExist"`
	Message     string `json:"message"`
}

// RoleResponse is the body of GET /users/role/{email}. An unknown user or a
// user without a role yields {}.
type RoleResponse struct {
	Role string `json:"role,omitempty"`
}

// TokenResponse is the body of GET /jwt.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}
