package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeMissingField     = "MISSING_FIELD"
	ErrCodeInvalidID        = "INVALID_ID"
	ErrCodeInvalidParam     = "INVALID_PARAM"
	ErrCodeDuplicate        = "DUPLICATE"
	ErrCodeBookingExists    = "BOOKING_EXISTS"
	ErrCodeUserExists       = "USER_EXISTS"
	ErrCodePaymentsDisabled = "PAYMENTS_DISABLED"
	ErrCodeUserNotFound     = "USER_NOT_FOUND"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError with the same code, so wrapped copies carrying
// a more specific message still compare equal to the sentinel.
func (e *DomainError) Is(target error) bool {
	var de *DomainError
	if !errors.As(target, &de) {
		return false
	}
	return de.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidID        = NewDomainError(ErrCodeInvalidID, "Identifier is not valid")
	ErrMissingField     = NewDomainError(ErrCodeMissingField, "A required field is missing")
	ErrDuplicate        = NewDomainError(ErrCodeDuplicate, "Document violates a uniqueness constraint")
	ErrBookingExists    = NewDomainError(ErrCodeBookingExists, "Booking already exists")
	ErrUserExists       = NewDomainError(ErrCodeUserExists, "User already exists")
	ErrPaymentsDisabled = NewDomainError(ErrCodePaymentsDisabled, "Payment processor is not configured")
	ErrUserNotFound     = NewDomainError(ErrCodeUserNotFound, "User not found")
	ErrForbidden        = NewDomainError(ErrCodeForbidden, "forbidden access")
)

// MissingField returns ErrMissingField naming the absent field.
func MissingField(field string) error {
	return NewDomainError(ErrCodeMissingField, field+" is required")
}
