package service

import (
	"context"

	"usedmarket/internal/model"
)

// ProductService defines operations on product listings.
type ProductService interface {
	// Create stores a listing as available and not advertised.
	Create(ctx context.Context, body model.Document) (*model.InsertResult, error)

	// Delete removes a listing; an unknown or invalid id deletes nothing.
	Delete(ctx context.Context, id string) (*model.DeleteResult, error)

	// List returns every listing, or only a seller's advertised available
	// listings when email is non-empty.
	List(ctx context.Context, email string) ([]model.Document, error)

	// ListByCategory returns listings in the named category.
	ListByCategory(ctx context.Context, category string) ([]model.Document, error)

	// ListAdvertised returns a seller's advertised available listings.
	ListAdvertised(ctx context.Context, email string) ([]model.Document, error)

	// Advertise flags a listing as advertised.
	Advertise(ctx context.Context, id string) (*model.UpdateResult, error)
}

// CategoryService defines read access to product categories.
type CategoryService interface {
	List(ctx context.Context) ([]model.Document, error)
}

// BookingService defines operations on purchase reservations.
type BookingService interface {
	// Create stores a booking unless the requester already booked the same
	// item, in which case it returns an ErrBookingExists-coded error.
	Create(ctx context.Context, body model.Document) (*model.InsertResult, error)

	// GetByID returns a booking or nil.
	GetByID(ctx context.Context, id string) (model.Document, error)

	// ListForEmail returns the bookings of email. requester is the
	// authenticated caller and must be the same address.
	ListForEmail(ctx context.Context, requester, email string) ([]model.Document, error)
}

// PaymentService defines payment intent creation and confirmation.
type PaymentService interface {
	// CreateIntent asks the processor for an intent for price (major units).
	CreateIntent(ctx context.Context, price float64) (string, error)

	// Confirm records a payment and marks its booking paid and its product sold.
	Confirm(ctx context.Context, body model.Document) (*model.InsertResult, error)
}

// UserService defines operations on user accounts.
type UserService interface {
	// Create stores a user unless the email is taken (ErrUserExists).
	Create(ctx context.Context, body model.Document) (*model.InsertResult, error)
	List(ctx context.Context) ([]model.Document, error)

	// GetRole returns the stored role for email, "" when unknown or unset.
	GetRole(ctx context.Context, email string) (string, error)
	Verify(ctx context.Context, id string) (*model.UpdateResult, error)
	Delete(ctx context.Context, id string) (*model.DeleteResult, error)

	// IssueToken signs an access token for an existing user (ErrUserNotFound otherwise).
	IssueToken(ctx context.Context, email string) (string, error)
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(email string) (string, error)
}
