package repository

import (
	"context"

	"usedmarket/internal/model"
)

// FindOptions tunes Find.
type FindOptions struct {
	// Projection limits returned fields; the identifier is always kept.
	Projection []string
}

// Collection is the data store gateway for one named collection.
type Collection interface {
	// Find returns every document matching filter, oldest first.
	Find(ctx context.Context, filter model.Filter, opts *FindOptions) ([]model.Document, error)

	// FindOne returns the first matching document, or nil when none matches.
	FindOne(ctx context.Context, filter model.Filter) (model.Document, error)

	// InsertOne stores a document under a new identifier.
	// Returns model.ErrDuplicate when a uniqueness constraint rejects it.
	InsertOne(ctx context.Context, doc model.Document) (*model.InsertResult, error)

	// UpdateOne sets top-level fields on the first matching document.
	UpdateOne(ctx context.Context, filter model.Filter, set model.Document) (*model.UpdateResult, error)

	// DeleteOne removes the first matching document.
	DeleteOne(ctx context.Context, filter model.Filter) (*model.DeleteResult, error)
}

// Transactor runs a function atomically against the store.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ProductRepository defines data access for product listings.
type ProductRepository interface {
	Create(ctx context.Context, doc model.Document) (*model.InsertResult, error)
	Delete(ctx context.Context, id string) (*model.DeleteResult, error)
	Find(ctx context.Context, filter model.Filter) ([]model.Document, error)
	SetAdvertised(ctx context.Context, id string) (*model.UpdateResult, error)
	MarkSold(ctx context.Context, id string) (*model.UpdateResult, error)
}

// CategoryRepository defines data access for product categories.
type CategoryRepository interface {
	// ListNames returns every category projected to its name.
	ListNames(ctx context.Context) ([]model.Document, error)

	// Create inserts a category; model.ErrDuplicate when the name exists.
	Create(ctx context.Context, name string) (*model.InsertResult, error)
}

// BookingRepository defines data access for bookings.
type BookingRepository interface {
	// Create inserts a booking; model.ErrDuplicate when (email, name) is taken.
	Create(ctx context.Context, doc model.Document) (*model.InsertResult, error)
	GetByID(ctx context.Context, id string) (model.Document, error)
	FindByEmail(ctx context.Context, email string) ([]model.Document, error)
	MarkPaid(ctx context.Context, id, transactionID string) (*model.UpdateResult, error)
}

// UserRepository defines data access for user accounts.
type UserRepository interface {
	// Create inserts a user; model.ErrDuplicate when the email is taken.
	Create(ctx context.Context, doc model.Document) (*model.InsertResult, error)
	FindAll(ctx context.Context) ([]model.Document, error)
	FindByEmail(ctx context.Context, email string) (model.Document, error)
	SetVerified(ctx context.Context, id string) (*model.UpdateResult, error)
	SetRole(ctx context.Context, email, role string) (*model.UpdateResult, error)
	Delete(ctx context.Context, id string) (*model.DeleteResult, error)
}

// PaymentRepository defines data access for payment records.
type PaymentRepository interface {
	Create(ctx context.Context, doc model.Document) (*model.InsertResult, error)
}
