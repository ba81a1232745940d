package repository

import (
	"context"

	"usedmarket/internal/model"
)

type bookingRepository struct {
	bookings Collection
}

// NewBookingRepository creates a repository over the bookings collection.
func NewBookingRepository(store *Store) BookingRepository {
	return &bookingRepository{bookings: store.Collection(model.CollectionBookings)}
}

func (r *bookingRepository) Create(ctx context.Context, doc model.Document) (*model.InsertResult, error) {
	return r.bookings.InsertOne(ctx, doc)
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (model.Document, error) {
	return r.bookings.FindOne(ctx, ByID(id))
}

func (r *bookingRepository) FindByEmail(ctx context.Context, email string) ([]model.Document, error) {
	return r.bookings.Find(ctx, model.Filter{model.BookingEmail: email}, nil)
}

func (r *bookingRepository) MarkPaid(ctx context.Context, id, transactionID string) (*model.UpdateResult, error) {
	return r.bookings.UpdateOne(ctx, ByID(id), model.Document{
		model.BookingPaid:          true,
		model.BookingTransactionID: transactionID,
	})
}
