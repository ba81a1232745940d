package repository

import (
	"context"

	"usedmarket/internal/model"
)

type paymentRepository struct {
	payments Collection
}

// NewPaymentRepository creates a repository over the payments collection.
// Payments are append-only.
func NewPaymentRepository(store *Store) PaymentRepository {
	return &paymentRepository{payments: store.Collection(model.CollectionPayments)}
}

func (r *paymentRepository) Create(ctx context.Context, doc model.Document) (*model.InsertResult, error) {
	return r.payments.InsertOne(ctx, doc)
}
