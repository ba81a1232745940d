package repository

import (
	"context"

	"usedmarket/internal/model"
)

type productRepository struct {
	products Collection
}

// NewProductRepository creates a product repository over the products collection.
func NewProductRepository(store *Store) ProductRepository {
	return &productRepository{products: store.Collection(model.CollectionProducts)}
}

func (r *productRepository) Create(ctx context.Context, doc model.Document) (*model.InsertResult, error) {
	return r.products.InsertOne(ctx, doc)
}

func (r *productRepository) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	return r.products.DeleteOne(ctx, ByID(id))
}

func (r *productRepository) Find(ctx context.Context, filter model.Filter) ([]model.Document, error) {
	return r.products.Find(ctx, filter, nil)
}

func (r *productRepository) SetAdvertised(ctx context.Context, id string) (*model.UpdateResult, error) {
	return r.products.UpdateOne(ctx, ByID(id), model.Document{model.ProductAdvertised: true})
}

func (r *productRepository) MarkSold(ctx context.Context, id string) (*model.UpdateResult, error) {
	return r.products.UpdateOne(ctx, ByID(id), model.Document{model.ProductSellStatus: model.SellStatusSold})
}
