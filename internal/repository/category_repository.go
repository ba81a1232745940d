package repository

import (
	"context"

	"usedmarket/internal/model"
)

type categoryRepository struct {
	categories Collection
}

// NewCategoryRepository creates a repository over the productCategories collection.
func NewCategoryRepository(store *Store) CategoryRepository {
	return &categoryRepository{categories: store.Collection(model.CollectionProductCategories)}
}

func (r *categoryRepository) ListNames(ctx context.Context) ([]model.Document, error) {
	return r.categories.Find(ctx, model.Filter{}, &FindOptions{Projection: []string{model.CategoryName}})
}

func (r *categoryRepository) Create(ctx context.Context, name string) (*model.InsertResult, error) {
	return r.categories.InsertOne(ctx, model.Document{model.CategoryName: name})
}
