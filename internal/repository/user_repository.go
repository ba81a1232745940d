package repository

import (
	"context"

	"usedmarket/internal/model"
)

type userRepository struct {
	users Collection
}

// NewUserRepository creates a repository over the users collection.
func NewUserRepository(store *Store) UserRepository {
	return &userRepository{users: store.Collection(model.CollectionUsers)}
}

func (r *userRepository) Create(ctx context.Context, doc model.Document) (*model.InsertResult, error) {
	return r.users.InsertOne(ctx, doc)
}

func (r *userRepository) FindAll(ctx context.Context) ([]model.Document, error) {
	return r.users.Find(ctx, model.Filter{}, nil)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (model.Document, error) {
	return r.users.FindOne(ctx, model.Filter{model.UserEmail: email})
}

func (r *userRepository) SetVerified(ctx context.Context, id string) (*model.UpdateResult, error) {
	return r.users.UpdateOne(ctx, ByID(id), model.Document{model.UserVerified: true})
}

func (r *userRepository) SetRole(ctx context.Context, email, role string) (*model.UpdateResult, error) {
	return r.users.UpdateOne(ctx, model.Filter{model.UserEmail: email}, model.Document{model.UserRole: role})
}

func (r *userRepository) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	return r.users.DeleteOne(ctx, ByID(id))
}
