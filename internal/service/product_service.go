package service

import (
	"context"
	"fmt"

	"usedmarket/internal/model"
	"usedmarket/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	repo   repository.ProductRepository
	logger zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		repo:   repo,
		logger: logger.With().Str("service", "product").Logger(),
	}
}

func (s *productService) Create(ctx context.Context, body model.Document) (*model.InsertResult, error) {
	if body == nil {
		return nil, model.MissingField("product")
	}

	res, err := s.repo.Create(ctx, model.NewListing(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", res.InsertedID).
		Str("email", body.String(model.ProductEmail)).
		Msg("product listed")
	return res, nil
}

func (s *productService) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	res, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}
	s.logger.Info().Str("product_id", id).Int64("deleted", res.DeletedCount).Msg("product deleted")
	return res, nil
}

func (s *productService) List(ctx context.Context, email string) ([]model.Document, error) {
	filter := model.Filter{}
	if email != "" {
		filter = model.AdvertisedFilter(email)
	}
	return s.find(ctx, filter)
}

func (s *productService) ListByCategory(ctx context.Context, category string) ([]model.Document, error) {
	return s.find(ctx, model.Filter{model.ProductCategory: category})
}

func (s *productService) ListAdvertised(ctx context.Context, email string) ([]model.Document, error) {
	return s.find(ctx, model.AdvertisedFilter(email))
}

func (s *productService) Advertise(ctx context.Context, id string) (*model.UpdateResult, error) {
	res, err := s.repo.SetAdvertised(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to advertise product: %w", err)
	}
	s.logger.Info().Str("product_id", id).Int64("modified", res.ModifiedCount).Msg("product advertised")
	return res, nil
}

func (s *productService) find(ctx context.Context, filter model.Filter) ([]model.Document, error) {
	products, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
