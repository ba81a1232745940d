package service

import (
	"context"
	"errors"
	"fmt"

	"usedmarket/internal/events"
	"usedmarket/internal/model"
	"usedmarket/internal/repository"

	"github.com/rs/zerolog"
)

// userService implements UserService.
type userService struct {
	repo      repository.UserRepository
	tokens    TokenIssuer
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(repo repository.UserRepository, tokens TokenIssuer, publisher events.Publisher, logger zerolog.Logger) UserService {
	return &userService{
		repo:      repo,
		tokens:    tokens,
		publisher: publisher,
		logger:    logger.With().Str("service", "user").Logger(),
	}
}

func (s *userService) Create(ctx context.Context, body model.Document) (*model.InsertResult, error) {
	email := body.String(model.UserEmail)
	if email == "" {
		return nil, model.MissingField(model.UserEmail)
	}

	doc := body.Clone()
	delete(doc, model.IDField)
	// Roles are assigned out-of-band only.
	delete(doc, model.UserRole)

	res, err := s.repo.Create(ctx, doc)
	if err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			s.logger.Info().Str("email", email).Msg("user already exists")
			return nil, model.ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().Str("user_id", res.InsertedID).Str("email", email).Msg("user created")

	publish(ctx, s.publisher, s.logger, events.New(events.TypeUserCreated, res.InsertedID, map[string]any{
		"email": email,
	}))

	return res, nil
}

func (s *userService) List(ctx context.Context) ([]model.Document, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) GetRole(ctx context.Context, email string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return "", nil
	}
	return user.String(model.UserRole), nil
}

func (s *userService) Verify(ctx context.Context, id string) (*model.UpdateResult, error) {
	res, err := s.repo.SetVerified(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}
	s.logger.Info().Str("user_id", id).Int64("modified", res.ModifiedCount).Msg("user verified")
	return res, nil
}

func (s *userService) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	res, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	s.logger.Info().Str("user_id", id).Int64("deleted", res.DeletedCount).Msg("user deleted")
	return res, nil
}

func (s *userService) IssueToken(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", model.ErrUserNotFound
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		s.logger.Warn().Str("email", email).Msg("token requested for unknown user")
		return "", model.ErrUserNotFound
	}

	token, err := s.tokens.Issue(email)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}
