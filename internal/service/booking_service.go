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

// bookingService implements BookingService.
type bookingService struct {
	repo      repository.BookingRepository
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewBookingService creates a new booking service.
func NewBookingService(repo repository.BookingRepository, publisher events.Publisher, logger zerolog.Logger) BookingService {
	return &bookingService{
		repo:      repo,
		publisher: publisher,
		logger:    logger.With().Str("service", "booking").Logger(),
	}
}

func (s *bookingService) Create(ctx context.Context, body model.Document) (*model.InsertResult, error) {
	email := body.String(model.BookingEmail)
	name := body.String(model.BookingName)
	if email == "" {
		return nil, model.MissingField(model.BookingEmail)
	}
	if name == "" {
		return nil, model.MissingField(model.BookingName)
	}

	doc := body.Clone()
	delete(doc, model.IDField)

	// The unique (email, name) index makes the duplicate check atomic.
	res, err := s.repo.Create(ctx, doc)
	if err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			s.logger.Info().Str("email", email).Str("name", name).Msg("duplicate booking rejected")
			notice := model.NewBookingNotice(name)
			return nil, model.NewDomainError(model.ErrCodeBookingExists, notice.Message)
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.logger.Info().Str("booking_id", res.InsertedID).Str("email", email).Msg("booking created")

	publish(ctx, s.publisher, s.logger, events.New(events.TypeBookingCreated, res.InsertedID, map[string]any{
		"email": email,
		"name":  name,
	}))

	return res, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (model.Document, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrInvalidID) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (s *bookingService) ListForEmail(ctx context.Context, requester, email string) ([]model.Document, error) {
	if email != requester {
		s.logger.Warn().
			Str("requester", requester).
			Str("email", email).
			Msg("booking list requested for another identity")
		return nil, model.ErrForbidden
	}

	bookings, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// publish emits an event after a committed write. Delivery failures are
// logged; the write already happened and the client still gets its result.
func publish(ctx context.Context, p events.Publisher, logger zerolog.Logger, event events.Event) {
	if err := p.Publish(ctx, event); err != nil {
		logger.Warn().Err(err).Str("event", event.Type).Str("key", event.Key).Msg("event not delivered")
	}
}
