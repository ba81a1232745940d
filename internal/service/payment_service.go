package service

import (
	"context"
	"fmt"

	"usedmarket/internal/events"
	"usedmarket/internal/model"
	"usedmarket/internal/payment"
	"usedmarket/internal/repository"

	"github.com/rs/zerolog"
)

// paymentService implements PaymentService.
type paymentService struct {
	tx        repository.Transactor
	payments  repository.PaymentRepository
	bookings  repository.BookingRepository
	products  repository.ProductRepository
	bridge    payment.Bridge
	currency  string
	publisher events.Publisher
	logger    zerolog.Logger
}

// PaymentDeps groups the collaborators of the payment service.
type PaymentDeps struct {
	Tx        repository.Transactor
	Payments  repository.PaymentRepository
	Bookings  repository.BookingRepository
	Products  repository.ProductRepository
	Bridge    payment.Bridge
	Currency  string
	Publisher events.Publisher
}

// NewPaymentService creates a new payment service.
func NewPaymentService(deps PaymentDeps, logger zerolog.Logger) PaymentService {
	return &paymentService{
		tx:        deps.Tx,
		payments:  deps.Payments,
		bookings:  deps.Bookings,
		products:  deps.Products,
		bridge:    deps.Bridge,
		currency:  deps.Currency,
		publisher: deps.Publisher,
		logger:    logger.With().Str("service", "payment").Logger(),
	}
}

func (s *paymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	amount := payment.ToMinorUnits(price)

	secret, err := s.bridge.CreateIntent(ctx, amount, s.currency, payment.CardMethods)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	return secret, nil
}

// Confirm runs the payment insert and both side-effect updates in one
// transaction, so a failure leaves no partial state behind.
func (s *paymentService) Confirm(ctx context.Context, body model.Document) (*model.InsertResult, error) {
	bookingID := body.String(model.PaymentBookingID)
	productID := body.String(model.PaymentProductID)
	transactionID := body.String(model.PaymentTransactionID)

	switch {
	case bookingID == "":
		return nil, model.MissingField(model.PaymentBookingID)
	case productID == "":
		return nil, model.MissingField(model.PaymentProductID)
	case transactionID == "":
		return nil, model.MissingField(model.PaymentTransactionID)
	}

	doc := body.Clone()
	delete(doc, model.IDField)

	var (
		res     *model.InsertResult
		booking *model.UpdateResult
		product *model.UpdateResult
	)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if res, err = s.payments.Create(ctx, doc); err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
		if booking, err = s.bookings.MarkPaid(ctx, bookingID, transactionID); err != nil {
			return fmt.Errorf("mark booking paid: %w", err)
		}
		if product, err = s.products.MarkSold(ctx, productID); err != nil {
			return fmt.Errorf("mark product sold: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("booking_id", bookingID).
			Str("product_id", productID).
			Str("transaction_id", transactionID).
			Msg("payment confirmation rolled back")
		return nil, fmt.Errorf("failed to confirm payment: %w", err)
	}

	log := s.logger.Info()
	if booking.MatchedCount == 0 || product.MatchedCount == 0 {
		log = s.logger.Warn()
	}
	log.
		Str("payment_id", res.InsertedID).
		Str("booking_id", bookingID).
		Str("product_id", productID).
		Int64("bookings_matched", booking.MatchedCount).
		Int64("products_matched", product.MatchedCount).
		Msg("payment confirmed")

	publish(ctx, s.publisher, s.logger, events.New(events.TypePaymentConfirmed, bookingID, map[string]any{
		"paymentId":     res.InsertedID,
		"bookingId":     bookingID,
		"productId":     productID,
		"transactionId": transactionID,
	}))

	return res, nil
}
