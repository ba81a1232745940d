package payment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// stripeBridge implements Bridge with Stripe payment intents.
type stripeBridge struct {
	api    *client.API
	logger zerolog.Logger
}

// NewStripeBridge creates a Stripe-backed bridge. backends may be nil to use
// the default Stripe endpoints.
func NewStripeBridge(secretKey string, backends *stripe.Backends, logger zerolog.Logger) Bridge {
	api := &client.API{}
	api.Init(secretKey, backends)

	return &stripeBridge{
		api:    api,
		logger: logger.With().Str("component", "stripe-bridge").Logger(),
	}
}

// CreateIntent creates a payment intent and returns its client secret.
func (b *stripeBridge) CreateIntent(ctx context.Context, amount int64, currency string, methodTypes []string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice(methodTypes),
	}
	params.Context = ctx

	intent, err := b.api.PaymentIntents.New(params)
	if err != nil {
		b.logger.Error().
			Err(err).
			Int64("amount", amount).
			Str("currency", currency).
			Msg("failed to create payment intent")
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	b.logger.Info().
		Str("intent_id", intent.ID).
		Int64("amount", amount).
		Str("currency", currency).
		Msg("payment intent created")

	return intent.ClientSecret, nil
}
