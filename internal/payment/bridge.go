package payment

import (
	"context"
	"math"

	"usedmarket/internal/model"
)

// CardMethods is the payment method list sent with every intent.
var CardMethods = []string{"card"}

// Bridge requests payment intents from an external processor. It never marks
// anything as paid; confirmation arrives separately from the client.
type Bridge interface {
	// CreateIntent returns the client secret for an intent of amount minor units.
	CreateIntent(ctx context.Context, amount int64, currency string, methodTypes []string) (string, error)
}

// ToMinorUnits converts a major-unit price (dollars) into minor units (cents).
func ToMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

type disabledBridge struct{}

// NewDisabledBridge returns a bridge that refuses every request; used when no
// processor key is configured.
func NewDisabledBridge() Bridge {
	return disabledBridge{}
}

func (disabledBridge) CreateIntent(context.Context, int64, string, []string) (string, error) {
	return "", model.ErrPaymentsDisabled
}
