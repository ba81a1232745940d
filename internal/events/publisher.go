package events

import (
	"context"
	"time"
)

// Event types.
const (
	TypeBookingCreated   = "booking.created"
	TypeUserCreated      = "user.created"
	TypePaymentConfirmed = "payment.confirmed"
)

// Event is a marketplace fact emitted after a successful write.
type Event struct {
	Type       string         `json:"type"`
	Key        string         `json:"key"`
	OccurredAt time.Time      `json:"occurredAt"`
	Data       map[string]any `json:"data"`
}

// New stamps an event with the current time.
func New(eventType, key string, data map[string]any) Event {
	return Event{
		Type:       eventType,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Publisher delivers events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type nopPublisher struct{}

// NewNopPublisher returns a publisher that drops every event.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, Event) error { return nil }

func (nopPublisher) Close() error { return nil }
