package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// publishTimeout bounds a single publish so an unreachable broker cannot
// hold up the request that emitted the event.
const publishTimeout = 2 * time.Second

// messageWriter is the subset of *kafka.Writer used here.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaPublisher publishes JSON events to one topic, keyed by Event.Key.
type kafkaPublisher struct {
	writer  messageWriter
	topic   string
	timeout time.Duration
	logger  zerolog.Logger
}

// NewKafkaPublisher creates a publisher writing to topic on brokers.
func NewKafkaPublisher(brokers []string, topic string, logger zerolog.Logger) Publisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: publishTimeout,
		MaxAttempts:  3,
	}
	return newKafkaPublisher(w, topic, logger)
}

func newKafkaPublisher(w messageWriter, topic string, logger zerolog.Logger) *kafkaPublisher {
	return &kafkaPublisher{
		writer:  w,
		topic:   topic,
		timeout: publishTimeout,
		logger:  logger.With().Str("component", "kafka-publisher").Str("topic", topic).Logger(),
	}
}

// Publish writes event synchronously, giving up after the publish timeout.
func (p *kafkaPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		p.logger.Error().Err(err).Str("type", event.Type).Str("key", event.Key).Msg("failed to publish event")
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	p.logger.Debug().Str("type", event.Type).Str("key", event.Key).Msg("event published")
	return nil
}

// Close flushes and closes the underlying writer.
func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}
