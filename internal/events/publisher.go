package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/nekogravitycat/shareit-backend/internal/booking"
)

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes booking events to a Kafka topic keyed by booking id,
// so all events of one booking land on the same partition in order.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
}

// NewKafkaPublisher creates a publisher for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	return newKafkaPublisher(w, topic, logger)
}

func newKafkaPublisher(w messageWriter, topic string, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: w,
		topic:  topic,
		logger: logger.Named("events"),
	}
}

// Publish encodes ev as JSON and writes it synchronously.
func (p *KafkaPublisher) Publish(ctx context.Context, ev booking.Event) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", ev.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.BookingID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(ev.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s event to %s: %w", ev.Type, p.topic, err)
	}

	p.logger.Debug("event published",
		zap.String("type", ev.Type),
		zap.Int64("booking_id", ev.BookingID),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Closer is a publisher that owns a connection.
type Closer interface {
	booking.Publisher
	Close() error
}

// NewPublisher returns a Kafka publisher, or a no-op one when no brokers are configured.
func NewPublisher(brokers []string, topic string, logger *zap.Logger) Closer {
	if len(brokers) == 0 {
		logger.Info("no kafka brokers configured, booking events are disabled")
		return Nop{}
	}
	return NewKafkaPublisher(brokers, topic, logger)
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, booking.Event) error { return nil }

func (Nop) Close() error { return nil }
