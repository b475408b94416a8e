package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"slotdesk/pkg/logger"

	"github.com/segmentio/kafka-go"
)

const (
	TypeBookingCreated   = "booking.created"
	TypeBookingCancelled = "booking.cancelled"
)

// Event is the wire shape of a booking lifecycle notification.
type Event struct {
	Type             string `json:"type"`
	Phone            string `json:"phone"`
	ConfirmationCode string `json:"confirmationCode,omitempty"`
	SlotRowIDs       []int  `json:"slotRowIds,omitempty"`
	SignupRowID      int    `json:"signupRowId,omitempty"`
	At               string `json:"at"`
}

// Producer publishes booking events to Kafka, keyed by phone so one
// actor's events stay ordered. Publishing is best-effort: failures are
// the caller's to log, never to surface to the booking user.
type Producer struct {
	writer *kafka.Writer
	log    *logger.Logger
}

func NewProducer(brokers []string, topic string, log *logger.Logger) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error("kafka producer error", "detail", fmt.Sprintf(msg, args...))
		}),
	}

	return &Producer{writer: writer, log: log}, nil
}

func (p *Producer) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.Phone),
		Value: payload,
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
