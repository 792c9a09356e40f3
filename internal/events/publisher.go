package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"supply-chain-cli/internal/entity"
)

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher sends write events to a Kafka topic.
type KafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// New builds an event with a fresh ID.
func New(eventType, key string, payload any, now time.Time) entity.Event {
	return entity.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Key:        key,
		OccurredAt: now.UTC(),
		Payload:    payload,
	}
}

// OrderCreated describes a committed new_order call.
func OrderCreated(order entity.NewOrder, now time.Time) entity.Event {
	return New(entity.EventOrderCreated, fmt.Sprintf("order-created-%d", order.CustomerID), order, now)
}

// StockUpdated describes a committed update_units_in_stock call.
func StockUpdated(update entity.StockUpdate, now time.Time) entity.Event {
	return New(entity.EventStockUpdated, fmt.Sprintf("stock-updated-%d", update.ProductID), update, now)
}

func (p *KafkaPublisher) Publish(ctx context.Context, event entity.Event) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// order-created-3 or stock-updated-11
	msg := kafka.Message{
		Key:   []byte(event.Key),
		Value: eventJSON,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}

	err = p.writer.WriteMessages(ctx, msg)
	if err != nil {
		return err
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
