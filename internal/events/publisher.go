package events

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"bazaar/internal/model"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "events").Logger()

// Order lifecycle actions published to the order topic.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// orderEvent is the wire format of an order lifecycle event.
type orderEvent struct {
	Action     string    `json:"action"`
	OrderID    string    `json:"order_id"`
	UserID     string    `json:"user_id"`
	ProductID  string    `json:"product_id"`
	Quantity   int       `json:"quantity"`
	TotalPrice string    `json:"total_price"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits order lifecycle events to Kafka. A nil Publisher is a
// no-op so the API runs without a broker.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher builds a Kafka-backed publisher, or nil when no brokers are
// configured.
func NewPublisher(brokers []string, topic string) *Publisher {
	if len(brokers) == 0 {
		return nil
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

// PublishOrderEvent writes one event keyed by order ID. Publishing is
// best-effort: failures are logged and never fail the request.
func (p *Publisher) PublishOrderEvent(ctx context.Context, order *model.Order, action string) {
	if p == nil || p.writer == nil {
		return
	}

	payload, err := json.Marshal(orderEvent{
		Action:     action,
		OrderID:    order.ID.String(),
		UserID:     order.UserID.String(),
		ProductID:  order.ProductID.String(),
		Quantity:   order.Quantity,
		TotalPrice: order.TotalPrice.String(),
		Status:     string(order.Status),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Error().Err(err).Msg("marshal order event")
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.ID.String()),
		Value: payload,
	})
	if err != nil {
		logger.Error().Err(err).Str("order_id", order.ID.String()).Str("action", action).Msg("publish order event")
	}
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
