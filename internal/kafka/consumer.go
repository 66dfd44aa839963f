package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mayszaher/airportbooking/config"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventHandler receives decoded booking events.
type EventHandler func(ctx context.Context, event BookingEvent) error

type Consumer struct {
	reader *kafka.Reader
	logger *zap.Logger
}

func NewConsumer(cfg config.KafkaConfig, topic string, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           cfg.Brokers,
			GroupID:           cfg.GroupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		logger: logger,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume reads booking events until the context is canceled or the handler
// fails. Messages that do not decode are logged and skipped; they would fail
// the same way on every redelivery.
func (c *Consumer) Consume(ctx context.Context, handler EventHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		if err := c.dispatch(ctx, msg, handler); err != nil {
			return err
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, msg kafka.Message, handler EventHandler) error {
	var event BookingEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Warn("decode booking event",
			zap.String("key", string(msg.Key)), zap.Error(err))
		return nil
	}
	return handler(ctx, event)
}
