package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

type BookingEvent struct {
	Type        string `json:"type"`
	BookingID   string `json:"booking_id"`
	FlightID    string `json:"flight_id"`
	PassengerID string `json:"passenger_id"`
	Email       string `json:"email"`
	Seats       int    `json:"seats"`
	Class       string `json:"class"`
	TotalCents  int64  `json:"total_cents"`
	Cancelled   bool   `json:"cancelled"`
}

const (
	EventBookingCreated   = "booking_created"
	EventBookingModified  = "booking_modified"
	EventBookingCancelled = "booking_cancelled"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
