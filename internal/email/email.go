package email

import (
	"context"
	"fmt"

	"github.com/mayszaher/airportbooking/internal/kafka"
)

// Sender renders booking notifications. Delivery is a stub; the worker only
// needs something that consumes the event stream.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if event.Email == "" {
		return nil
	}
	fmt.Printf("send email to %s about %s for booking %s (flight %s, %d seats, %s)\n",
		event.Email, event.Type, event.BookingID, event.FlightID, event.Seats, event.Class)
	return nil
}
