package domain

import "time"

// Booking references a flight and a passenger by id; it owns neither.
// Cancellation is logical: the record stays around with seat count and class
// frozen at cancellation time.
type Booking struct {
	ID          string
	FlightID    string
	PassengerID string
	Seats       int
	Class       CabinClass
	TotalCents  int64
	Cancelled   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
