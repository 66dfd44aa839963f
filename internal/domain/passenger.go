package domain

import "time"

// Passenger is keyed by email for lookups; the id is minted on registration.
type Passenger struct {
	ID        string
	Email     string
	FirstName string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
