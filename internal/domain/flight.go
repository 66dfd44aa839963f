package domain

import (
	"fmt"
	"strings"
	"time"
)

// CabinClass is a fare tier. The multiplier it applies to a flight's base
// price is fixed, not configured per flight.
type CabinClass string

const (
	ClassEconomy  CabinClass = "ECONOMY"
	ClassBusiness CabinClass = "BUSINESS"
	ClassFirst    CabinClass = "FIRST_CLASS"
)

func ParseCabinClass(s string) (CabinClass, error) {
	switch CabinClass(strings.ToUpper(s)) {
	case ClassEconomy:
		return ClassEconomy, nil
	case ClassBusiness:
		return ClassBusiness, nil
	case ClassFirst:
		return ClassFirst, nil
	}
	return "", fmt.Errorf("%w: unknown cabin class %q", ErrInvalidArgument, s)
}

// Valid reports whether c is one of the known fare tiers.
func (c CabinClass) Valid() bool {
	switch c {
	case ClassEconomy, ClassBusiness, ClassFirst:
		return true
	}
	return false
}

// PriceCents returns the per-seat fare for this class given the economy base
// price in cents. Business is 2.5x, first class 4x; the ratios are applied in
// integer arithmetic so cents stay exact. Unknown classes price as economy;
// callers taking class values from outside validate with Valid or
// ParseCabinClass first.
func (c CabinClass) PriceCents(baseCents int64) int64 {
	switch c {
	case ClassBusiness:
		return baseCents * 5 / 2
	case ClassFirst:
		return baseCents * 4
	case ClassEconomy:
		return baseCents
	}
	return baseCents
}

type Flight struct {
	ID                 string
	Number             string
	DepartureCountry   string
	DestinationCountry string
	DepartureAirport   string
	ArrivalAirport     string
	DepartureTime      time.Time
	PriceCents         int64
	AvailableSeats     int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (f *Flight) String() string {
	return fmt.Sprintf("%s - %s to %s - %s",
		f.Number, f.DepartureCountry, f.DestinationCountry, f.DepartureTime.Format("2006-01-02 15:04"))
}

// Validate reports every problem at once rather than stopping at the first.
func (f *Flight) Validate() error {
	var problems []string
	if f.Number == "" {
		problems = append(problems, "flight number is required")
	}
	if f.DepartureCountry == "" {
		problems = append(problems, "departure country is required")
	}
	if f.DestinationCountry == "" {
		problems = append(problems, "arrival country is required")
	}
	if f.DepartureAirport == "" {
		problems = append(problems, "departure airport is required")
	}
	if f.ArrivalAirport == "" {
		problems = append(problems, "arrival airport is required")
	}
	if f.PriceCents <= 0 {
		problems = append(problems, "price must be positive")
	}
	if f.AvailableSeats < 0 {
		problems = append(problems, "available seats must be non-negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidArgument, strings.Join(problems, "; "))
	}
	return nil
}
