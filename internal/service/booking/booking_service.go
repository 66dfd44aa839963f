package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mayszaher/airportbooking/internal/domain"
	"github.com/mayszaher/airportbooking/internal/kafka"
	"github.com/mayszaher/airportbooking/internal/repository"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	ListForPassenger(ctx context.Context, email string) ([]domain.Booking, error)
	ModifyBooking(ctx context.Context, id string, newClass domain.CabinClass, newSeats int) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id string) (bool, error)
}

// Inventory is the slice of the flight service the orchestrator needs.
type Inventory interface {
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	ReserveSeats(ctx context.Context, flightID string, seats int) (bool, error)
	ReleaseSeats(ctx context.Context, flightID string, seats int) error
}

// Directory resolves and registers passengers.
type Directory interface {
	GetByEmail(ctx context.Context, email string) (*domain.Passenger, error)
	GetByID(ctx context.Context, id string) (*domain.Passenger, error)
	GetOrRegister(ctx context.Context, email, firstName, phone string) (*domain.Passenger, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	inventory          Inventory
	passengers         Directory
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	logger             *zap.Logger
}

type CreateBookingInput struct {
	Email     string            `json:"email"`
	FirstName string            `json:"first_name"`
	Phone     string            `json:"phone"`
	FlightID  string            `json:"flight_id"`
	Class     domain.CabinClass `json:"class"`
	Seats     int               `json:"seats"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithLogger(logger *zap.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.logger = logger
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	inventory Inventory,
	passengers Directory,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		inventory:    inventory,
		passengers:   passengers,
		producer:     producer,
		bookingTopic: bookingTopic,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking resolves the passenger, takes seats from the flight, prices
// the booking and persists it. Seat reservation and booking persistence span
// two stores; when the insert fails the reserved seats are released so no
// orphaned hold survives the call.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.Seats <= 0 {
		return nil, fmt.Errorf("%w: seats must be positive", domain.ErrInvalidArgument)
	}
	if input.Email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidArgument)
	}
	if !input.Class.Valid() {
		return nil, fmt.Errorf("%w: unknown cabin class %q", domain.ErrInvalidArgument, input.Class)
	}

	passenger, err := s.passengers.GetOrRegister(ctx, input.Email, input.FirstName, input.Phone)
	if err != nil {
		return nil, err
	}

	flight, err := s.inventory.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}

	ok, err := s.inventory.ReserveSeats(ctx, flight.ID, input.Seats)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("flight %s: %w", flight.ID, domain.ErrNoSeats)
	}

	booking := &domain.Booking{
		ID:          uuid.NewString(),
		FlightID:    flight.ID,
		PassengerID: passenger.ID,
		Seats:       input.Seats,
		Class:       input.Class,
		TotalCents:  input.Class.PriceCents(flight.PriceCents) * int64(input.Seats),
	}

	if err := s.bookings.Add(ctx, booking); err != nil {
		if relErr := s.inventory.ReleaseSeats(ctx, flight.ID, input.Seats); relErr != nil {
			s.logger.Error("release seats after failed persist",
				zap.String("flight_id", flight.ID), zap.Int("seats", input.Seats), zap.Error(relErr))
		}
		return nil, err
	}

	s.publish(ctx, kafka.EventBookingCreated, booking, passenger.Email)
	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.GetAll(ctx)
}

// ListForPassenger scans all bookings and keeps the ones owned by the
// passenger behind the email. Fine at this scale; index by passenger id
// before the dataset grows.
func (s *BookingService) ListForPassenger(ctx context.Context, email string) ([]domain.Booking, error) {
	passenger, err := s.passengers.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	all, err := s.bookings.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.Booking, 0)
	for _, b := range all {
		if b.PassengerID == passenger.ID {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// ModifyBooking changes class and seat count. Growing reserves the delta
// first, so an exhausted flight leaves both records untouched; shrinking
// releases the difference. A failed persist is compensated by undoing the
// inventory movement.
func (s *BookingService) ModifyBooking(ctx context.Context, id string, newClass domain.CabinClass, newSeats int) (*domain.Booking, error) {
	if newSeats <= 0 {
		return nil, fmt.Errorf("%w: seats must be positive", domain.ErrInvalidArgument)
	}
	if !newClass.Valid() {
		return nil, fmt.Errorf("%w: unknown cabin class %q", domain.ErrInvalidArgument, newClass)
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Cancelled {
		return nil, fmt.Errorf("%w: booking %s is cancelled", domain.ErrFailedPrecondition, id)
	}

	flight, err := s.inventory.GetByID(ctx, booking.FlightID)
	if err != nil {
		return nil, err
	}

	delta := newSeats - booking.Seats
	switch {
	case delta > 0:
		ok, err := s.inventory.ReserveSeats(ctx, flight.ID, delta)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("flight %s: %w", flight.ID, domain.ErrNoSeats)
		}
	case delta < 0:
		if err := s.inventory.ReleaseSeats(ctx, flight.ID, -delta); err != nil {
			return nil, err
		}
	}

	booking.Seats = newSeats
	booking.Class = newClass
	booking.TotalCents = newClass.PriceCents(flight.PriceCents) * int64(newSeats)

	if err := s.bookings.Update(ctx, booking); err != nil {
		s.undoSeatDelta(ctx, flight.ID, delta)
		return nil, err
	}

	s.publish(ctx, kafka.EventBookingModified, booking, "")
	return booking, nil
}

// emailFor resolves the passenger's email for a notification. A lookup
// failure costs the email, not the event.
func (s *BookingService) emailFor(ctx context.Context, passengerID string) string {
	passenger, err := s.passengers.GetByID(ctx, passengerID)
	if err != nil {
		s.logger.Warn("resolve passenger email",
			zap.String("passenger_id", passengerID), zap.Error(err))
		return ""
	}
	return passenger.Email
}

// CancelBooking is an idempotent no-op for missing or already cancelled
// bookings: it reports false and changes nothing. Otherwise the held seats go
// back to the flight and the booking keeps its seat count and class for
// audit.
func (s *BookingService) CancelBooking(ctx context.Context, id string) (bool, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if booking.Cancelled {
		return false, nil
	}

	if err := s.inventory.ReleaseSeats(ctx, booking.FlightID, booking.Seats); err != nil {
		return false, err
	}

	booking.Cancelled = true
	if err := s.bookings.Update(ctx, booking); err != nil {
		s.undoSeatDelta(ctx, booking.FlightID, -booking.Seats)
		return false, err
	}

	s.publish(ctx, kafka.EventBookingCancelled, booking, "")
	return true, nil
}

// undoSeatDelta reverses an inventory movement after a failed persist. Best
// effort: a failure here is logged, not returned, because the original error
// is the one the caller needs.
func (s *BookingService) undoSeatDelta(ctx context.Context, flightID string, delta int) {
	var err error
	switch {
	case delta > 0:
		err = s.inventory.ReleaseSeats(ctx, flightID, delta)
	case delta < 0:
		var ok bool
		ok, err = s.inventory.ReserveSeats(ctx, flightID, -delta)
		if err == nil && !ok {
			s.logger.Error("seats taken before they could be re-reserved",
				zap.String("flight_id", flightID), zap.Int("seats", -delta))
		}
	}
	if err != nil {
		s.logger.Error("undo seat delta after failed persist",
			zap.String("flight_id", flightID), zap.Int("delta", delta), zap.Error(err))
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking, email string) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	if email == "" {
		email = s.emailFor(ctx, booking.PassengerID)
	}
	event := kafka.BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		FlightID:    booking.FlightID,
		PassengerID: booking.PassengerID,
		Email:       email,
		Seats:       booking.Seats,
		Class:       string(booking.Class),
		TotalCents:  booking.TotalCents,
		Cancelled:   booking.Cancelled,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.ID, event); err != nil {
		s.logger.Warn("publish booking event",
			zap.String("type", eventType), zap.String("booking_id", booking.ID), zap.Error(err))
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event); err != nil {
			s.logger.Warn("publish notification event",
				zap.String("type", eventType), zap.String("booking_id", booking.ID), zap.Error(err))
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
