package flights

import (
	"context"

	"github.com/google/uuid"
	"github.com/mayszaher/airportbooking/internal/domain"
	"github.com/mayszaher/airportbooking/internal/repository"
	"go.uber.org/zap"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	Search(ctx context.Context, params repository.FlightSearch) ([]domain.Flight, error)
	Add(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id string) error
	IsAvailable(ctx context.Context, flightID string, seats int) bool
	ReserveSeats(ctx context.Context, flightID string, seats int) (bool, error)
	ReleaseSeats(ctx context.Context, flightID string, seats int) error
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo   repository.FlightRepository
	cache  Cache
	logger *zap.Logger
}

func NewFlightService(repo repository.FlightRepository, cache Cache, logger *zap.Logger) *FlightService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FlightService{repo: repo, cache: cache, logger: logger}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			s.logger.Warn("cache flights", zap.Error(err))
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Search(ctx context.Context, params repository.FlightSearch) ([]domain.Flight, error) {
	return s.repo.Search(ctx, params)
}

func (s *FlightService) Add(ctx context.Context, flight *domain.Flight) error {
	if err := flight.Validate(); err != nil {
		return err
	}
	if flight.ID == "" {
		flight.ID = uuid.NewString()
	}
	if err := s.repo.Add(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) Update(ctx context.Context, flight *domain.Flight) error {
	if err := flight.Validate(); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// IsAvailable fails closed: a missing flight or a repository error both
// report no availability.
func (s *FlightService) IsAvailable(ctx context.Context, flightID string, seats int) bool {
	flight, err := s.repo.GetByID(ctx, flightID)
	if err != nil {
		return false
	}
	return seats <= flight.AvailableSeats
}

// ReserveSeats is the sole path that consumes inventory. It returns false
// without mutation when fewer than the requested seats remain, and
// domain.ErrNotFound when the flight does not exist.
func (s *FlightService) ReserveSeats(ctx context.Context, flightID string, seats int) (bool, error) {
	ok, err := s.repo.ReserveSeats(ctx, flightID, seats)
	if err != nil {
		return false, err
	}
	if ok {
		s.invalidate(ctx)
	}
	return ok, nil
}

func (s *FlightService) ReleaseSeats(ctx context.Context, flightID string, seats int) error {
	if err := s.repo.ReleaseSeats(ctx, flightID, seats); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.logger.Warn("invalidate flights cache", zap.Error(err))
	}
}

var _ FlightUseCase = (*FlightService)(nil)
