package passengers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mayszaher/airportbooking/internal/domain"
	"github.com/mayszaher/airportbooking/internal/repository"
	"go.uber.org/zap"
)

type PassengerUseCase interface {
	GetByEmail(ctx context.Context, email string) (*domain.Passenger, error)
	GetByID(ctx context.Context, id string) (*domain.Passenger, error)
	Register(ctx context.Context, email, firstName, phone string) (*domain.Passenger, error)
	GetOrRegister(ctx context.Context, email, firstName, phone string) (*domain.Passenger, error)
	Update(ctx context.Context, passenger *domain.Passenger) error
	Delete(ctx context.Context, id string) error
}

type PassengerService struct {
	repo   repository.PassengerRepository
	logger *zap.Logger
}

func NewPassengerService(repo repository.PassengerRepository, logger *zap.Logger) *PassengerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PassengerService{repo: repo, logger: logger}
}

func (s *PassengerService) GetByEmail(ctx context.Context, email string) (*domain.Passenger, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *PassengerService) GetByID(ctx context.Context, id string) (*domain.Passenger, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PassengerService) Register(ctx context.Context, email, firstName, phone string) (*domain.Passenger, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidArgument)
	}

	passenger := &domain.Passenger{
		ID:        uuid.NewString(),
		Email:     email,
		FirstName: firstName,
		Phone:     phone,
	}
	if err := s.repo.Add(ctx, passenger); err != nil {
		return nil, err
	}
	s.logger.Info("passenger registered", zap.String("passenger_id", passenger.ID))
	return passenger, nil
}

// GetOrRegister returns the passenger for the email if one exists. When it
// does not, registration needs at least a first name or phone on top of the
// email; with nothing to build a record from it refuses rather than creating
// an empty one.
func (s *PassengerService) GetOrRegister(ctx context.Context, email, firstName, phone string) (*domain.Passenger, error) {
	passenger, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return passenger, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if firstName == "" && phone == "" {
		return nil, fmt.Errorf("%w: cannot register passenger %s without details", domain.ErrFailedPrecondition, email)
	}
	return s.Register(ctx, email, firstName, phone)
}

func (s *PassengerService) Update(ctx context.Context, passenger *domain.Passenger) error {
	if passenger.Email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrInvalidArgument)
	}
	return s.repo.Update(ctx, passenger)
}

func (s *PassengerService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

var _ PassengerUseCase = (*PassengerService)(nil)
