package flights

import (
	"context"
	"errors"
	"testing"

	"github.com/mayszaher/airportbooking/internal/domain"
	"github.com/mayszaher/airportbooking/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Search(ctx context.Context, params repository.FlightSearch) ([]domain.Flight, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Add(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFlightRepository) ReserveSeats(ctx context.Context, flightID string, seats int) (bool, error) {
	args := m.Called(ctx, flightID, seats)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlightRepository) ReleaseSeats(ctx context.Context, flightID string, seats int) error {
	args := m.Called(ctx, flightID, seats)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestFlightService_List_CacheHit(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache, nil)

	ctx := context.Background()
	cached := []domain.Flight{{ID: "F1", Number: "AB123"}}
	mockCache.On("GetFlights", ctx).Return(cached, nil).Once()

	flights, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, cached, flights)
	mockRepo.AssertNotCalled(t, "List")
	mockCache.AssertExpectations(t)
}

func TestFlightService_List_CacheMiss(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache, nil)

	ctx := context.Background()
	stored := []domain.Flight{{ID: "F1", Number: "AB123"}}
	mockCache.On("GetFlights", ctx).Return(nil, nil).Once()
	mockRepo.On("List", ctx).Return(stored, nil).Once()
	mockCache.On("SetFlights", ctx, stored).Return(nil).Once()

	flights, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, stored, flights)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_GetByID_NotFound(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil, nil)

	ctx := context.Background()
	mockRepo.On("GetByID", ctx, "F1").Return(nil, domain.ErrNotFound).Once()

	flight, err := service.GetByID(ctx, "F1")

	assert.Nil(t, flight)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFlightService_IsAvailable(t *testing.T) {
	testCases := []struct {
		name      string
		flight    *domain.Flight
		repoErr   error
		requested int
		expected  bool
	}{
		{"enough seats", &domain.Flight{ID: "F1", AvailableSeats: 5}, nil, 3, true},
		{"exactly enough", &domain.Flight{ID: "F1", AvailableSeats: 3}, nil, 3, true},
		{"not enough seats", &domain.Flight{ID: "F1", AvailableSeats: 2}, nil, 3, false},
		{"flight missing", nil, domain.ErrNotFound, 1, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &MockFlightRepository{}
			service := NewFlightService(mockRepo, nil, nil)

			ctx := context.Background()
			mockRepo.On("GetByID", ctx, "F1").Return(tc.flight, tc.repoErr).Once()

			assert.Equal(t, tc.expected, service.IsAvailable(ctx, "F1", tc.requested))
		})
	}
}

func TestFlightService_ReserveSeats_Success(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache, nil)

	ctx := context.Background()
	mockRepo.On("ReserveSeats", ctx, "F1", 3).Return(true, nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	ok, err := service.ReserveSeats(ctx, "F1", 3)

	assert.NoError(t, err)
	assert.True(t, ok)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_ReserveSeats_Insufficient(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache, nil)

	ctx := context.Background()
	mockRepo.On("ReserveSeats", ctx, "F1", 10).Return(false, nil).Once()

	ok, err := service.ReserveSeats(ctx, "F1", 10)

	assert.NoError(t, err)
	assert.False(t, ok)
	mockCache.AssertNotCalled(t, "InvalidateFlights")
}

func TestFlightService_ReserveSeats_NotFound(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil, nil)

	ctx := context.Background()
	mockRepo.On("ReserveSeats", ctx, "F1", 1).Return(false, domain.ErrNotFound).Once()

	_, err := service.ReserveSeats(ctx, "F1", 1)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFlightService_ReleaseSeats(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache, nil)

	ctx := context.Background()
	mockRepo.On("ReleaseSeats", ctx, "F1", 2).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	assert.NoError(t, service.ReleaseSeats(ctx, "F1", 2))
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_Add_GeneratesID(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache, nil)

	ctx := context.Background()
	flight := &domain.Flight{
		Number:             "CD789",
		DepartureCountry:   "Germany",
		DestinationCountry: "France",
		DepartureAirport:   "Berlin",
		ArrivalAirport:     "Paris",
		PriceCents:         9900,
		AvailableSeats:     180,
	}
	mockRepo.On("Add", ctx, flight).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	err := service.Add(ctx, flight)

	assert.NoError(t, err)
	assert.NotEmpty(t, flight.ID)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_Add_Invalid(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil, nil)

	err := service.Add(context.Background(), &domain.Flight{})

	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	mockRepo.AssertNotCalled(t, "Add")
}

func TestFlightService_Search(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil, nil)

	ctx := context.Background()
	params := repository.FlightSearch{DepartureCountry: "USA", DestinationCountry: "UK"}
	found := []domain.Flight{{ID: "F9", Number: "ZZ999"}}
	mockRepo.On("Search", ctx, params).Return(found, nil).Once()

	flights, err := service.Search(ctx, params)

	assert.NoError(t, err)
	assert.Len(t, flights, 1)
	assert.Equal(t, "ZZ999", flights[0].Number)
}

func TestFlightService_Delete(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache, nil)

	ctx := context.Background()
	mockRepo.On("Delete", ctx, "F1").Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	assert.NoError(t, service.Delete(ctx, "F1"))
	mockRepo.AssertExpectations(t)
}

func TestFlightService_Delete_RepoError(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache, nil)

	ctx := context.Background()
	expectedErr := errors.New("database error")
	mockRepo.On("Delete", ctx, "F1").Return(expectedErr).Once()

	err := service.Delete(ctx, "F1")

	assert.Equal(t, expectedErr, err)
	mockCache.AssertNotCalled(t, "InvalidateFlights")
}
