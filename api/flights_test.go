package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mayszaher/airportbooking/internal/domain"
	"github.com/mayszaher/airportbooking/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFlightUseCase is a mock implementation of flights.FlightUseCase
type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Search(ctx context.Context, params repository.FlightSearch) ([]domain.Flight, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Add(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightUseCase) Update(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightUseCase) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFlightUseCase) IsAvailable(ctx context.Context, flightID string, seats int) bool {
	args := m.Called(ctx, flightID, seats)
	return args.Bool(0)
}

func (m *MockFlightUseCase) ReserveSeats(ctx context.Context, flightID string, seats int) (bool, error) {
	args := m.Called(ctx, flightID, seats)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlightUseCase) ReleaseSeats(ctx context.Context, flightID string, seats int) error {
	args := m.Called(ctx, flightID, seats)
	return args.Error(0)
}

func TestFlightHandler_list(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights", nil)

	flights := []domain.Flight{
		{ID: "F1", Number: "AB123", DepartureCountry: "Germany", DestinationCountry: "France", PriceCents: 9900, AvailableSeats: 50},
	}
	mockService.On("List", c.Request.Context()).Return(flights, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_get(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "F1"}}
	c.Request = httptest.NewRequest("GET", "/flights/F1", nil)

	flight := &domain.Flight{ID: "F1", Number: "XY456", PriceCents: 9900, AvailableSeats: 50}
	mockService.On("GetByID", c.Request.Context(), "F1").Return(flight, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_get_NotFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "F404"}}
	c.Request = httptest.NewRequest("GET", "/flights/F404", nil)

	mockService.On("GetByID", c.Request.Context(), "F404").Return(nil, domain.ErrNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFlightHandler_availability(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "F1"}}
	c.Request = httptest.NewRequest("GET", "/flights/F1/availability?seats=3", nil)

	mockService.On("IsAvailable", c.Request.Context(), "F1", 3).Return(true)

	handler.availability(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"available": true}`, w.Body.String())
}

func TestFlightHandler_search(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights/search?departure_country=USA&destination_country=UK", nil)

	expected := repository.FlightSearch{DepartureCountry: "USA", DestinationCountry: "UK"}
	found := []domain.Flight{{ID: "F9", Number: "ZZ999"}}
	mockService.On("Search", c.Request.Context(), expected).Return(found, nil)

	handler.search(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []domain.Flight
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 1)
	assert.Equal(t, "ZZ999", response[0].Number)
}
