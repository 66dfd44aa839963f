package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mayszaher/airportbooking/api"
	"github.com/mayszaher/airportbooking/config"
	"github.com/mayszaher/airportbooking/internal/service/booking"
	"github.com/mayszaher/airportbooking/internal/service/flights"
	"github.com/mayszaher/airportbooking/internal/service/passengers"
	"go.uber.org/zap"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(
	ctx context.Context,
	cfg *config.Config,
	flightSvc flights.FlightUseCase,
	passengerSvc passengers.PassengerUseCase,
	bookingSvc booking.BookingUseCase,
	logger *zap.Logger,
) error {
	router := newRouter(flightSvc, passengerSvc, bookingSvc)
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("http server started", zap.String("address", cfg.HTTP.Address))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func newRouter(
	flightSvc flights.FlightUseCase,
	passengerSvc passengers.PassengerUseCase,
	bookingSvc booking.BookingUseCase,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	api.NewFlightHandler(flightSvc).Register(router.Group("/flights"))
	api.NewPassengerHandler(passengerSvc).Register(router.Group("/passengers"))
	api.NewBookingHandler(bookingSvc).Register(router.Group("/bookings"))

	return router
}
