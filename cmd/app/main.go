package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/mayszaher/airportbooking/config"
	"github.com/mayszaher/airportbooking/internal/bootstrap"
	"github.com/mayszaher/airportbooking/internal/cache"
	"github.com/mayszaher/airportbooking/internal/kafka"
	"github.com/mayszaher/airportbooking/internal/repository"
	"github.com/mayszaher/airportbooking/internal/service/booking"
	"github.com/mayszaher/airportbooking/internal/service/flights"
	"github.com/mayszaher/airportbooking/internal/service/passengers"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	flightsTTL := time.Duration(cfg.Cache.FlightsTTLSeconds) * time.Second
	redisCache := cache.NewRedisCache(cfg.Redis, flightsTTL)

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	flightService := flights.NewFlightService(flightRepo, redisCache, logger)
	passengerService := passengers.NewPassengerService(passengerRepo, logger)
	bookingService := booking.NewBookingService(
		bookingRepo,
		flightService,
		passengerService,
		producer,
		cfg.Kafka.BookingEventsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithLogger(logger),
	)

	if err := bootstrap.Run(ctx, cfg, flightService, passengerService, bookingService, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
