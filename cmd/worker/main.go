package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mayszaher/airportbooking/config"
	"github.com/mayszaher/airportbooking/internal/email"
	"github.com/mayszaher/airportbooking/internal/kafka"
	"go.uber.org/zap"
)

// The worker tails the notifications topic and sends an email per booking
// event.
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

	consumer := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.NotificationsTopic, logger)
	defer consumer.Close()

	sender := email.NewSender()

	logger.Info("notification worker started", zap.String("topic", cfg.Kafka.NotificationsTopic))

	err = consumer.Consume(ctx, sender.Send)
	if err != nil && ctx.Err() == nil {
		logger.Fatal("consumer stopped", zap.Error(err))
	}
}
