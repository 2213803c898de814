package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/planepal/config"
	"github.com/Domenick1991/planepal/internal/email"
	"github.com/Domenick1991/planepal/internal/kafka"
	"github.com/Domenick1991/planepal/pkg/logger"
)

// The worker consumes committed booking confirmations from the notifications
// topic and sends the reservation email.
func main() {
	log := logger.NewLogger()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatal("load config", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewNotificationConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, log)
	defer consumer.Close()

	emailSender := email.NewSender(log)

	if err := consumer.Consume(ctx, func(ctx context.Context, event kafka.BookingNotification) error {
		return emailSender.Send(ctx, event)
	}); err != nil && ctx.Err() == nil {
		log.Error("consumer stopped", "error", err)
	}
}
