package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/planepal/config"
	"github.com/Domenick1991/planepal/internal/bootstrap"
	"github.com/Domenick1991/planepal/internal/cache"
	"github.com/Domenick1991/planepal/internal/kafka"
	"github.com/Domenick1991/planepal/internal/provider"
	"github.com/Domenick1991/planepal/internal/repository"
	"github.com/Domenick1991/planepal/internal/service/booking"
	"github.com/Domenick1991/planepal/internal/service/flights"
	"github.com/Domenick1991/planepal/internal/service/sync"
	"github.com/Domenick1991/planepal/pkg/logger"
	"github.com/Domenick1991/planepal/pkg/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
)

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

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal("connect postgres", "error", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	m := metrics.NewMetrics("planepal")

	catalogRepo := repository.NewCatalogRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	providerClient := provider.NewClient(cfg.Provider)
	syncService := sync.NewSyncService(providerClient, catalogRepo, redisCache, log, m)
	scheduler := sync.NewScheduler(syncService, time.Duration(cfg.Sync.IntervalHours)*time.Hour, log)
	go scheduler.Run(ctx)

	flightService := flights.NewFlightService(catalogRepo, syncService, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		userRepo,
		catalogRepo,
		producer,
		cfg.Kafka.NotificationsTopic,
		log,
		booking.WithMetrics(m),
	)

	if err := bootstrap.Run(ctx, cfg, flightService, bookingService); err != nil {
		log.Fatal("server error", "error", err)
	}
}
