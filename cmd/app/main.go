package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emirhankarahan/flyticket/config"
	"github.com/emirhankarahan/flyticket/internal/auth"
	"github.com/emirhankarahan/flyticket/internal/bootstrap"
	"github.com/emirhankarahan/flyticket/internal/cache"
	"github.com/emirhankarahan/flyticket/internal/kafka"
	"github.com/emirhankarahan/flyticket/internal/repository"
	"github.com/emirhankarahan/flyticket/internal/service/booking"
	"github.com/emirhankarahan/flyticket/internal/service/cities"
	"github.com/emirhankarahan/flyticket/internal/service/flights"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis,
		time.Duration(cfg.Cache.CitiesTTLSeconds)*time.Second,
		time.Duration(cfg.Cache.FlightsTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	cityRepo := repository.NewCityRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)

	cityService := cities.NewCityService(cityRepo, redisCache)
	flightService := flights.NewFlightService(flightRepo, redisCache)
	bookingService := booking.NewBookingService(
		ticketRepo,
		flightRepo,
		redisCache,
		producer,
		cfg.Kafka.TicketEventsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithSeatLockTTL(time.Duration(cfg.Cache.SeatLockSeconds)*time.Second),
	)
	adminService := auth.NewAdminService(adminRepo, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	if err := bootstrap.Run(ctx, cfg, cityService, flightService, bookingService, adminService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
