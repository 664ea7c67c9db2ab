package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/neupane-rajan/airline-reservation/config"
	"github.com/neupane-rajan/airline-reservation/internal/auth"
	"github.com/neupane-rajan/airline-reservation/internal/bootstrap"
	"github.com/neupane-rajan/airline-reservation/internal/payment"
	"github.com/neupane-rajan/airline-reservation/internal/repository"
	"github.com/neupane-rajan/airline-reservation/internal/service/booking"
	"github.com/neupane-rajan/airline-reservation/internal/service/flights"
	"github.com/neupane-rajan/airline-reservation/internal/service/stats"
	"github.com/neupane-rajan/airline-reservation/internal/service/users"
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

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)

	tokens := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL())
	gateway := payment.NewMockGateway(cfg.Payment.SuccessRate, cfg.Payment.Timeout())

	svc := bootstrap.Services{
		Bookings: booking.NewBookingService(bookingRepo, flightRepo, userRepo, gateway, logger),
		Flights:  flights.NewFlightService(flightRepo, logger),
		Users:    users.NewUserService(userRepo, tokens, logger),
		Stats:    stats.NewStatsService(statsRepo, logger),
		Tokens:   tokens,
	}

	if err := bootstrap.Run(ctx, cfg, logger, svc); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
