package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/neupane-rajan/airline-reservation/api"
	"github.com/neupane-rajan/airline-reservation/config"
	"github.com/neupane-rajan/airline-reservation/internal/auth"
	"github.com/neupane-rajan/airline-reservation/internal/metrics"
	"github.com/neupane-rajan/airline-reservation/internal/service/booking"
	"github.com/neupane-rajan/airline-reservation/internal/service/flights"
	"github.com/neupane-rajan/airline-reservation/internal/service/stats"
	"github.com/neupane-rajan/airline-reservation/internal/service/users"
)

// Services groups everything the router needs.
type Services struct {
	Bookings booking.BookingUseCase
	Flights  flights.FlightUseCase
	Users    users.UserUseCase
	Stats    stats.StatsUseCase
	Tokens   *auth.TokenManager
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger, svc Services) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(cfg, logger, svc),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func NewRouter(cfg *config.Config, logger *zap.Logger, svc Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(logger), metrics.Middleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.HTTP.SwaggerFile != "" {
		router.StaticFile("/swagger/openapi.json", cfg.HTTP.SwaggerFile)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/openapi.json"))))
	}

	root := router.Group("/api")
	api.NewAuthHandler(svc.Users, logger).Register(root.Group("/auth"))

	authed := root.Group("")
	authed.Use(api.Authenticate(svc.Tokens))

	api.NewBookingHandler(svc.Bookings, logger).Register(authed.Group("/bookings"))
	api.NewFlightHandler(svc.Flights, logger).Register(
		authed.Group("/flights"),
		authed.Group("/flights", api.RequireAdmin()),
	)
	api.NewPassengerHandler(svc.Users, logger).Register(
		authed.Group("/passengers"),
		authed.Group("/passengers", api.RequireStaff()),
	)
	api.NewAdminHandler(svc.Stats, logger).Register(authed.Group("/admin", api.RequireAdmin()))

	return router
}
