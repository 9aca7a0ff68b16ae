package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/emirhankarahan/flyticket/api"
	"github.com/emirhankarahan/flyticket/config"
	"github.com/emirhankarahan/flyticket/internal/auth"
	"github.com/emirhankarahan/flyticket/internal/service/booking"
	"github.com/emirhankarahan/flyticket/internal/service/cities"
	"github.com/emirhankarahan/flyticket/internal/service/flights"
	"github.com/gin-gonic/gin"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, citySvc cities.CityUseCase, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, adminSvc auth.AdminUseCase) error {
	router := NewRouter(citySvc, flightSvc, bookingSvc, adminSvc)

	httpServer := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func NewRouter(citySvc cities.CityUseCase, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, adminSvc auth.AdminUseCase) *gin.Engine {
	router := gin.Default()

	api.NewCityHandler(citySvc).Register(router.Group("/api/cities"))
	api.NewFlightHandler(flightSvc, adminSvc).Register(router.Group("/api/flights"))
	api.NewTicketHandler(bookingSvc, adminSvc).Register(router.Group("/api/tickets"))
	api.NewAdminHandler(adminSvc).Register(router.Group("/api/admin"))

	return router
}
