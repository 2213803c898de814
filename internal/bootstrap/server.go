package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/Domenick1991/planepal/api"
	"github.com/Domenick1991/planepal/config"
	"github.com/Domenick1991/planepal/internal/service/booking"
	"github.com/Domenick1991/planepal/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(cfg, flightSvc, bookingSvc),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func newRouter(cfg *config.Config, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	flightGroup := router.Group("/api/flights")
	api.NewFlightHandler(flightSvc).Register(flightGroup)

	bookingGroup := router.Group("/api/bookings", api.AuthRequired())
	api.NewBookingHandler(bookingSvc).Register(bookingGroup)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.HTTP.SwaggerFile != "" {
		router.StaticFile("/swagger/doc.json", cfg.HTTP.SwaggerFile)
		router.GET("/docs/*any", gin.WrapH(http.StripPrefix("/docs",
			httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))))
	}

	return router
}
