package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/airport/api"
	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/logger"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/Domenick1991/airport/internal/service/orders"
	"github.com/Domenick1991/airport/internal/service/users"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Services is everything the HTTP layer dispatches to.
type Services struct {
	Catalog catalog.CatalogUseCase
	Flights flights.FlightUseCase
	Crews   flights.CrewUseCase
	Orders  orders.OrderUseCase
	Tickets orders.TicketUseCase
	Users   users.UserUseCase
	Tokens  api.TokenValidator
}

// Run starts the HTTP server and blocks until ctx is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, svc Services, log *logger.Logger) error {
	srv := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      NewRouter(cfg, svc, log),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.HTTP.IdleTimeoutSeconds) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("address", cfg.HTTP.Address).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSeconds)*time.Second)
		defer cancel()
		log.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter builds the gin engine with the middleware chain and every resource group.
func NewRouter(cfg *config.Config, svc Services, log *logger.Logger) *gin.Engine {
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.Security))
	if cfg.Security.RateLimitEnabled {
		router.Use(rateLimitMiddleware(cfg.Security, log))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/swagger", cfg.HTTP.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/airport.swagger.json"))))
	}

	v := router.Group("")
	v.Use(api.IdentityMiddleware(svc.Tokens, log))

	api.NewAirportHandler(svc.Catalog).Register(v.Group("/airports"))
	api.NewRouteHandler(svc.Catalog, svc.Flights).Register(v.Group("/routes"))
	api.NewAirplaneTypeHandler(svc.Catalog).Register(v.Group("/airplane_types"))
	api.NewAirplaneHandler(svc.Catalog).Register(v.Group("/airplanes"))
	api.NewFlightHandler(svc.Flights).Register(v.Group("/flights"))
	api.NewCrewHandler(svc.Crews).Register(v.Group("/crews"))
	api.NewFlightCrewMemberHandler(svc.Crews).Register(v.Group("/flight_crew_members"))
	api.NewOrderHandler(svc.Orders).Register(v.Group("/orders"))
	api.NewTicketHandler(svc.Tickets).Register(v.Group("/tickets"))
	api.NewUserHandler(svc.Users).Register(v.Group("/users"))

	return router
}
