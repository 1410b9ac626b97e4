package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/bootstrap"
	"github.com/Domenick1991/airport/internal/cache"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/logger"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/Domenick1991/airport/internal/service/orders"
	"github.com/Domenick1991/airport/internal/service/users"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLog, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		appLog.WithError(err).Fatal("connect postgres")
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := repository.Migrate(ctx, pool); err != nil {
			appLog.WithError(err).Fatal("migrate database")
		}
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second)
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		appLog.WithError(err).Warn("redis unavailable, lists will be served uncached")
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		appLog.WithError(err).Warn("kafka unavailable, order events will be dropped")
	}

	airportRepo := repository.NewAirportRepository(pool)
	routeRepo := repository.NewRouteRepository(pool)
	airplaneTypeRepo := repository.NewAirplaneTypeRepository(pool)
	airplaneRepo := repository.NewAirplaneRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	crewRepo := repository.NewCrewRepository(pool)
	memberRepo := repository.NewFlightCrewMemberRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	catalogService := catalog.NewCatalogService(airportRepo, routeRepo, airplaneTypeRepo, airplaneRepo, redisCache, appLog)
	flightService := flights.NewFlightService(flightRepo, routeRepo, airplaneRepo, memberRepo, redisCache, appLog)
	crewService := flights.NewCrewService(crewRepo, memberRepo)
	orderService := orders.NewOrderService(
		orderRepo,
		ticketRepo,
		flightRepo,
		userRepo,
		producer,
		cfg.Kafka.OrdersTopic,
		appLog,
		orders.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	userService := users.NewUserService(userRepo, jwtManager, auth.BcryptHasher{}, cfg.Auth.MinPasswordLength, appLog)

	if cfg.Auth.StaffEmail != "" && cfg.Auth.StaffPassword != "" {
		if _, err := userService.EnsureStaff(ctx, users.Credentials{Email: cfg.Auth.StaffEmail, Password: cfg.Auth.StaffPassword}); err != nil {
			appLog.WithError(err).Fatal("ensure staff account")
		}
	}

	services := bootstrap.Services{
		Catalog: catalogService,
		Flights: flightService,
		Crews:   crewService,
		Orders:  orderService,
		Tickets: orderService,
		Users:   userService,
		Tokens:  jwtManager,
	}
	if err := bootstrap.Run(ctx, cfg, services, appLog); err != nil {
		appLog.WithError(err).Fatal("server error")
	}
}
