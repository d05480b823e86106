package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avshorin/airport-api/config"
	"github.com/avshorin/airport-api/internal/auth"
	"github.com/avshorin/airport-api/internal/bootstrap"
	"github.com/avshorin/airport-api/internal/cache"
	"github.com/avshorin/airport-api/internal/kafka"
	"github.com/avshorin/airport-api/internal/repository"
	"github.com/avshorin/airport-api/internal/service/catalog"
	"github.com/avshorin/airport-api/internal/service/flights"
	"github.com/avshorin/airport-api/internal/service/orders"
	"github.com/avshorin/airport-api/internal/service/users"
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

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	tokens := auth.NewManager(cfg.Auth.Secret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	airportRepo := repository.NewAirportRepository(pool)
	typeRepo := repository.NewAirplaneTypeRepository(pool)
	crewRepo := repository.NewCrewRepository(pool)
	routeRepo := repository.NewRouteRepository(pool)
	airplaneRepo := repository.NewAirplaneRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	svc := bootstrap.Services{
		Catalog: catalog.NewService(airportRepo, typeRepo, crewRepo, routeRepo, airplaneRepo, redisCache, cfg.Uploads.Dir),
		Flights: flights.NewFlightService(flightRepo),
		Orders:  orders.NewOrderService(orderRepo, flightRepo, producer, cfg.Kafka.OrdersTopic),
		Users:   users.NewUserService(userRepo, tokens),
	}

	if err := bootstrap.Run(ctx, cfg, tokens, svc); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
