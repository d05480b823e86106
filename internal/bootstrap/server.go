package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/avshorin/airport-api/api"
	"github.com/avshorin/airport-api/config"
	"github.com/avshorin/airport-api/internal/auth"
	"github.com/avshorin/airport-api/internal/service/catalog"
	"github.com/avshorin/airport-api/internal/service/flights"
	"github.com/avshorin/airport-api/internal/service/orders"
	"github.com/avshorin/airport-api/internal/service/users"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Services struct {
	Catalog *catalog.Service
	Flights flights.FlightUseCase
	Orders  orders.OrderUseCase
	Users   users.UserUseCase
}

// Run serves the REST API and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, tokens *auth.Manager, svc Services) error {
	engine := NewRouter(cfg, tokens, svc)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: engine,
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

func NewRouter(cfg *config.Config, tokens *auth.Manager, svc Services) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	if cfg.HTTP.SwaggerDir != "" {
		engine.StaticFile("/docs/swagger.json", filepath.Join(cfg.HTTP.SwaggerDir, "swagger.json"))
		engine.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/docs/swagger.json"))))
	}

	root := engine.Group("/api")

	userHandler := api.NewUserHandler(svc.Users)
	loginLimit := api.RateLimit(cfg.Auth.LoginRPS, cfg.Auth.LoginBurst)
	userHandler.RegisterPublic(root.Group("/user"), loginLimit)

	authed := root.Group("")
	authed.Use(api.Auth(tokens))
	adminOnly := api.AdminOnly()

	userHandler.RegisterMe(authed.Group("/user"))
	api.NewAirportHandler(svc.Catalog).Register(authed.Group("/airports"), adminOnly)
	api.NewAirplaneTypeHandler(svc.Catalog).Register(authed.Group("/airplanes-type"), adminOnly)
	api.NewCrewHandler(svc.Catalog).Register(authed.Group("/crew"), adminOnly)
	api.NewRouteHandler(svc.Catalog).Register(authed.Group("/routes"), adminOnly)
	api.NewAirplaneHandler(svc.Catalog).Register(authed.Group("/airplanes"), adminOnly)
	api.NewFlightHandler(svc.Flights).Register(authed.Group("/flights"), adminOnly)
	api.NewOrderHandler(svc.Orders).Register(authed.Group("/orders"))

	return engine
}
