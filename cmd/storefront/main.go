package main

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/storelab/storefront/cmd/storefront/container"
	"github.com/storelab/storefront/cmd/storefront/routes"
	"github.com/storelab/storefront/common/bootstrap"
	"github.com/storelab/storefront/common/db"
	commonmw "github.com/storelab/storefront/common/middleware"
	"github.com/storelab/storefront/common/server"
)

//go:embed schema.sql
var schemaSQL string

func main() {
	ctx := context.Background()

	// Bootstrap common components (config, logger, DB, cache, telemetry)
	components, err := bootstrap.Setup(ctx, "storefront",
		bootstrap.WithDBInitHook(applySchema),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap storefront: %v\n", err)
		os.Exit(1)
	}
	defer components.Shutdown(ctx)

	// Initialize service container (singleton pattern - all services created once)
	serviceContainer, err := container.NewContainer(components)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize service container: %v\n", err)
		os.Exit(1)
	}

	e := setupEcho()
	setupMiddleware(e, serviceContainer)
	setupHealthCheck(e, components)
	registerRoutes(e, serviceContainer)

	// Graceful shutdown wrapper around the Echo handler
	srv := server.New("storefront", components.Config.Service.Port, e, components.Logger)
	if err := srv.Start(); err != nil {
		components.Logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// applySchema applies the embedded schema on startup. Every statement is
// idempotent, so re-running against an existing database is safe.
func applySchema(database *db.DB) error {
	if _, err := database.Exec(context.Background(), schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// setupEcho initializes the Echo server with basic configuration
func setupEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	return e
}

// setupMiddleware configures all middleware for the Echo server
func setupMiddleware(e *echo.Echo, c *container.Container) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	cfg := c.Components.Config.RateLimit
	if cfg.Enabled {
		e.Use(commonmw.GlobalRateLimit(c.RateLimiter, cfg))
		e.Use(commonmw.ClientRateLimit(c.RateLimiter, cfg))
	}
}

// setupHealthCheck registers the health check endpoint
func setupHealthCheck(e *echo.Echo, components *bootstrap.Components) {
	e.GET("/health", func(c echo.Context) error {
		if err := components.Health(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
		}
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "storefront",
		})
	})
}

// registerRoutes registers all application routes using the service container
func registerRoutes(e *echo.Echo, serviceContainer *container.Container) {
	routes.RegisterTagRoutes(e, serviceContainer)
	routes.RegisterCatalogRoutes(e, serviceContainer)
	routes.RegisterCustomerRoutes(e, serviceContainer)
	routes.RegisterOrderRoutes(e, serviceContainer)
}
