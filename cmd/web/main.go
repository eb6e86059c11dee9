// cmd/web/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/session"
	redisdb "github.com/your-org/storefront/internal/infrastructure/database/redis"
	httpserver "github.com/your-org/storefront/internal/interfaces/http"
	"github.com/your-org/storefront/internal/interfaces/http/routes"
	"github.com/your-org/storefront/internal/pkg/apiclient"
	"github.com/your-org/storefront/internal/pkg/logging"
	"github.com/your-org/storefront/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg)
	logger.Infof("Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Local snapshot storage
	var snapshots storage.Store
	switch cfg.Storage.Backend {
	case "redis":
		redisClient, err := redisdb.NewConnection(cfg)
		if err != nil {
			logger.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		if err := redisClient.Health(); err != nil {
			logger.Fatalf("Redis health check failed: %v", err)
		}
		snapshots = storage.NewRedisStore(redisClient.GetClient(), cfg.Redis.Namespace, logger)
	default:
		fileStore, err := storage.NewFileStore(cfg.Storage.Path, logger)
		if err != nil {
			logger.Fatalf("Failed to open snapshot storage: %v", err)
		}
		snapshots = fileStore
	}

	// Backend API client, authenticated from the persisted token
	api := apiclient.New(cfg.APIBaseURL(), cfg.Backend.RequestTimeout, storage.TokenSource{Store: snapshots}, logger)

	// Stores
	sessionStore := session.NewStore(session.NewAPI(api), snapshots, logger)
	cartStore := cart.NewStore(cart.NewAPI(api), snapshots, logger)
	checkoutService := checkout.NewService(cartStore, checkout.NewAPI(api), logger)

	// Startup rehydration: exchange a persisted token for a fresh identity,
	// then seed the cart from the local snapshot or the remote cart.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), cfg.Backend.RequestTimeout)
	sessionStore.Rehydrate(startupCtx)
	if err := cartStore.Load(startupCtx); err != nil {
		logger.WithError(err).Warn("Starting with an empty cart")
	}
	cancelStartup()

	// Create and start HTTP server
	server := httpserver.NewServer(cfg, logger, &routes.Deps{
		Session:  sessionStore,
		Cart:     cartStore,
		Checkout: checkoutService,
		API:      api,
		Log:      logger,
	})

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	logger.Info("Server shutdown completed")
}
