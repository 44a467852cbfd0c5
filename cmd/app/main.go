package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/gameinventory/internal/auth"
	"github.com/osse101/gameinventory/internal/cache"
	"github.com/osse101/gameinventory/internal/config"
	"github.com/osse101/gameinventory/internal/database"
	"github.com/osse101/gameinventory/internal/database/postgres"
	"github.com/osse101/gameinventory/internal/event"
	"github.com/osse101/gameinventory/internal/inventory"
	"github.com/osse101/gameinventory/internal/item"
	"github.com/osse101/gameinventory/internal/logger"
	"github.com/osse101/gameinventory/internal/server"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Service failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "gameinventory",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.GetDBConnString())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}

	redisCache := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		// The cache is an optimization, not a dependency: start degraded
		slog.Warn("Redis not reachable, continuing with cold cache", "error", err)
	}

	publisher := event.NewPublisher(cfg.KafkaBrokers, cfg.ItemUpdatesTopic)
	defer func() {
		if err := publisher.Close(); err != nil {
			slog.Error("Failed to close event publisher", "error", err)
		}
	}()

	itemRepo := postgres.NewItemRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)

	itemService := item.NewService(itemRepo, redisCache, cfg.CacheTTL, publisher)
	inventoryService := inventory.NewService(inventoryRepo, itemService, redisCache, cfg.CacheTTL)

	consumer := event.NewConsumer(cfg.KafkaBrokers, cfg.NewUserTopic, cfg.NewUserGroup, inventoryService)
	consumerDone := make(chan error, 1)
	go func() {
		consumerDone <- consumer.Run(ctx)
	}()

	decoder := auth.NewDecoder(cfg.JWTSecret, cfg.CacheTTL)
	srv := server.NewServer(cfg.Port, decoder, pool, itemService, inventoryService)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Start()
	}()

	consumerStopped := false
	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-serverDone:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case err := <-consumerDone:
		consumerStopped = true
		if err != nil {
			return err
		}
	}

	// Graceful shutdown: stop accepting requests, then stop the consumer,
	// then let deferred closes flush the publisher and connections.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Server forced shutdown", "error", err)
	}

	stop() // cancel the consumer context
	if err := consumer.Close(); err != nil {
		slog.Error("Failed to close event consumer", "error", err)
	}
	if !awaitConsumer(shutdownCtx, consumerDone, consumerStopped) {
		slog.Warn("Event consumer did not stop in time")
	}

	slog.Info("Shutdown complete")
	return nil
}

// awaitConsumer waits for the consumer loop to finish unless it already
// has; the done channel is read at most once per send. Returns false when
// ctx expires before the loop exits.
func awaitConsumer(ctx context.Context, done <-chan error, alreadyDone bool) bool {
	if alreadyDone {
		return true
	}
	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}
