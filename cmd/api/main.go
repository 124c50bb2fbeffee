package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/inwheel/accessibility-importer/internal/config"
	httpDelivery "github.com/inwheel/accessibility-importer/internal/delivery/http"
	"github.com/inwheel/accessibility-importer/internal/delivery/http/handler"
	"github.com/inwheel/accessibility-importer/internal/domain/repository"
	"github.com/inwheel/accessibility-importer/internal/pkg/logger"
	"github.com/inwheel/accessibility-importer/internal/repository/cache"
	"github.com/inwheel/accessibility-importer/internal/repository/postgres"
	"github.com/inwheel/accessibility-importer/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting accessibility API",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}

	// 4. Connect to Redis, the API serves from PostgreSQL alone when it is down
	var (
		redisClient *cache.Redis
		placeCache  repository.CacheRepository
	)
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Warn("Redis unavailable, place cache disabled", zap.Error(err))
		} else {
			placeCache = cache.NewPlaceCacheRepository(redisClient)
		}
	}

	// 5. Health check
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	cancel()

	// 6. Use cases and handlers
	placeUC := usecase.NewPlaceUseCase(postgres.NewPlaceRepository(db), placeCache, cfg.Cache.PlaceCacheTTL, log)

	checks := map[string]handler.HealthChecker{"postgres": db}
	if redisClient != nil {
		checks["redis"] = redisClient
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewPlaceHandler(placeUC, log),
		handler.NewHealthHandler(checks, clockwork.NewRealClock()),
		reg,
	)

	// 7. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := db.Close(); err != nil {
		log.Error("Failed to close PostgreSQL", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
