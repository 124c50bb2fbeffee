package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/inwheel/accessibility-importer/internal/app"
	"github.com/inwheel/accessibility-importer/internal/config"
	"github.com/inwheel/accessibility-importer/internal/pkg/logger"
	"github.com/inwheel/accessibility-importer/internal/worker"
	"github.com/inwheel/accessibility-importer/internal/worker/importer"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting scheduled import worker",
		zap.Duration("interval", cfg.Worker.Interval),
		zap.Strings("regions", cfg.Worker.Regions),
		zap.Bool("overwrite", cfg.Worker.Overwrite))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Connect stores and build the pipeline
	imp, err := app.NewImporter(ctx, cfg, prometheus.NewRegistry(), log)
	if err != nil {
		log.Fatal("Failed to initialize importer", zap.Error(err))
	}
	defer imp.Close()

	// 4. Create worker manager and register workers
	importWorker := importer.NewImportWorker(imp.UseCase, importer.Config{
		Interval:   cfg.Worker.Interval,
		Regions:    cfg.Worker.Regions,
		Overwrite:  cfg.Worker.Overwrite,
		RunOnStart: true,
	}, clockwork.NewRealClock(), log)

	manager := worker.NewManager(log, worker.DefaultShutdownTimeout)
	manager.Register(importWorker)

	if err := manager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 5. Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info("Received shutdown signal")
	case <-manager.Done():
		log.Warn("All workers exited")
	}

	if err := manager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}
	cancel()

	log.Info("Worker shutdown complete")
}
