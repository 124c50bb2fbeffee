package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/inwheel/accessibility-importer/internal/app"
	"github.com/inwheel/accessibility-importer/internal/config"
	"github.com/inwheel/accessibility-importer/internal/domain"
	"github.com/inwheel/accessibility-importer/internal/observability"
	"github.com/inwheel/accessibility-importer/internal/pkg/errors"
	"github.com/inwheel/accessibility-importer/internal/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(runImport).ExecuteContext(ctx); err != nil {
		var batchErr *errors.BatchError
		if stderrors.As(err, &batchErr) {
			fmt.Fprintf(os.Stderr, "import aborted: %v\n", batchErr)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func runImport(ctx context.Context, params domain.RunParams) error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "importer")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting accessibility import",
		zap.Strings("regions", params.Regions),
		zap.Bool("overwrite", params.Overwrite),
		zap.Int("limit", params.Limit))

	// 3. Connect stores and build the pipeline
	reg := prometheus.NewRegistry()
	imp, err := app.NewImporter(ctx, cfg, reg, log)
	if err != nil {
		log.Error("Failed to initialize importer", zap.Error(err))
		return err
	}
	defer imp.Close()

	// 4. Run
	reports, runErr := imp.UseCase.Run(ctx, params)
	for _, r := range reports {
		log.Info("Region report",
			zap.String("region", r.Region),
			zap.String("run_id", r.RunID.String()),
			zap.Int("features_read", r.FeaturesRead),
			zap.Int("places_committed", r.PlacesCommitted),
			zap.Int("facets_retained", r.FacetsRetained),
			zap.Duration("duration", r.Duration))
	}

	// 5. Export metrics for the node exporter textfile collector
	if path := cfg.Importer.MetricsTextfile; path != "" {
		if err := observability.WriteTextfile(path, reg); err != nil {
			log.Warn("Failed to write metrics textfile", zap.String("path", path), zap.Error(err))
		}
	}

	if runErr != nil {
		log.Error("Import failed", zap.Error(runErr))
		return runErr
	}

	log.Info("Import completed", zap.Int("regions", len(reports)))
	return nil
}
