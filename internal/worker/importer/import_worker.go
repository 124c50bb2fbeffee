package importer

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/inwheel/accessibility-importer/internal/domain"
	"github.com/inwheel/accessibility-importer/internal/worker"
)

// Runner executes one import run.
type Runner interface {
	Run(ctx context.Context, params domain.RunParams) ([]domain.RunReport, error)
}

type Config struct {
	Interval  time.Duration
	Regions   []string
	Overwrite bool
	// RunOnStart triggers a run before the first tick.
	RunOnStart bool
}

// ImportWorker re-imports the configured regions on a fixed interval.
// Runs never overlap: ticks that fire during a run are coalesced into one.
type ImportWorker struct {
	*worker.BaseWorker
	runner Runner
	cfg    Config
	clock  clockwork.Clock
}

func NewImportWorker(runner Runner, cfg Config, clock clockwork.Clock, logger *zap.Logger) *ImportWorker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ImportWorker{
		BaseWorker: worker.NewBaseWorker("scheduled-import", logger),
		runner:     runner,
		cfg:        cfg,
		clock:      clock,
	}
}

func (w *ImportWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting import worker",
		zap.Duration("interval", w.cfg.Interval),
		zap.Strings("regions", w.cfg.Regions),
		zap.Bool("overwrite", w.cfg.Overwrite))

	// Stop cancels a run in flight, its open batch is rolled back
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-w.StopChan():
			cancel()
		case <-runCtx.Done():
		}
	}()

	ticker := w.clock.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	if w.cfg.RunOnStart {
		w.runOnce(runCtx)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.Chan():
			w.runOnce(runCtx)
		}
	}
}

func (w *ImportWorker) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	params := domain.RunParams{
		Regions:   w.cfg.Regions,
		Overwrite: w.cfg.Overwrite,
	}

	started := w.clock.Now()
	reports, err := w.runner.Run(ctx, params)
	if err != nil {
		w.Logger().Error("Scheduled import failed",
			zap.Int("regions_done", len(reports)),
			zap.Duration("duration", w.clock.Since(started)),
			zap.Error(err))
		return
	}

	committed := 0
	for _, r := range reports {
		committed += r.PlacesCommitted
	}
	w.Logger().Info("Scheduled import finished",
		zap.Int("regions", len(reports)),
		zap.Int("places_committed", committed),
		zap.Duration("duration", w.clock.Since(started)))
}
