package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/inwheel/accessibility-importer/internal/catalog"
	"github.com/inwheel/accessibility-importer/internal/domain"
	"github.com/inwheel/accessibility-importer/internal/domain/repository"
	"github.com/inwheel/accessibility-importer/internal/extract"
	"github.com/inwheel/accessibility-importer/internal/facet"
	"github.com/inwheel/accessibility-importer/internal/observability"
	"github.com/inwheel/accessibility-importer/internal/pkg/errors"
	"github.com/inwheel/accessibility-importer/internal/pkg/validator"
)

// DefaultBatchSize is the number of places committed per transaction.
const DefaultBatchSize = 2000

// ExtractFilter reduces a raw extract to the nodes matching tag expressions.
type ExtractFilter interface {
	Filter(ctx context.Context, in, out string, expressions []string) error
}

// SourceOpener opens the feature source of an extract file.
type SourceOpener func(path string) extract.FeatureSource

// ImportDeps are the collaborators of an import. Cache, Events and Filter are
// optional.
type ImportDeps struct {
	Catalog *catalog.Catalog
	Places  repository.PlaceRepository
	Cache   repository.CacheRepository
	Events  repository.EventPublisher
	Filter  ExtractFilter
	Open    SourceOpener
	Metrics *observability.Metrics
	Clock   clockwork.Clock
}

type ImportConfig struct {
	DataDir      string
	BatchSize    int
	ParseWorkers int
}

// ImportUseCase runs the extract, parse, merge and commit pipeline region by
// region.
type ImportUseCase struct {
	deps   ImportDeps
	cfg    ImportConfig
	logger *zap.Logger
}

func NewImportUseCase(deps ImportDeps, cfg ImportConfig, logger *zap.Logger) *ImportUseCase {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if deps.Metrics == nil {
		deps.Metrics = observability.NewMetricsForTesting()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.ParseWorkers <= 0 {
		cfg.ParseWorkers = 1
	}
	return &ImportUseCase{deps: deps, cfg: cfg, logger: logger}
}

// Run imports the selected regions one after the other. It stops at the first
// failing region; the reports of the regions handled so far are returned with
// the error.
func (uc *ImportUseCase) Run(ctx context.Context, params domain.RunParams) ([]domain.RunReport, error) {
	if err := validator.Validate(params); err != nil {
		return nil, fmt.Errorf("invalid run parameters: %w", err)
	}

	regions, err := uc.deps.Catalog.Resolve(params.Regions)
	if err != nil {
		return nil, err
	}

	batchSize := params.BatchSize
	if batchSize == 0 {
		batchSize = uc.cfg.BatchSize
	}

	reports := make([]domain.RunReport, 0, len(regions))
	for _, region := range regions {
		report, err := uc.importRegion(ctx, region, params, batchSize)
		reports = append(reports, report)
		if err != nil {
			uc.deps.Metrics.RunsCompleted.WithLabelValues(region.Name, "error").Inc()
			return reports, err
		}
		uc.deps.Metrics.RunsCompleted.WithLabelValues(region.Name, "success").Inc()
	}
	return reports, nil
}

func (uc *ImportUseCase) importRegion(ctx context.Context, region domain.Region, params domain.RunParams, batchSize int) (domain.RunReport, error) {
	report := domain.RunReport{
		RunID:     uuid.New(),
		Region:    region.Name,
		Overwrite: params.Overwrite,
		StartedAt: uc.deps.Clock.Now(),
	}
	log := uc.logger.With(
		zap.String("run_id", report.RunID.String()),
		zap.String("region", region.Name),
	)
	log.Info("Import started",
		zap.Bool("overwrite", params.Overwrite),
		zap.Int("limit", params.Limit),
		zap.Int("batch_size", batchSize))

	path, err := uc.prepareExtract(ctx, region)
	if err != nil {
		return report, err
	}

	features, read, err := uc.readFeatures(ctx, path, params.Limit)
	report.FeaturesRead = read
	uc.deps.Metrics.FeaturesRead.WithLabelValues(region.Name).Add(float64(read))
	if err != nil {
		return report, fmt.Errorf("read %s: %w", region.Name, err)
	}

	places, err := uc.buildPlaces(ctx, features, region.Name)
	if err != nil {
		return report, err
	}
	report.PlacesBuilt = len(places)
	log.Info("Features parsed",
		zap.Int("features_read", read),
		zap.Int("places", len(places)))

	total := (len(places) + batchSize - 1) / batchSize
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			log.Warn("Import cancelled", zap.Int("batches_committed", report.Batches), zap.Int("total", total))
			uc.finish(&report)
			return report, err
		}

		start := i * batchSize
		end := start + batchSize
		if end > len(places) {
			end = len(places)
		}
		batch := places[start:end]

		began := uc.deps.Clock.Now()
		result, err := uc.deps.Places.ApplyBatch(ctx, batch, params.Overwrite)
		elapsed := uc.deps.Clock.Since(began)
		if err != nil {
			uc.deps.Metrics.BatchFailures.WithLabelValues(region.Name).Inc()
			batchErr := &errors.BatchError{
				RunID:  report.RunID,
				Region: region.Name,
				Batch:  i + 1,
				Total:  total,
				Size:   len(batch),
				Err:    err,
			}
			log.Error("Batch rolled back", zap.Int("batch", i+1), zap.Int("total", total), zap.Error(err))
			uc.finish(&report)
			return report, batchErr
		}

		report.Batches++
		report.PlacesCommitted += result.Places
		report.FacetsRetained += result.FacetsRetained
		uc.deps.Metrics.PlacesCommitted.WithLabelValues(region.Name).Add(float64(result.Places))
		uc.deps.Metrics.FacetsRetained.WithLabelValues(region.Name).Add(float64(result.FacetsRetained))
		uc.deps.Metrics.BatchSize.Observe(float64(len(batch)))
		uc.deps.Metrics.BatchCommitDuration.Observe(elapsed.Seconds())

		log.Info("Batch committed",
			zap.Int("batch", i+1),
			zap.Int("total", total),
			zap.Int("size", len(batch)),
			zap.Int("facets_retained", result.FacetsRetained),
			zap.Duration("duration", elapsed),
			zap.Float64("places_per_second", rate(len(batch), elapsed)))

		uc.invalidate(ctx, batch, log)
	}

	uc.finish(&report)
	uc.deps.Metrics.LastSuccessfulRun.WithLabelValues(region.Name).Set(float64(report.FinishedAt.Unix()))
	log.Info("Import finished",
		zap.Int("places_committed", report.PlacesCommitted),
		zap.Int("batches", report.Batches),
		zap.Int("facets_retained", report.FacetsRetained),
		zap.Duration("duration", report.Duration))

	uc.publish(ctx, report, log)
	return report, nil
}

// prepareExtract returns the file to read for a region, filtering the raw
// extract when a filter is configured.
func (uc *ImportUseCase) prepareExtract(ctx context.Context, region domain.Region) (string, error) {
	raw := catalog.ExtractPath(uc.cfg.DataDir, region)
	if uc.deps.Filter == nil {
		return raw, nil
	}

	filtered := catalog.FilteredPath(uc.cfg.DataDir, region)
	if err := uc.deps.Filter.Filter(ctx, raw, filtered, domain.CategoryFilters()); err != nil {
		if stderrors.Is(err, errors.ErrExtractMissing) && region.URL != "" {
			return "", fmt.Errorf("%w: download %s to %s", err, region.URL, raw)
		}
		return "", fmt.Errorf("filter %s: %w", region.Name, err)
	}
	return filtered, nil
}

// readFeatures keeps the features with a known category, up to limit when set.
// read counts every feature seen.
func (uc *ImportUseCase) readFeatures(ctx context.Context, path string, limit int) ([]domain.Feature, int, error) {
	var features []domain.Feature
	read := 0

	err := uc.deps.Open(path).Each(ctx, func(f domain.Feature) error {
		read++
		if _, ok := domain.ResolveCategory(f.Tags); !ok {
			return nil
		}
		features = append(features, f)
		if limit > 0 && len(features) >= limit {
			return extract.ErrStop
		}
		return nil
	})
	return features, read, err
}

// buildPlaces derives places on ParseWorkers goroutines, each over a contiguous
// chunk, so the output keeps the extract order.
func (uc *ImportUseCase) buildPlaces(ctx context.Context, features []domain.Feature, region string) ([]*domain.Place, error) {
	built := make([]*domain.Place, len(features))

	workers := uc.cfg.ParseWorkers
	chunk := (len(features) + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(features); start += chunk {
		end := start + chunk
		if end > len(features) {
			end = len(features)
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				if place, ok := facet.BuildPlace(features[i], region); ok {
					built[i] = place
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	places := built[:0]
	for _, p := range built {
		if p != nil {
			places = append(places, p)
		}
	}
	return places, nil
}

func (uc *ImportUseCase) invalidate(ctx context.Context, batch []*domain.Place, log *zap.Logger) {
	if uc.deps.Cache == nil {
		return
	}
	ids := make([]int64, len(batch))
	for i, p := range batch {
		ids[i] = p.OSMID
	}
	if err := uc.deps.Cache.InvalidatePlaces(ctx, ids); err != nil {
		log.Warn("Failed to invalidate cached places", zap.Int("places", len(ids)), zap.Error(err))
	}
}

func (uc *ImportUseCase) publish(ctx context.Context, report domain.RunReport, log *zap.Logger) {
	if uc.deps.Events == nil {
		return
	}
	if err := uc.deps.Events.PublishImportCompleted(ctx, domain.NewImportCompletedEvent(report)); err != nil {
		log.Warn("Failed to publish import event", zap.Error(err))
	}
}

func (uc *ImportUseCase) finish(report *domain.RunReport) {
	report.FinishedAt = uc.deps.Clock.Now()
	report.Duration = report.FinishedAt.Sub(report.StartedAt)
}

func rate(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds()
}
