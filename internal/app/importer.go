package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/inwheel/accessibility-importer/internal/catalog"
	"github.com/inwheel/accessibility-importer/internal/config"
	"github.com/inwheel/accessibility-importer/internal/domain/repository"
	"github.com/inwheel/accessibility-importer/internal/extract"
	"github.com/inwheel/accessibility-importer/internal/observability"
	"github.com/inwheel/accessibility-importer/internal/repository/cache"
	"github.com/inwheel/accessibility-importer/internal/repository/kafka"
	"github.com/inwheel/accessibility-importer/internal/repository/postgres"
	redisRepo "github.com/inwheel/accessibility-importer/internal/repository/redis"
	"github.com/inwheel/accessibility-importer/internal/usecase"
)

// Importer owns the connections behind an ImportUseCase.
type Importer struct {
	UseCase *usecase.ImportUseCase
	Metrics *observability.Metrics
	DB      *postgres.DB
	Redis   *cache.Redis

	events repository.EventPublisher
	logger *zap.Logger
}

// NewImporter connects to PostgreSQL and, when configured, to Redis and the
// event sink. Redis is optional: a failed connection disables the cache and
// the redis sink with a warning.
func NewImporter(ctx context.Context, cfg *config.Config, reg prometheus.Registerer, logger *zap.Logger) (*Importer, error) {
	cat, err := loadCatalog(cfg.Importer.RegionsFile)
	if err != nil {
		return nil, err
	}

	db, err := postgres.New(&cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	imp := &Importer{
		Metrics: observability.NewMetrics(reg),
		DB:      db,
		logger:  logger,
	}

	if cfg.Cache.Enabled || cfg.Events.Sink == config.SinkRedis {
		redisClient, err := cache.NewRedis(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		} else {
			imp.Redis = redisClient
		}
	}

	deps := usecase.ImportDeps{
		Catalog: cat,
		Places:  postgres.NewPlaceRepository(db),
		Metrics: imp.Metrics,
		Clock:   clockwork.NewRealClock(),
		Open: func(path string) extract.FeatureSource {
			return extract.NewPBFSource(path, cfg.Importer.ParseWorkers, logger)
		},
	}
	if imp.Redis != nil && cfg.Cache.Enabled {
		deps.Cache = cache.NewPlaceCacheRepository(imp.Redis)
	}
	if !cfg.Importer.SkipFilter {
		deps.Filter = extract.NewOsmiumFilter(cfg.Importer.OsmiumBin, logger)
	}

	switch cfg.Events.Sink {
	case config.SinkRedis:
		if imp.Redis != nil {
			imp.events = redisRepo.NewStreamPublisher(imp.Redis.Client(), cfg.Events.Stream, logger)
		} else {
			logger.Warn("Redis event sink disabled, no Redis connection")
		}
	case config.SinkKafka:
		imp.events = kafka.NewPublisher(&cfg.Kafka, logger)
	}
	deps.Events = imp.events

	imp.UseCase = usecase.NewImportUseCase(deps, usecase.ImportConfig{
		DataDir:      cfg.Importer.DataDir,
		BatchSize:    cfg.Importer.BatchSize,
		ParseWorkers: cfg.Importer.ParseWorkers,
	}, logger)

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.Health(healthCtx); err != nil {
		imp.Close()
		return nil, fmt.Errorf("postgres health check: %w", err)
	}

	logger.Info("Importer initialized",
		zap.Int("regions", len(cat.Regions())),
		zap.Bool("cache", deps.Cache != nil),
		zap.Bool("filter", deps.Filter != nil),
		zap.String("events", cfg.Events.Sink))

	return imp, nil
}

// Close releases every connection, logging failures.
func (i *Importer) Close() {
	if i.events != nil {
		if err := i.events.Close(); err != nil {
			i.logger.Error("Failed to close event publisher", zap.Error(err))
		}
	}
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			i.logger.Error("Failed to close Redis connection", zap.Error(err))
		}
	}
	if err := i.DB.Close(); err != nil {
		i.logger.Error("Failed to close PostgreSQL connection", zap.Error(err))
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}
