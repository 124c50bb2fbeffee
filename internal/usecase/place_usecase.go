package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/inwheel/accessibility-importer/internal/domain"
	"github.com/inwheel/accessibility-importer/internal/domain/repository"
)

// PlaceUseCase serves imported places to downstream consumers, read-through
// the Redis cache when one is configured.
type PlaceUseCase struct {
	places repository.PlaceRepository
	cache  repository.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

func NewPlaceUseCase(places repository.PlaceRepository, cache repository.CacheRepository, ttl time.Duration, logger *zap.Logger) *PlaceUseCase {
	return &PlaceUseCase{
		places: places,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// GetPlace returns a place with its facets and user_modified flags. Cache
// failures degrade to a database read.
func (uc *PlaceUseCase) GetPlace(ctx context.Context, osmID int64) (*domain.PlaceDetails, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetPlace(ctx, osmID)
		if err != nil {
			uc.logger.Warn("Place cache unavailable", zap.Int64("osm_id", osmID), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	place, err := uc.places.GetByOSMID(ctx, osmID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil && uc.ttl > 0 {
		if err := uc.cache.SetPlace(ctx, place, uc.ttl); err != nil {
			uc.logger.Warn("Failed to cache place", zap.Int64("osm_id", osmID), zap.Error(err))
		}
	}
	return place, nil
}
