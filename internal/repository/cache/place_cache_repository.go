package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/inwheel/accessibility-importer/internal/domain"
	"github.com/inwheel/accessibility-importer/internal/domain/repository"
)

const (
	placeKeyPrefix = "place:"

	// invalidateChunk bounds the number of keys per DEL command.
	invalidateChunk = 500
)

type placeCacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewPlaceCacheRepository(redis *Redis) repository.CacheRepository {
	return &placeCacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func placeKey(osmID int64) string {
	return placeKeyPrefix + strconv.FormatInt(osmID, 10)
}

func (r *placeCacheRepository) GetPlace(ctx context.Context, osmID int64) (*domain.PlaceDetails, error) {
	key := placeKey(osmID)
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	var place domain.PlaceDetails
	if err := json.Unmarshal(val, &place); err != nil {
		r.logger.Warn("Dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
		return nil, nil
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return &place, nil
}

func (r *placeCacheRepository) SetPlace(ctx context.Context, place *domain.PlaceDetails, ttl time.Duration) error {
	key := placeKey(place.OSMID)
	data, err := json.Marshal(place)
	if err != nil {
		return fmt.Errorf("marshal place: %w", err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

// InvalidatePlaces drops the cached entries of freshly committed places.
func (r *placeCacheRepository) InvalidatePlaces(ctx context.Context, osmIDs []int64) error {
	for start := 0; start < len(osmIDs); start += invalidateChunk {
		end := start + invalidateChunk
		if end > len(osmIDs) {
			end = len(osmIDs)
		}

		keys := make([]string, 0, end-start)
		for _, id := range osmIDs[start:end] {
			keys = append(keys, placeKey(id))
		}

		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			r.logger.Error("Failed to invalidate cache", zap.Int("keys", len(keys)), zap.Error(err))
			return fmt.Errorf("cache delete error: %w", err)
		}
	}
	return nil
}
