package repository

import (
	"context"
	"time"

	"github.com/inwheel/accessibility-importer/internal/domain"
)

// CacheRepository caches place read models for the API
type CacheRepository interface {
	// GetPlace returns the cached place, nil on cache miss
	GetPlace(ctx context.Context, osmID int64) (*domain.PlaceDetails, error)

	// SetPlace caches a place with TTL
	SetPlace(ctx context.Context, place *domain.PlaceDetails, ttl time.Duration) error

	// InvalidatePlaces drops cached entries of re-imported places
	InvalidatePlaces(ctx context.Context, osmIDs []int64) error
}
