package repository

import (
	"context"

	"github.com/inwheel/accessibility-importer/internal/domain"
)

// PlaceRepository persists imported places and their accessibility facets
type PlaceRepository interface {
	// ApplyBatch merges and writes the places in one transaction.
	// Either every place of the batch is applied or none is.
	ApplyBatch(ctx context.Context, places []*domain.Place, overwrite bool) (domain.BatchResult, error)

	// GetByOSMID returns the stored place with its facets and protection flags
	GetByOSMID(ctx context.Context, osmID int64) (*domain.PlaceDetails, error)
}
