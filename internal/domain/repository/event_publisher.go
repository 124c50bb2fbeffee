package repository

import (
	"context"

	"github.com/inwheel/accessibility-importer/internal/domain"
)

// EventPublisher announces finished imports to downstream consumers
type EventPublisher interface {
	// PublishImportCompleted publishes the event of one committed region
	PublishImportCompleted(ctx context.Context, event domain.ImportCompletedEvent) error

	Close() error
}
