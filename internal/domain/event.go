package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamAccessibilityImported = "stream:accessibility:imported"
)

// ImportCompletedEvent is published after a region has been fully committed,
// so routing and filtering services can refresh their view of the region.
type ImportCompletedEvent struct {
	EventID        uuid.UUID `json:"event_id"`
	RunID          uuid.UUID `json:"run_id"`
	Region         string    `json:"region"`
	Overwrite      bool      `json:"overwrite"`
	Places         int       `json:"places"`
	Batches        int       `json:"batches"`
	FacetsRetained int       `json:"facets_retained"`
	FinishedAt     time.Time `json:"finished_at"`
}

// NewImportCompletedEvent builds the event for a finished region run.
func NewImportCompletedEvent(report RunReport) ImportCompletedEvent {
	return ImportCompletedEvent{
		EventID:        uuid.New(),
		RunID:          report.RunID,
		Region:         report.Region,
		Overwrite:      report.Overwrite,
		Places:         report.PlacesCommitted,
		Batches:        report.Batches,
		FacetsRetained: report.FacetsRetained,
		FinishedAt:     report.FinishedAt,
	}
}
