package domain

import (
	"time"

	"github.com/google/uuid"
)

// Feature is one tagged node handed over by the geodata extraction step.
type Feature struct {
	ID   int64             `json:"id"`
	Tags map[string]string `json:"tags"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
}

// Region is one importable geographic extract.
type Region struct {
	Name    string `yaml:"name" validate:"required,region"`
	URL     string `yaml:"url" validate:"omitempty,url"`
	Extract string `yaml:"extract,omitempty"`
}

// RunParams are the parameters of one import run.
type RunParams struct {
	// Regions to import, in order. Empty means every catalog region.
	Regions   []string `validate:"dive,region"`
	Overwrite bool
	// Limit caps the number of places per region, 0 means no limit.
	Limit     int `validate:"gte=0"`
	BatchSize int `validate:"gte=0"`
}

// RunReport summarizes the import of one region.
type RunReport struct {
	RunID           uuid.UUID     `json:"run_id"`
	Region          string        `json:"region"`
	Overwrite       bool          `json:"overwrite"`
	FeaturesRead    int           `json:"features_read"`
	PlacesBuilt     int           `json:"places_built"`
	PlacesCommitted int           `json:"places_committed"`
	Batches         int           `json:"batches"`
	FacetsRetained  int           `json:"facets_retained"`
	StartedAt       time.Time     `json:"started_at"`
	FinishedAt      time.Time     `json:"finished_at"`
	Duration        time.Duration `json:"duration"`
}

// BatchResult is what the committer reports for one committed batch.
type BatchResult struct {
	Places         int
	FacetsRetained int
}
