package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "accessibility_importer"

// Metrics holds the Prometheus counters and histograms of the import pipeline.
type Metrics struct {
	FeaturesRead    *prometheus.CounterVec // labels: region
	PlacesCommitted *prometheus.CounterVec // labels: region
	FacetsRetained  *prometheus.CounterVec // labels: region
	BatchFailures   *prometheus.CounterVec // labels: region
	RunsCompleted   *prometheus.CounterVec // labels: region, outcome={success,error}

	BatchSize           prometheus.Histogram
	BatchCommitDuration prometheus.Histogram
	LastSuccessfulRun   *prometheus.GaugeVec // labels: region
}

func newMetrics() *Metrics {
	return &Metrics{
		FeaturesRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "features_read_total",
			Help:      "Tagged features read from extracts.",
		}, []string{"region"}),
		PlacesCommitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "places_committed_total",
			Help:      "Places written in committed batches.",
		}, []string{"region"}),
		FacetsRetained: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "facets_retained_total",
			Help:      "User-modified facets kept instead of the imported value.",
		}, []string{"region"}),
		BatchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_failures_total",
			Help:      "Batches rolled back.",
		}, []string{"region"}),
		RunsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Region imports by outcome.",
		}, []string{"region", "outcome"}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Places per committed batch.",
			Buckets:   []float64{1, 10, 50, 100, 250, 500, 1000, 2000, 5000},
		}),
		BatchCommitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_commit_duration_seconds",
			Help:      "Duration of one batch transaction.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		LastSuccessfulRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_successful_run_timestamp_seconds",
			Help:      "Unix time of the last fully committed region import.",
		}, []string{"region"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.FeaturesRead,
		m.PlacesCommitted,
		m.FacetsRetained,
		m.BatchFailures,
		m.RunsCompleted,
		m.BatchSize,
		m.BatchCommitDuration,
		m.LastSuccessfulRun,
	}
}

// NewMetrics creates the pipeline metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates unregistered metrics to avoid "already
// registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// WriteTextfile dumps everything gathered by g in the node_exporter textfile
// format. The file is replaced atomically.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
