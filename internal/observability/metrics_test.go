package observability

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.PlacesCommitted.WithLabelValues("finland").Add(3)
	m.BatchSize.Observe(3)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.PlacesCommitted.WithLabelValues("finland")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "accessibility_importer_places_committed_total")
	assert.Contains(t, names, "accessibility_importer_batch_size")
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.FacetsRetained.WithLabelValues("switzerland").Inc()

	path := filepath.Join(t.TempDir(), "importer.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `accessibility_importer_facets_retained_total{region="switzerland"} 1`)
}
