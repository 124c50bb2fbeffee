package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCategory(t *testing.T) {
	tests := []struct {
		name     string
		tags     map[string]string
		expected string
		ok       bool
	}{
		{"amenity", map[string]string{"amenity": "cafe"}, "cafe", true},
		{"amenity wins over shop", map[string]string{"amenity": "restaurant", "shop": "bakery"}, "restaurant", true},
		{"unknown amenity falls through to shop", map[string]string{"amenity": "bench", "shop": "books"}, "books", true},
		{"tourism", map[string]string{"tourism": "museum"}, "museum", true},
		{"values are case sensitive", map[string]string{"amenity": "Cafe"}, "", false},
		{"no vocabulary", map[string]string{"highway": "bus_stop"}, "", false},
		{"empty", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, ok := ResolveCategory(tt.tags)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, category)
		})
	}
}

func TestCategoryFilters(t *testing.T) {
	filters := CategoryFilters()

	total := 0
	for _, vocab := range CategoryVocabulary {
		total += len(vocab.Values)
	}
	assert.Len(t, filters, total)
	assert.Equal(t, "n/amenity=restaurant", filters[0])
	assert.Contains(t, filters, "n/shop=bakery")
	assert.Contains(t, filters, "n/tourism=hostel")
}

func TestAccessibilityStatus_ValueAndScan(t *testing.T) {
	v, err := PartiallyAccessible.Value()
	require.NoError(t, err)
	assert.Equal(t, "PARTIALLY_ACCESSIBLE", v)

	_, err = AccessibilityStatus("LIMITED").Value()
	assert.Error(t, err)

	var s AccessibilityStatus
	require.NoError(t, s.Scan([]byte("NOT_ACCESSIBLE")))
	assert.Equal(t, NotAccessible, s)
	assert.Error(t, s.Scan("maybe"))
	assert.Error(t, s.Scan(42))
}

func TestStatusEqual(t *testing.T) {
	assert.True(t, StatusEqual(nil, nil))
	assert.True(t, StatusEqual(FullyAccessible.Ptr(), FullyAccessible.Ptr()))
	assert.False(t, StatusEqual(FullyAccessible.Ptr(), nil))
	assert.False(t, StatusEqual(FullyAccessible.Ptr(), NotAccessible.Ptr()))
}

func TestNewImportCompletedEvent(t *testing.T) {
	finished := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	report := RunReport{
		RunID:           uuid.New(),
		Region:          "finland",
		Overwrite:       true,
		Batches:         3,
		PlacesCommitted: 4500,
		FacetsRetained:  7,
		FinishedAt:      finished,
	}

	event := NewImportCompletedEvent(report)

	assert.NotEqual(t, uuid.Nil, event.EventID)
	assert.Equal(t, report.RunID, event.RunID)
	assert.Equal(t, "finland", event.Region)
	assert.True(t, event.Overwrite)
	assert.Equal(t, 4500, event.Places)
	assert.Equal(t, 3, event.Batches)
	assert.Equal(t, 7, event.FacetsRetained)
	assert.Equal(t, finished, event.FinishedAt)
}
