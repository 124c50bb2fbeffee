package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inwheel/accessibility-importer/internal/domain"
)

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
		ok       bool
	}{
		{"  Yes ", "yes", true},
		{"80   CM", "80 cm", true},
		{"\tone\n step ", "one step", true},
		{"", "", false},
		{"   ", "", false},
	}

	for _, tt := range tests {
		got, ok := Normalize(tt.raw)
		assert.Equal(t, tt.ok, ok, "Normalize(%q)", tt.raw)
		assert.Equal(t, tt.expected, got, "Normalize(%q)", tt.raw)
	}

	assert.Nil(t, NormalizePtr(nil))
	assert.Nil(t, NormalizePtr(strPtr(" ")))
	assert.Equal(t, "limited", *NormalizePtr(strPtr(" LIMITED")))
}

func TestIsSimple(t *testing.T) {
	assert.True(t, IsSimple("3"))
	assert.True(t, IsSimple("3 steps"))
	assert.False(t, IsSimple("about 3 steps"))
	assert.False(t, IsSimple("one small step at the side door"))
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
		ok       bool
	}{
		{"0", 0, true},
		{"2", 2, true},
		{" 3 steps", 3, true},
		{"steps:4", 4, true},
		{"zero", 0, true},
		{"One", 1, true},
		{"zwei", 2, true},
		{"drei", 3, true},
		{"zéro", 0, true},
		{"deux", 2, true},
		{"kaksi", 2, true},
		{"kolme", 3, true},
		{"två", 2, true},
		{"tva", 2, true},
		{"due", 2, true},
		{"tres", 3, true},
		{"-1", -1, true},
		{"", 0, false},
		{"yes", 0, false},
		{"many", 0, false},
		{"two or three steps", 0, false},
		{"99999999999999999999999", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseCount(tt.raw)
		assert.Equal(t, tt.ok, ok, "ParseCount(%q)", tt.raw)
		if tt.ok {
			assert.Equal(t, tt.expected, got, "ParseCount(%q)", tt.raw)
		}
	}
}

func TestParseCount_RejectsDecimals(t *testing.T) {
	for _, raw := range []string{"1.5", "2,5", "0.0", "1,0 steps", "3.25"} {
		_, ok := ParseCount(raw)
		assert.False(t, ok, "ParseCount(%q) should be unknown", raw)
	}
}

func TestParseCountPtr(t *testing.T) {
	assert.Nil(t, ParseCountPtr(nil))
	assert.Nil(t, ParseCountPtr(strPtr("")))
	assert.Nil(t, ParseCountPtr(strPtr("1.5")))
	require.NotNil(t, ParseCountPtr(strPtr("2")))
	assert.Equal(t, 2, *ParseCountPtr(strPtr("2")))
}

func TestParseMeters(t *testing.T) {
	tests := []struct {
		raw      string
		expected float64
		ok       bool
	}{
		{"150", 1.5, true},
		{"150cm", 1.5, true},
		{"150 cm", 1.5, true},
		{"1.5m", 1.5, true},
		{"1,5 m", 1.5, true},
		{"0.9", 0.9, true},
		{"10", 10, true},
		{"90", 0.9, true},
		{"12 m", 12, true},
		{"0", 0, true},
		{"", 0, false},
		{"wide", 0, false},
		{"1.2.3", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseMeters(tt.raw)
		assert.Equal(t, tt.ok, ok, "ParseMeters(%q)", tt.raw)
		if tt.ok {
			assert.InDelta(t, tt.expected, got, 1e-9, "ParseMeters(%q)", tt.raw)
		}
	}
}

func TestParseMeters_Deterministic(t *testing.T) {
	first, ok1 := ParseMeters("85 cm")
	second, ok2 := ParseMeters("85 cm")
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
}

func TestYesNoLimited(t *testing.T) {
	assert.Equal(t, domain.FullyAccessible.Ptr(), YesNoLimited(strPtr("yes")))
	assert.Equal(t, domain.FullyAccessible.Ptr(), YesNoLimited(strPtr(" Designated")))
	assert.Equal(t, domain.FullyAccessible.Ptr(), YesNoLimited(strPtr("wheelchair")))
	assert.Equal(t, domain.PartiallyAccessible.Ptr(), YesNoLimited(strPtr("LIMITED")))
	assert.Equal(t, domain.NotAccessible.Ptr(), YesNoLimited(strPtr("no")))
	assert.Nil(t, YesNoLimited(strPtr("unknown")))
	assert.Nil(t, YesNoLimited(strPtr("")))
	assert.Nil(t, YesNoLimited(nil))
}

func TestWidthRating(t *testing.T) {
	assert.Equal(t, domain.FullyAccessible.Ptr(), WidthRating(floatPtr(0)))
	assert.Equal(t, domain.PartiallyAccessible.Ptr(), WidthRating(floatPtr(0.5)))
	assert.Equal(t, domain.PartiallyAccessible.Ptr(), WidthRating(floatPtr(0.7)))
	assert.Equal(t, domain.NotAccessible.Ptr(), WidthRating(floatPtr(0.70001)))
	assert.Equal(t, domain.NotAccessible.Ptr(), WidthRating(floatPtr(1.2)))
	assert.Nil(t, WidthRating(nil))
}

func TestStepCountRating(t *testing.T) {
	assert.Equal(t, domain.FullyAccessible.Ptr(), StepCountRating(intPtr(0)))
	assert.Equal(t, domain.PartiallyAccessible.Ptr(), StepCountRating(intPtr(1)))
	assert.Equal(t, domain.NotAccessible.Ptr(), StepCountRating(intPtr(5)))
	assert.Nil(t, StepCountRating(intPtr(-1)))
	assert.Nil(t, StepCountRating(nil))
}

func TestStepHeightRating(t *testing.T) {
	assert.Equal(t, domain.FullyAccessible.Ptr(), StepHeightRating(floatPtr(0)))
	assert.Equal(t, domain.PartiallyAccessible.Ptr(), StepHeightRating(floatPtr(0.03)))
	assert.Equal(t, domain.NotAccessible.Ptr(), StepHeightRating(floatPtr(0.031)))
	assert.Nil(t, StepHeightRating(nil))
}

func TestRestroomManeuverRating(t *testing.T) {
	assert.Equal(t, domain.FullyAccessible.Ptr(), RestroomManeuverRating(floatPtr(1.5), floatPtr(1.5)))
	assert.Equal(t, domain.FullyAccessible.Ptr(), RestroomManeuverRating(floatPtr(1.8), floatPtr(1.6)))
	assert.Equal(t, domain.NotAccessible.Ptr(), RestroomManeuverRating(floatPtr(1.2), floatPtr(1.6)))
	assert.Equal(t, domain.NotAccessible.Ptr(), RestroomManeuverRating(floatPtr(1.6), floatPtr(1.2)))
	assert.Nil(t, RestroomManeuverRating(nil, floatPtr(1.6)))
	assert.Nil(t, RestroomManeuverRating(floatPtr(1.6), nil))
}
