package parser

import (
	"strconv"
	"strings"
)

// bareCentimeterThreshold: a bare number above this is taken as centimeters,
// no entrance or door is more than 10 m wide.
const bareCentimeterThreshold = 10

// ParseMeters converts a length such as "90", "90cm", "0,9 m" or "1.5m" to meters.
//
// Unit resolution is a heuristic over ambiguous volunteered data: "cm" anywhere
// means centimeters; otherwise a value above 10 without an "m" is read as
// centimeters typed without unit; everything else is meters.
func ParseMeters(raw string) (float64, bool) {
	token, ok := Normalize(raw)
	if !ok {
		return 0, false
	}

	numeric := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			return r
		}
		return -1
	}, token)
	numeric = strings.ReplaceAll(numeric, ",", ".")

	value, err := strconv.ParseFloat(numeric, 64)
	if err != nil {
		return 0, false
	}

	switch {
	case strings.Contains(token, "cm"):
		return value / 100, true
	case value > bareCentimeterThreshold && !strings.Contains(token, "m"):
		return value / 100, true
	default:
		return value, true
	}
}

// ParseMetersPtr is ParseMeters for optional values.
func ParseMetersPtr(raw *string) *float64 {
	if raw == nil {
		return nil
	}
	m, ok := ParseMeters(*raw)
	if !ok {
		return nil
	}
	return &m
}
