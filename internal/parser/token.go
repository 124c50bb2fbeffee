// Package parser turns free-text OSM tag values into canonical numbers and
// accessibility ratings. Nothing in here returns an error: a value that cannot
// be interpreted is unknown.
package parser

import "strings"

// maxSimpleParts is the number of parts a measurable token may have: a scalar
// and an optional unit word ("3", "3 steps", "80 cm").
const maxSimpleParts = 2

// Normalize trims, lowercases and collapses internal whitespace of a raw tag
// value. ok is false for an empty or blank value.
func Normalize(raw string) (token string, ok bool) {
	fields := strings.Fields(strings.ToLower(raw))
	if len(fields) == 0 {
		return "", false
	}
	return strings.Join(fields, " "), true
}

// NormalizePtr is Normalize for optional values.
func NormalizePtr(raw *string) *string {
	if raw == nil {
		return nil
	}
	token, ok := Normalize(*raw)
	if !ok {
		return nil
	}
	return &token
}

// IsSimple reports whether a normalized token is a scalar with an optional unit
// word rather than a free-text sentence.
func IsSimple(token string) bool {
	return len(strings.Fields(token)) <= maxSimpleParts
}
