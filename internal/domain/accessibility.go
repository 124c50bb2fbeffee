package domain

import (
	"database/sql/driver"
	"fmt"
)

// AccessibilityStatus is the three-level wheelchair accessibility rating.
// Unknown is never encoded as a rating: it is a nil *AccessibilityStatus.
type AccessibilityStatus string

const (
	FullyAccessible     AccessibilityStatus = "FULLY_ACCESSIBLE"
	PartiallyAccessible AccessibilityStatus = "PARTIALLY_ACCESSIBLE"
	NotAccessible       AccessibilityStatus = "NOT_ACCESSIBLE"
)

// Valid reports whether s is one of the three ratings.
func (s AccessibilityStatus) Valid() bool {
	switch s {
	case FullyAccessible, PartiallyAccessible, NotAccessible:
		return true
	default:
		return false
	}
}

// Ptr returns a pointer to a copy of s.
func (s AccessibilityStatus) Ptr() *AccessibilityStatus {
	return &s
}

func (s AccessibilityStatus) String() string {
	return string(s)
}

// Value implements driver.Valuer.
func (s AccessibilityStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid accessibility status %q", string(s))
	}
	return string(s), nil
}

// Scan implements sql.Scanner. NULL columns must be scanned into a
// **AccessibilityStatus (or *AccessibilityStatus field pointer) by the caller.
func (s *AccessibilityStatus) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into AccessibilityStatus", src)
	}

	status := AccessibilityStatus(raw)
	if !status.Valid() {
		return fmt.Errorf("invalid accessibility status %q", raw)
	}
	*s = status
	return nil
}

// StatusEqual compares two optional statuses, treating two unknowns as equal.
func StatusEqual(a, b *AccessibilityStatus) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
