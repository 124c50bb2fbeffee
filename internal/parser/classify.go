package parser

import "github.com/inwheel/accessibility-importer/internal/domain"

// Rating thresholds in meters.
const (
	MaxPartialWidth      = 0.7
	MaxPartialStepHeight = 0.03
	MinManeuverSpace     = 1.5
)

// YesNoLimited rates a wheelchair-style value: yes/wheelchair/designated,
// limited, no. Any other value is unknown.
func YesNoLimited(raw *string) *domain.AccessibilityStatus {
	token := NormalizePtr(raw)
	if token == nil {
		return nil
	}
	switch *token {
	case "yes", "wheelchair", "designated":
		return domain.FullyAccessible.Ptr()
	case "limited":
		return domain.PartiallyAccessible.Ptr()
	case "no":
		return domain.NotAccessible.Ptr()
	default:
		return nil
	}
}

// WidthRating rates a width in meters.
func WidthRating(m *float64) *domain.AccessibilityStatus {
	if m == nil {
		return nil
	}
	switch {
	case *m == 0:
		return domain.FullyAccessible.Ptr()
	case *m > 0 && *m <= MaxPartialWidth:
		return domain.PartiallyAccessible.Ptr()
	case *m > MaxPartialWidth:
		return domain.NotAccessible.Ptr()
	default:
		return nil
	}
}

// StepCountRating rates the number of entrance steps.
func StepCountRating(count *int) *domain.AccessibilityStatus {
	if count == nil {
		return nil
	}
	switch {
	case *count == 0:
		return domain.FullyAccessible.Ptr()
	case *count == 1:
		return domain.PartiallyAccessible.Ptr()
	case *count > 1:
		return domain.NotAccessible.Ptr()
	default:
		return nil
	}
}

// StepHeightRating rates a kerb/step height in meters.
func StepHeightRating(h *float64) *domain.AccessibilityStatus {
	if h == nil {
		return nil
	}
	switch {
	case *h == 0:
		return domain.FullyAccessible.Ptr()
	case *h > 0 && *h <= MaxPartialStepHeight:
		return domain.PartiallyAccessible.Ptr()
	case *h > MaxPartialStepHeight:
		return domain.NotAccessible.Ptr()
	default:
		return nil
	}
}

// RestroomManeuverRating rates the free space in front of and beside the toilet.
// Both clearances must be known; both must reach 1.5 m for full access.
func RestroomManeuverRating(front, side *float64) *domain.AccessibilityStatus {
	if front == nil || side == nil {
		return nil
	}
	if *front >= MinManeuverSpace && *side >= MinManeuverSpace {
		return domain.FullyAccessible.Ptr()
	}
	return domain.NotAccessible.Ptr()
}
