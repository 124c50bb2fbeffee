// Package facet assembles the accessibility facets and the contact details of a
// place from the raw tag map of one OSM feature.
package facet

import (
	"github.com/inwheel/accessibility-importer/internal/domain"
	"github.com/inwheel/accessibility-importer/internal/parser"
)

// Facets is everything the builder derives from one tag map.
type Facets struct {
	General  domain.GeneralAccessibility
	Entrance domain.EntranceAccessibility
	Restroom domain.RestroomAccessibility
	Contact  domain.Contact
}

// Build derives all facets from a tag map. Unrecognized keys are ignored and
// uninterpretable values leave the field unknown.
func Build(tags map[string]string) Facets {
	return Facets{
		General:  BuildGeneral(tags),
		Entrance: BuildEntrance(tags),
		Restroom: BuildRestroom(tags),
		Contact:  BuildContact(tags),
	}
}

// BuildGeneral derives the general facet.
func BuildGeneral(tags map[string]string) domain.GeneralAccessibility {
	return domain.GeneralAccessibility{
		Accessibility:       parser.YesNoLimited(pickTag(tags, keyWheelchair)),
		IndoorAccessibility: parser.YesNoLimited(pickTag(tags, keyTurningCircle)),
		AdditionalInfo:      truncatePtr(pickTag(tags, keyWheelchairDescription), domain.MaxAdditionalInfoLength),
	}
}

// BuildEntrance derives the entrance facet. Overall accessibility and lift have
// no tag source and stay unknown.
func BuildEntrance(tags map[string]string) domain.EntranceAccessibility {
	stepCount := parser.ParseCountPtr(pickTag(tags, keyEntranceStepCount, keyEntranceSteps))
	stepHeight := parser.ParseMetersPtr(pickTag(tags, keyEntranceKerb))
	width := parser.ParseMetersPtr(pickTag(tags, keyDoorWidth, keyEntranceWidth))

	return domain.EntranceAccessibility{
		StepCount:     parser.StepCountRating(stepCount),
		StepHeight:    parser.StepHeightRating(stepHeight),
		Ramp:          parser.YesNoLimited(pickTag(tags, keyEntranceRamp, keyRamp, keyWheelchairRamp)),
		EntranceWidth: parser.WidthRating(width),
		DoorType:      doorType(tags),
	}
}

func doorType(tags map[string]string) *string {
	if token := parser.NormalizePtr(pickTag(tags, keyAutomaticDoor)); token != nil && *token == "yes" {
		automatic := domain.DoorTypeAutomatic
		return &automatic
	}
	return truncatePtr(pickTag(tags, keyEntranceDoor), domain.MaxDoorTypeLength)
}

// BuildRestroom derives the restroom facet. Only door width, maneuvering space
// and the euro key have a tag source.
func BuildRestroom(tags map[string]string) domain.RestroomAccessibility {
	doorWidth := parser.ParseMetersPtr(pickTag(tags, keyToiletDoorWidth))
	front := parser.ParseMetersPtr(pickTag(tags, keyToiletSpaceFront))
	side := parser.ParseMetersPtr(pickTag(tags, keyToiletSpaceSide))

	return domain.RestroomAccessibility{
		DoorWidth:    parser.WidthRating(doorWidth),
		RoomManeuver: parser.RestroomManeuverRating(front, side),
		EuroKey:      euroKey(tags),
	}
}

// euroKey is unknown without a central key tag, otherwise whether the key is a Eurokey.
func euroKey(tags map[string]string) *bool {
	value := pickTag(tags, keyCentralKey, keyToiletCentralKey)
	if value == nil {
		return nil
	}
	isEuroKey := *value == euroKeyValue
	return &isEuroKey
}
