package facet

import "strings"

// OSM keys read by the builder, grouped by facet.
const (
	keyWheelchair            = "wheelchair"
	keyTurningCircle         = "wheelchair:turning_circle"
	keyWheelchairDescription = "wheelchair:description"

	keyEntranceStepCount = "entrance:step_count"
	keyEntranceSteps     = "entrance:steps"
	keyEntranceKerb      = "entrance:kerb:height"
	keyEntranceRamp      = "entrance:ramp"
	keyRamp              = "ramp"
	keyWheelchairRamp    = "wheelchair:ramp"
	keyDoorWidth         = "door:width"
	keyEntranceWidth     = "entrance:width"
	keyAutomaticDoor     = "entrance:automatic_door"
	keyEntranceDoor      = "entrance:door"

	keyToiletDoorWidth  = "toilets:wheelchair:door_width"
	keyToiletSpaceFront = "toilets:wheelchair:space_front"
	keyToiletSpaceSide  = "toilets:wheelchair:space_side"
	keyCentralKey       = "centralkey"
	keyToiletCentralKey = "toilets:centralkey"

	keyAddrFull        = "addr:full"
	keyAddrStreet      = "addr:street"
	keyAddrHousenumber = "addr:housenumber"
	keyAddrCity        = "addr:city"
	keyAddrPostcode    = "addr:postcode"
	keyPhone           = "phone"
	keyContactPhone    = "contact:phone"
	keyEmail           = "email"
	keyContactEmail    = "contact:email"
	keyWebsite         = "website"
	keyContactWebsite  = "contact:website"

	keyName = "name"

	euroKeyValue = "eurokey"
)

// pickTag returns the value of the first key that carries a non-blank value.
// The value itself is returned untouched.
func pickTag(tags map[string]string, keys ...string) *string {
	for _, key := range keys {
		if val, ok := tags[key]; ok && strings.TrimSpace(val) != "" {
			return &val
		}
	}
	return nil
}

// truncate cuts s to at most max runes.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func truncatePtr(s *string, max int) *string {
	if s == nil {
		return nil
	}
	v := truncate(*s, max)
	return &v
}
