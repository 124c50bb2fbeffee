package domain

// Field length limits of the persisted schema.
const (
	MaxNameLength           = 255
	MaxCategoryLength       = 50
	MaxRegionLength         = 50
	MaxAdditionalInfoLength = 1000
	MaxDoorTypeLength       = 50
	MaxAddressLength        = 255
	MaxPhoneLength          = 100
	MaxEmailLength          = 255
	MaxWebsiteLength        = 255

	// DefaultPlaceName is used when a feature carries no name tag.
	DefaultPlaceName = "Unknown"

	// DoorTypeAutomatic is stored when the entrance has an automatic door.
	DoorTypeAutomatic = "automatic"
)

// Place is one physical location built from a single OSM feature.
type Place struct {
	OSMID    int64   `json:"osm_id" db:"osm_id"`
	Name     string  `json:"name" db:"name"`
	Category string  `json:"category" db:"category"`
	Lat      float64 `json:"lat" db:"lat"`
	Lon      float64 `json:"lon" db:"lon"`
	Region   string  `json:"region" db:"region"`

	Contact  Contact               `json:"contact"`
	General  GeneralAccessibility  `json:"general_accessibility"`
	Entrance EntranceAccessibility `json:"entrance_accessibility"`
	Restroom RestroomAccessibility `json:"restroom_accessibility"`
}

// GeneralAccessibility is the overall facet of a place.
type GeneralAccessibility struct {
	Accessibility       *AccessibilityStatus `json:"accessibility" db:"accessibility"`
	IndoorAccessibility *AccessibilityStatus `json:"indoor_accessibility" db:"indoor_accessibility"`
	AdditionalInfo      *string              `json:"additional_info" db:"additional_info"`
}

// EntranceAccessibility describes the way in.
// Accessibility and Lift have no OSM source and are only filled by user edits.
type EntranceAccessibility struct {
	Accessibility *AccessibilityStatus `json:"accessibility" db:"accessibility"`
	StepCount     *AccessibilityStatus `json:"step_count" db:"step_count"`
	StepHeight    *AccessibilityStatus `json:"step_height" db:"step_height"`
	Ramp          *AccessibilityStatus `json:"ramp" db:"ramp"`
	Lift          *AccessibilityStatus `json:"lift" db:"lift"`
	EntranceWidth *AccessibilityStatus `json:"entrance_width" db:"entrance_width"`
	DoorType      *string              `json:"door_type" db:"door_type"`
}

// RestroomAccessibility describes the accessible toilet of a place.
type RestroomAccessibility struct {
	Accessibility  *AccessibilityStatus `json:"accessibility" db:"accessibility"`
	DoorWidth      *AccessibilityStatus `json:"door_width" db:"door_width"`
	RoomManeuver   *AccessibilityStatus `json:"room_maneuver" db:"room_maneuver"`
	GrabRails      *AccessibilityStatus `json:"grab_rails" db:"grab_rails"`
	Sink           *AccessibilityStatus `json:"sink" db:"sink"`
	ToiletSeat     *AccessibilityStatus `json:"toilet_seat" db:"toilet_seat"`
	EmergencyAlarm *AccessibilityStatus `json:"emergency_alarm" db:"emergency_alarm"`
	EuroKey        *bool                `json:"euro_key" db:"euro_key"`
}

// Contact holds the address and contact channels of a place.
type Contact struct {
	Address *string `json:"address" db:"address"`
	Phone   *string `json:"phone" db:"phone"`
	Email   *string `json:"email" db:"email"`
	Website *string `json:"website" db:"website"`
}

// Persisted is a facet as it exists in the store, together with its
// user_modified protection flag.
type Persisted[T any] struct {
	Value        T
	UserModified bool
}

// StoredFacets are the persisted facets of one place. A nil facet has no row yet.
type StoredFacets struct {
	General  *Persisted[GeneralAccessibility]
	Entrance *Persisted[EntranceAccessibility]
	Restroom *Persisted[RestroomAccessibility]
}

// PlaceDetails is the read model served to downstream consumers.
type PlaceDetails struct {
	Place
	GeneralUserModified  bool `json:"general_user_modified"`
	EntranceUserModified bool `json:"entrance_user_modified"`
	RestroomUserModified bool `json:"restroom_user_modified"`
}
