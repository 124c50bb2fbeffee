package facet

import (
	"github.com/inwheel/accessibility-importer/internal/domain"
)

// BuildPlace turns one feature into a Place for the given region.
// ok is false when the feature matches none of the category vocabularies.
func BuildPlace(feature domain.Feature, region string) (*domain.Place, bool) {
	category, ok := domain.ResolveCategory(feature.Tags)
	if !ok {
		return nil, false
	}

	name := domain.DefaultPlaceName
	if v, present := feature.Tags[keyName]; present {
		name = v
	}

	facets := Build(feature.Tags)

	return &domain.Place{
		OSMID:    feature.ID,
		Name:     truncate(name, domain.MaxNameLength),
		Category: truncate(category, domain.MaxCategoryLength),
		Lat:      feature.Lat,
		Lon:      feature.Lon,
		Region:   truncate(region, domain.MaxRegionLength),
		Contact:  facets.Contact,
		General:  facets.General,
		Entrance: facets.Entrance,
		Restroom: facets.Restroom,
	}, true
}
