package domain

// Tag keys of the category vocabularies, in resolution priority order.
const (
	VocabularyAmenity = "amenity"
	VocabularyShop    = "shop"
	VocabularyTourism = "tourism"
)

// CategoryVocabulary lists the vocabularies a category can be taken from.
// The order is the resolution priority when a feature carries several of them.
var CategoryVocabulary = []struct {
	Key    string
	Values []string
}{
	{
		Key: VocabularyAmenity,
		Values: []string{
			"restaurant", "cafe", "bar", "pub", "pharmacy", "hospital",
			"fuel", "toilets", "library", "bank", "cinema", "university",
			"school", "kindergarten", "college", "clinic", "nightclub", "courthouse",
		},
	},
	{
		Key: VocabularyShop,
		Values: []string{
			"supermarket", "bakery", "clothes",
			"electronics", "convenience", "cosmetics",
			"car", "bicycle", "motorcycle", "furniture",
			"jewelry", "shoes", "sports", "books",
		},
	},
	{
		Key:    VocabularyTourism,
		Values: []string{"hotel", "hostel", "museum"},
	},
}

var categoryIndex = buildCategoryIndex()

func buildCategoryIndex() map[string]map[string]struct{} {
	index := make(map[string]map[string]struct{}, len(CategoryVocabulary))
	for _, vocab := range CategoryVocabulary {
		values := make(map[string]struct{}, len(vocab.Values))
		for _, v := range vocab.Values {
			values[v] = struct{}{}
		}
		index[vocab.Key] = values
	}
	return index
}

// ResolveCategory picks exactly one category for a tag map: the first vocabulary
// (amenity, shop, tourism) whose value is known wins. Values are matched exactly,
// as written in the extract. ok is false when no vocabulary matches.
func ResolveCategory(tags map[string]string) (category string, ok bool) {
	for _, vocab := range CategoryVocabulary {
		value, present := tags[vocab.Key]
		if !present {
			continue
		}
		if _, known := categoryIndex[vocab.Key][value]; known {
			return value, true
		}
	}
	return "", false
}

// CategoryFilters returns the osmium tags-filter expressions (n/key=value) for the vocabulary.
func CategoryFilters() []string {
	var filters []string
	for _, vocab := range CategoryVocabulary {
		for _, v := range vocab.Values {
			filters = append(filters, "n/"+vocab.Key+"="+v)
		}
	}
	return filters
}
