package facet

import (
	"strings"

	"github.com/inwheel/accessibility-importer/internal/domain"
)

// FormatAddress returns addr:full when present, otherwise
// "street housenumber, city postcode" with missing parts skipped.
// nil when no address part is tagged.
func FormatAddress(tags map[string]string) *string {
	if full := pickTag(tags, keyAddrFull); full != nil {
		return truncatePtr(full, domain.MaxAddressLength)
	}

	segments := make([]string, 0, 2)
	for _, keys := range [][]string{
		{keyAddrStreet, keyAddrHousenumber},
		{keyAddrCity, keyAddrPostcode},
	} {
		if segment := joinPresent(tags, " ", keys...); segment != "" {
			segments = append(segments, segment)
		}
	}

	address := strings.Join(segments, ", ")
	if address == "" {
		return nil
	}
	return truncatePtr(&address, domain.MaxAddressLength)
}

func joinPresent(tags map[string]string, sep string, keys ...string) string {
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		if v := tags[key]; v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}

// BuildContact derives the contact facet.
func BuildContact(tags map[string]string) domain.Contact {
	return domain.Contact{
		Address: FormatAddress(tags),
		Phone:   truncatePtr(pickTag(tags, keyPhone, keyContactPhone), domain.MaxPhoneLength),
		Email:   truncatePtr(pickTag(tags, keyEmail, keyContactEmail), domain.MaxEmailLength),
		Website: truncatePtr(pickTag(tags, keyWebsite, keyContactWebsite), domain.MaxWebsiteLength),
	}
}
