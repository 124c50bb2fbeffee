// Package merge decides, facet by facet, whether an imported value replaces the
// persisted one or a user correction is kept.
package merge

import "github.com/inwheel/accessibility-importer/internal/domain"

// Decision is the outcome for one facet. Every field of the facet follows it.
type Decision int

const (
	// Replace persists the incoming facet, unknown fields included.
	Replace Decision = iota
	// Retain keeps the persisted facet untouched.
	Retain
)

func (d Decision) String() string {
	if d == Retain {
		return "retain"
	}
	return "replace"
}

// Decide applies the protection rule to a single facet. A user-modified facet
// survives unless the caller forces an overwrite.
func Decide(exists, userModified, overwrite bool) Decision {
	if exists && userModified && !overwrite {
		return Retain
	}
	return Replace
}

// Resolve returns the facet value to persist and the decision taken for it.
func Resolve[T any](incoming T, stored *domain.Persisted[T], overwrite bool) (T, Decision) {
	if stored == nil {
		return incoming, Replace
	}
	decision := Decide(true, stored.UserModified, overwrite)
	if decision == Retain {
		return stored.Value, Retain
	}
	return incoming, Replace
}

// Plan is the merged state of one place ready to write.
type Plan struct {
	Place *domain.Place

	General  Decision
	Entrance Decision
	Restroom Decision
}

// Retained counts the facets kept from the store.
func (p Plan) Retained() int {
	n := 0
	for _, d := range []Decision{p.General, p.Entrance, p.Restroom} {
		if d == Retain {
			n++
		}
	}
	return n
}

// Place merges an imported place with its stored facets. Core attributes and
// contact always come from the import. The incoming place is not mutated.
func Place(incoming *domain.Place, stored domain.StoredFacets, overwrite bool) Plan {
	merged := *incoming

	var plan Plan
	merged.General, plan.General = Resolve(incoming.General, stored.General, overwrite)
	merged.Entrance, plan.Entrance = Resolve(incoming.Entrance, stored.Entrance, overwrite)
	merged.Restroom, plan.Restroom = Resolve(incoming.Restroom, stored.Restroom, overwrite)
	plan.Place = &merged

	return plan
}
