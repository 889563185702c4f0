package engine

import (
	"sort"

	"github.com/tournament-tools/prize-allocator/pkg/core/model"
)

// DeriveAgeBands turns the raw max-age declarations of all active categories
// into disjoint effective bands. It runs once per allocation, only under the
// non-overlapping policy.
//
// Categories are grouped by identical max age first, so sibling categories
// sharing a cutoff (a boys/girls pair both capped at 8) always receive the
// same band. Grouping one category at a time instead produces inverted
// ranges and must never be reintroduced.
func DeriveAgeBands(categories []*model.Category, observer Observer) map[string]model.EffectiveAgeBand {
	if observer == nil {
		observer = NopObserver{}
	}

	// Group categories by declared max age.
	groups := make(map[int][]*model.Category)
	for _, category := range categories {
		if !category.Active || category.Criteria.MaxAge == nil {
			continue
		}
		max := *category.Criteria.MaxAge
		groups[max] = append(groups[max], category)
	}
	if len(groups) == 0 {
		return map[string]model.EffectiveAgeBand{}
	}

	maxAges := make([]int, 0, len(groups))
	for max := range groups {
		maxAges = append(maxAges, max)
	}
	sort.Ints(maxAges)

	bands := make(map[string]model.EffectiveAgeBand)
	previousMax := -1
	for _, max := range maxAges {
		derivedMin := previousMax + 1

		// An explicit min on any group member can push the band down, but
		// never below the derived floor.
		effectiveMin := derivedMin
		if explicit, ok := lowestExplicitMin(groups[max]); ok && explicit > derivedMin {
			effectiveMin = explicit
		}

		if effectiveMin > max {
			for _, category := range groups[max] {
				observer.BandClamped(category.ID, effectiveMin, max)
			}
			effectiveMin = max
		}

		for _, category := range groups[max] {
			bands[category.ID] = model.EffectiveAgeBand{MinAge: effectiveMin, MaxAge: max}
		}
		previousMax = max
	}
	return bands
}

// lowestExplicitMin returns the smallest declared min age across the group,
// or false when no member declares one.
func lowestExplicitMin(group []*model.Category) (int, bool) {
	found := false
	lowest := 0
	for _, category := range group {
		if category.Criteria.MinAge == nil {
			continue
		}
		if !found || *category.Criteria.MinAge < lowest {
			lowest = *category.Criteria.MinAge
			found = true
		}
	}
	return lowest, found
}
