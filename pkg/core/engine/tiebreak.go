package engine

import (
	"sort"

	"github.com/tournament-tools/prize-allocator/pkg/core/model"
)

// SortCandidates orders the eligible players for a single prize, best first.
// Youngest categories rank by date of birth; everything else ranks by
// tournament placement with the configured tie-break fields. Both sorts are
// stable so "none" tie-breaking leaves equal players in encountered order.
func SortCandidates(players []*model.Player, category *model.Category, rules model.Rules) {
	if category.Type.IsYoungest() {
		sortYoungest(players)
		return
	}
	sortStandard(players, rules.TieBreakFields)
}

func sortStandard(players []*model.Player, fields []model.TieBreakField) {
	sort.SliceStable(players, func(i, j int) bool {
		a, b := players[i], players[j]
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		for _, field := range fields {
			switch field {
			case model.TieBreakRating:
				if a.Rating != b.Rating {
					return a.Rating > b.Rating
				}
			case model.TieBreakName:
				if a.Name != b.Name {
					return a.Name < b.Name
				}
			}
		}
		return false
	})
}

// sortYoungest puts the most recent date of birth first. Missing DOB sorts
// last; remaining ties fall to rank, rating, then name.
func sortYoungest(players []*model.Player) {
	sort.SliceStable(players, func(i, j int) bool {
		a, b := players[i], players[j]
		switch {
		case a.DOB == nil && b.DOB == nil:
			// fall through to rank
		case a.DOB == nil:
			return false
		case b.DOB == nil:
			return true
		case !a.DOB.Equal(*b.DOB):
			return a.DOB.After(*b.DOB)
		}
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.Name < b.Name
	})
}
