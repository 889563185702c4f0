package engine

import (
	"fmt"
	"time"

	"github.com/tournament-tools/prize-allocator/pkg/core/model"
)

// DetectPriorityTies scans the full queue after allocation for true ties:
// prizes whose priority keys are identical all the way through the brochure
// order, so only the arbitrary prize-id ordering separated them, with at
// least one player eligible (caps ignored) for two or more of them. These
// are reported for the operator, never auto-resolved.
func DetectPriorityTies(
	queue []QueueEntry,
	players []*model.Player,
	rules model.Rules,
	refDate time.Time,
	bands map[string]model.EffectiveAgeBand,
	comparator *PrizeComparator,
) []Conflict {
	groups := make(map[string][]QueueEntry)
	var keyOrder []string // queue order, keeps conflict output deterministic
	for _, entry := range queue {
		key := comparator.Key(entry)
		if _, seen := groups[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		groups[key] = append(groups[key], entry)
	}

	var conflicts []Conflict
	for _, key := range keyOrder {
		group := groups[key]
		if len(group) < 2 {
			continue
		}

		// Full eligibility, ignoring multi-prize caps: which players
		// genuinely sit on the fence between these prizes?
		var tiedPlayers []string
		for _, player := range players {
			eligibleCount := 0
			for _, entry := range group {
				result := EvaluateEligibility(player, entry.Category, rules, refDate, bands)
				if result.Eligible {
					eligibleCount++
				}
			}
			if eligibleCount >= 2 {
				tiedPlayers = append(tiedPlayers, player.ID)
			}
		}
		if len(tiedPlayers) == 0 {
			continue
		}

		prizeIDs := make([]string, len(group))
		for i, entry := range group {
			prizeIDs[i] = entry.Prize.ID
		}
		conflicts = append(conflicts, Conflict{
			Type:            ConflictPriorityTie,
			ImpactedPlayers: tiedPlayers,
			ImpactedPrizes:  prizeIDs,
			Reasons:         []string{fmt.Sprintf("prizes share priority key %s", key)},
			Suggested:       "adjust cash, bundle, or brochure order so the intended prize wins",
		})
	}
	return conflicts
}
