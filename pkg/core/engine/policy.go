package engine

import (
	"github.com/tournament-tools/prize-allocator/pkg/core/model"
)

// CanPlayerTakePrize decides whether a player with the given existing wins
// may additionally take a prize from category. won holds the categories of
// the player's current assignments.
func CanPlayerTakePrize(won []*model.Category, policy model.MultiPrizePolicy, category *model.Category) bool {
	switch policy {
	case model.MultiPrizeUnlimited:
		return true
	case model.MultiPrizeMainPlusOneSide:
		if len(won) >= 2 {
			return false
		}
		for _, c := range won {
			if c.IsMain == category.IsMain {
				return false
			}
		}
		return true
	default:
		// single
		return len(won) == 0
	}
}
