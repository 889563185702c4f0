package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/tournament-tools/prize-allocator/pkg/core/model"
)

// Input is one allocation run's complete snapshot. The engine reads it and
// nothing else: no I/O, no wall clock, no shared state between runs.
type Input struct {
	Players       []*model.Player
	Categories    []*model.Category
	Rules         model.Rules
	ReferenceDate time.Time
	Overrides     []model.ManualOverride

	// Observer receives structured run events; nil means no observation.
	Observer Observer
}

// Winner records one prize assignment.
type Winner struct {
	PrizeID    string
	CategoryID string
	PlayerID   string
	Reasons    []Code
	IsManual   bool
}

// UnfilledEntry records a prize nobody could take, with diagnosis.
type UnfilledEntry struct {
	PrizeID    string
	CategoryID string
	ReasonCode Code
	FailCodes  []Code
	Diagnosis  string
}

// Conflict is a condition an operator must resolve by hand: a true priority
// tie between prizes, or a manual override that failed validation.
type Conflict struct {
	Type            string
	ImpactedPlayers []string
	ImpactedPrizes  []string
	Reasons         []string
	Suggested       string
}

// Result is the complete outcome of a run. Every active prize appears in
// exactly one of Winners or Unfilled.
type Result struct {
	Winners   []Winner
	Unfilled  []UnfilledEntry
	Conflicts []Conflict
	Coverage  []PrizeCoverage
}

// Allocate runs the greedy allocation pass: order all prizes by priority,
// apply manual overrides, then walk the queue assigning the best eligible
// uncapped player to each prize or diagnosing why none exists. A single
// deterministic pass, no backtracking; the priority order is what guarantees
// that no lower-value prize steals a player from a higher-value one.
func Allocate(input Input) *Result {
	observer := input.Observer
	if observer == nil {
		observer = NopObserver{}
	}

	var bands map[string]model.EffectiveAgeBand
	if input.Rules.AgeBandPolicy == model.AgeBandNonOverlapping {
		bands = DeriveAgeBands(input.Categories, observer)
	}

	comparator := NewPrizeComparator(input.Rules)
	queue := buildQueue(input.Categories)
	sort.SliceStable(queue, func(i, j int) bool {
		return comparator.Less(queue[i], queue[j])
	})

	state := &runState{
		input:      input,
		observer:   observer,
		bands:      bands,
		comparator: comparator,
		result:     &Result{Winners: []Winner{}, Unfilled: []UnfilledEntry{}, Conflicts: []Conflict{}, Coverage: []PrizeCoverage{}},
		wonBy:      make(map[string][]*model.Category),
		assigned:   make(map[string]bool),
	}

	state.applyOverrides(queue)

	for _, entry := range queue {
		if state.assigned[entry.Prize.ID] {
			continue
		}
		state.allocatePrize(entry)
	}

	state.result.Conflicts = append(state.result.Conflicts,
		DetectPriorityTies(queue, input.Players, input.Rules, input.ReferenceDate, bands, comparator)...)

	return state.result
}

// runState is the only mutable state of a run, owned exclusively by the
// allocation pass and touched in prize-priority order.
type runState struct {
	input      Input
	observer   Observer
	bands      map[string]model.EffectiveAgeBand
	comparator *PrizeComparator
	result     *Result
	wonBy      map[string][]*model.Category // player id -> categories won
	assigned   map[string]bool              // prize id -> settled
}

func buildQueue(categories []*model.Category) []QueueEntry {
	var queue []QueueEntry
	for _, category := range categories {
		if !category.Active {
			continue
		}
		for i := range category.Prizes {
			prize := &category.Prizes[i]
			if !prize.Active {
				continue
			}
			queue = append(queue, QueueEntry{Category: category, Prize: prize})
		}
	}
	return queue
}

// applyOverrides settles manual overrides ahead of the greedy pass. A
// non-forced override that fails eligibility becomes a conflict and is
// skipped; the prize then flows through the normal queue.
func (s *runState) applyOverrides(queue []QueueEntry) {
	entries := make(map[string]QueueEntry, len(queue))
	for _, entry := range queue {
		entries[entry.Prize.ID] = entry
	}
	players := make(map[string]*model.Player, len(s.input.Players))
	for _, player := range s.input.Players {
		players[player.ID] = player
	}

	for _, override := range s.input.Overrides {
		entry, okPrize := entries[override.PrizeID]
		player, okPlayer := players[override.PlayerID]
		if !okPrize || !okPlayer {
			s.result.Conflicts = append(s.result.Conflicts, Conflict{
				Type:            ConflictInvalidOverride,
				ImpactedPlayers: []string{override.PlayerID},
				ImpactedPrizes:  []string{override.PrizeID},
				Reasons:         []string{"override references an unknown prize or player"},
				Suggested:       "remove or correct the override",
			})
			continue
		}
		if s.assigned[override.PrizeID] {
			s.result.Conflicts = append(s.result.Conflicts, Conflict{
				Type:            ConflictInvalidOverride,
				ImpactedPlayers: []string{override.PlayerID},
				ImpactedPrizes:  []string{override.PrizeID},
				Reasons:         []string{"prize already assigned by an earlier override"},
				Suggested:       "keep only one override per prize",
			})
			continue
		}

		reasons := []Code{}
		if !override.Force {
			result := EvaluateEligibility(player, entry.Category, s.input.Rules, s.input.ReferenceDate, s.bands)
			if !result.Eligible {
				s.result.Conflicts = append(s.result.Conflicts, Conflict{
					Type:            ConflictInvalidOverride,
					ImpactedPlayers: []string{player.ID},
					ImpactedPrizes:  []string{entry.Prize.ID},
					Reasons:         codesToStrings(result.FailCodes),
					Suggested:       "set force on the override or pick an eligible player",
				})
				continue
			}
			reasons = result.PassCodes
		}

		s.recordWinner(entry, player, reasons, true)
		s.result.Coverage = append(s.result.Coverage, PrizeCoverage{
			PrizeID:      entry.Prize.ID,
			CategoryID:   entry.Category.ID,
			CategoryName: entry.Category.Name,
			Diagnosis:    "manual override",
			Priority:     s.comparator.Explain(entry),
		})
	}
}

// allocatePrize settles one queued prize: partition the roster into eligible
// before and after the multi-prize cap, pick a winner via the category's
// tie-break order, or diagnose the hole.
func (s *runState) allocatePrize(entry QueueEntry) {
	var beforeCap []*model.Player
	var afterCap []*model.Player
	var aggregatedFails []Code
	passCodes := make(map[string][]Code)

	for _, player := range s.input.Players {
		result := EvaluateEligibility(player, entry.Category, s.input.Rules, s.input.ReferenceDate, s.bands)
		s.observer.EligibilityEvaluated(player.ID, entry.Category.ID, result)
		if !result.Eligible {
			aggregatedFails = append(aggregatedFails, result.FailCodes...)
			continue
		}
		beforeCap = append(beforeCap, player)
		passCodes[player.ID] = result.PassCodes
		if CanPlayerTakePrize(s.wonBy[player.ID], s.input.Rules.MultiPrizePolicy, entry.Category) {
			afterCap = append(afterCap, player)
		}
	}

	if len(afterCap) == 0 {
		reason := ReasonBlockedByPrizePolicy
		if len(beforeCap) == 0 {
			reason = ClassifyFailCodes(aggregatedFails)
		}
		diagnosis := BuildDiagnosis(entry.Category, s.bands, reason, s.input.Rules.MultiPrizePolicy)
		s.result.Unfilled = append(s.result.Unfilled, UnfilledEntry{
			PrizeID:    entry.Prize.ID,
			CategoryID: entry.Category.ID,
			ReasonCode: reason,
			FailCodes:  dedupeCodes(aggregatedFails),
			Diagnosis:  diagnosis,
		})
		s.result.Coverage = append(s.result.Coverage, PrizeCoverage{
			PrizeID:           entry.Prize.ID,
			CategoryID:        entry.Category.ID,
			CategoryName:      entry.Category.Name,
			EligibleBeforeCap: len(beforeCap),
			EligibleAfterCap:  0,
			ReasonCode:        reason,
			Diagnosis:         diagnosis,
			Priority:          s.comparator.Explain(entry),
		})
		s.observer.PrizeUnfilled(entry.Prize.ID, reason)
		return
	}

	SortCandidates(afterCap, entry.Category, s.input.Rules)
	winner := afterCap[0]
	s.recordWinner(entry, winner, passCodes[winner.ID], false)
	s.result.Coverage = append(s.result.Coverage, PrizeCoverage{
		PrizeID:           entry.Prize.ID,
		CategoryID:        entry.Category.ID,
		CategoryName:      entry.Category.Name,
		EligibleBeforeCap: len(beforeCap),
		EligibleAfterCap:  len(afterCap),
		Priority:          s.comparator.Explain(entry),
	})
}

func (s *runState) recordWinner(entry QueueEntry, player *model.Player, reasons []Code, manual bool) {
	s.result.Winners = append(s.result.Winners, Winner{
		PrizeID:    entry.Prize.ID,
		CategoryID: entry.Category.ID,
		PlayerID:   player.ID,
		Reasons:    reasons,
		IsManual:   manual,
	})
	s.wonBy[player.ID] = append(s.wonBy[player.ID], entry.Category)
	s.assigned[entry.Prize.ID] = true
	s.observer.PrizeAssigned(entry.Prize.ID, player.ID, manual)
}

func codesToStrings(codes []Code) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = string(c)
	}
	return out
}

func dedupeCodes(codes []Code) []Code {
	seen := make(map[Code]bool, len(codes))
	out := make([]Code, 0, len(codes))
	for _, c := range codes {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// String renders a short run summary, handy for debug logs.
func (r *Result) String() string {
	return fmt.Sprintf("winners=%d unfilled=%d conflicts=%d", len(r.Winners), len(r.Unfilled), len(r.Conflicts))
}
