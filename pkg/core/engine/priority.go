package engine

import (
	"fmt"
	"strings"

	"github.com/tournament-tools/prize-allocator/pkg/core/model"
)

// QueueEntry is one (category, prize) pair in the allocation queue.
type QueueEntry struct {
	Category *model.Category
	Prize    *model.Prize
}

// PrizeComparator is the total order over queue entries that decides
// allocation sequence. Cash-maximizing prizes are settled first so the
// greedy pass never lets a lower-value prize steal a player from a
// higher-value one.
type PrizeComparator struct {
	bundleOrder []string
	mode        model.MainVsSideMode
}

// NewPrizeComparator builds a comparator from the rule set. An empty or
// unknown component order falls back to trophy > gift > medal.
func NewPrizeComparator(rules model.Rules) *PrizeComparator {
	order := sanitizeBundleOrder(rules.NonCashPriorityOrder)
	mode := rules.MainVsSideMode
	if mode != model.MainFirst {
		mode = model.PlaceFirst
	}
	return &PrizeComparator{bundleOrder: order, mode: mode}
}

func sanitizeBundleOrder(order []string) []string {
	seen := make(map[string]bool, 3)
	out := make([]string, 0, 3)
	for _, component := range order {
		c := strings.ToLower(strings.TrimSpace(component))
		switch c {
		case "trophy", "gift", "medal":
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	for _, c := range []string{"trophy", "gift", "medal"} {
		if !seen[c] {
			out = append(out, c)
		}
	}
	return out
}

// Less reports whether entry a should be allocated before entry b.
func (c *PrizeComparator) Less(a, b QueueEntry) bool {
	// 1. Cash descending.
	if a.Prize.Cash != b.Prize.Cash {
		return a.Prize.Cash > b.Prize.Cash
	}

	// 2. Non-cash bundle, component by component in configured order.
	for _, component := range c.bundleOrder {
		av, bv := hasComponent(a.Prize, component), hasComponent(b.Prize, component)
		if av != bv {
			return av
		}
	}

	// 3. Main vs side is resolved before place only in main_first mode.
	// Same-flag comparisons fall through to place regardless of mode.
	if c.mode == model.MainFirst && a.Category.IsMain != b.Category.IsMain {
		return a.Category.IsMain
	}

	// 4. Place ascending, then main descending (covers place_first mode),
	// then brochure order, then prize id as the stable final tie-break.
	if a.Prize.Place != b.Prize.Place {
		return a.Prize.Place < b.Prize.Place
	}
	if a.Category.IsMain != b.Category.IsMain {
		return a.Category.IsMain
	}
	if a.Category.BrochureOrder != b.Category.BrochureOrder {
		return a.Category.BrochureOrder < b.Category.BrochureOrder
	}
	return a.Prize.ID < b.Prize.ID
}

// Key serializes every comparison field short of the final prize-id
// tie-break. Two entries with equal keys are a true priority tie: only the
// arbitrary id ordering separates them.
func (c *PrizeComparator) Key(e QueueEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "cash=%d", e.Prize.Cash)
	for _, component := range c.bundleOrder {
		fmt.Fprintf(&b, "|%s=%t", component, hasComponent(e.Prize, component))
	}
	fmt.Fprintf(&b, "|place=%d|main=%t|order=%d",
		e.Prize.Place, e.Category.IsMain, e.Category.BrochureOrder)
	return b.String()
}

// Explain renders the priority of an entry for the coverage report,
// e.g. "cash 500 > trophy > place 2 (side)".
func (c *PrizeComparator) Explain(e QueueEntry) string {
	parts := []string{fmt.Sprintf("cash %d", e.Prize.Cash)}
	for _, component := range c.bundleOrder {
		if hasComponent(e.Prize, component) {
			parts = append(parts, component)
		}
	}
	kind := "side"
	if e.Category.IsMain {
		kind = "main"
	}
	parts = append(parts, fmt.Sprintf("place %d (%s)", e.Prize.Place, kind))
	return strings.Join(parts, " > ")
}

func hasComponent(prize *model.Prize, component string) bool {
	switch component {
	case "trophy":
		return prize.Trophy
	case "gift":
		return prize.HasGift()
	case "medal":
		return prize.Medal
	}
	return false
}
