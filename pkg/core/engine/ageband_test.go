package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tournament-tools/prize-allocator/pkg/core/model"
)

// recordingObserver captures engine events for assertions.
type recordingObserver struct {
	clamped    []string
	assigned   []string
	unfilled   []string
}

func (r *recordingObserver) BandClamped(categoryID string, min, max int) {
	r.clamped = append(r.clamped, categoryID)
}
func (r *recordingObserver) EligibilityEvaluated(string, string, EligibilityResult) {}
func (r *recordingObserver) PrizeAssigned(prizeID, playerID string, manual bool) {
	r.assigned = append(r.assigned, prizeID)
}
func (r *recordingObserver) PrizeUnfilled(prizeID string, reason Code) {
	r.unfilled = append(r.unfilled, prizeID)
}

func ageCategory(id string, maxAge int) *model.Category {
	return &model.Category{
		ID:       id,
		Active:   true,
		Criteria: model.Criteria{MaxAge: intPtr(maxAge)},
	}
}

func TestDeriveAgeBands_SiblingsShareABand(t *testing.T) {
	// A boys/girls pair capped at 8 must receive the identical band.
	categories := []*model.Category{
		ageCategory("u8_boys", 8),
		ageCategory("u8_girls", 8),
		ageCategory("u12", 12),
	}

	bands := DeriveAgeBands(categories, nil)
	require.Len(t, bands, 3)

	assert.Equal(t, bands["u8_boys"], bands["u8_girls"])
	assert.Equal(t, model.EffectiveAgeBand{MinAge: 0, MaxAge: 8}, bands["u8_boys"])
	assert.Equal(t, model.EffectiveAgeBand{MinAge: 9, MaxAge: 12}, bands["u12"])
}

func TestDeriveAgeBands_DisjointAcrossDistinctMaxAges(t *testing.T) {
	categories := []*model.Category{
		ageCategory("u8", 8),
		ageCategory("u10", 10),
		ageCategory("u12", 12),
		ageCategory("u16", 16),
	}

	bands := DeriveAgeBands(categories, nil)

	assert.Equal(t, model.EffectiveAgeBand{MinAge: 0, MaxAge: 8}, bands["u8"])
	assert.Equal(t, model.EffectiveAgeBand{MinAge: 9, MaxAge: 10}, bands["u10"])
	assert.Equal(t, model.EffectiveAgeBand{MinAge: 11, MaxAge: 12}, bands["u12"])
	assert.Equal(t, model.EffectiveAgeBand{MinAge: 13, MaxAge: 16}, bands["u16"])

	// No pair of bands from distinct max ages overlaps
	ids := []string{"u8", "u10", "u12", "u16"}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := bands[ids[i]], bands[ids[j]]
			overlaps := a.MinAge <= b.MaxAge && b.MinAge <= a.MaxAge
			assert.False(t, overlaps, "%s and %s overlap", ids[i], ids[j])
		}
	}
}

func TestDeriveAgeBands_ExplicitMinPushesBandDown(t *testing.T) {
	u12 := ageCategory("u12", 12)
	u12.Criteria.MinAge = intPtr(10)
	categories := []*model.Category{
		ageCategory("u8", 8),
		u12,
	}

	bands := DeriveAgeBands(categories, nil)

	// Derived min would be 9; explicit min 10 is higher so it wins.
	assert.Equal(t, model.EffectiveAgeBand{MinAge: 10, MaxAge: 12}, bands["u12"])
}

func TestDeriveAgeBands_ExplicitMinBelowDerivedIsIgnored(t *testing.T) {
	u12 := ageCategory("u12", 12)
	u12.Criteria.MinAge = intPtr(5) // below derived floor of 9
	categories := []*model.Category{
		ageCategory("u8", 8),
		u12,
	}

	bands := DeriveAgeBands(categories, nil)
	assert.Equal(t, model.EffectiveAgeBand{MinAge: 9, MaxAge: 12}, bands["u12"])
}

func TestDeriveAgeBands_ClampInvertedRange(t *testing.T) {
	u10 := ageCategory("u10", 10)
	u10.Criteria.MinAge = intPtr(14) // min above its own max
	categories := []*model.Category{
		ageCategory("u8", 8),
		u10,
	}

	observer := &recordingObserver{}
	bands := DeriveAgeBands(categories, observer)

	band := bands["u10"]
	assert.LessOrEqual(t, band.MinAge, band.MaxAge)
	assert.Contains(t, observer.clamped, "u10")
}

func TestDeriveAgeBands_SkipsInactiveAndUnbounded(t *testing.T) {
	inactive := ageCategory("inactive", 8)
	inactive.Active = false
	open := &model.Category{ID: "open", Active: true}

	bands := DeriveAgeBands([]*model.Category{inactive, open}, nil)
	assert.Empty(t, bands)
}
