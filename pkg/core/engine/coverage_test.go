package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tournament-tools/prize-allocator/pkg/core/model"
)

func TestClassifyFailCodes_FixedPrecedence(t *testing.T) {
	// rating beats age beats gender beats location beats labels
	assert.Equal(t, ReasonTooStrictRating,
		ClassifyFailCodes([]Code{CodeAgeAboveMax, CodeRatingBelowMin, CodeGenderMismatch}))
	assert.Equal(t, ReasonTooStrictAge,
		ClassifyFailCodes([]Code{CodeGenderMissing, CodeAgeAboveMax, CodeStateNotAllowed}))
	assert.Equal(t, ReasonTooStrictGender,
		ClassifyFailCodes([]Code{CodeGenderMissing, CodeCityNotAllowed}))
	assert.Equal(t, ReasonTooStrictLocation,
		ClassifyFailCodes([]Code{CodeClubNotAllowed, CodeTypeNotAllowed}))
	assert.Equal(t, ReasonTooStrictLabels,
		ClassifyFailCodes([]Code{CodeGroupNotAllowed}))
	assert.Equal(t, ReasonNoEligiblePlayers, ClassifyFailCodes(nil))
}

func TestBuildDiagnosis_RatingBand(t *testing.T) {
	category := &model.Category{
		ID:       "band",
		Criteria: model.Criteria{MinRating: intPtr(1200), MaxRating: intPtr(1400)},
	}
	text := BuildDiagnosis(category, nil, ReasonTooStrictRating, model.MultiPrizeSingle)
	assert.Equal(t, "Rating band 1200-1400 excludes all players", text)
}

func TestBuildDiagnosis_UnratedOnly(t *testing.T) {
	category := &model.Category{ID: "nr", Criteria: model.Criteria{UnratedOnly: true}}
	text := BuildDiagnosis(category, nil, ReasonTooStrictRating, model.MultiPrizeSingle)
	assert.Equal(t, "Unrated-only category excludes every rated player", text)
}

func TestBuildDiagnosis_AgeUsesEffectiveBand(t *testing.T) {
	category := &model.Category{ID: "u10", Criteria: model.Criteria{MaxAge: intPtr(9)}}
	bands := map[string]model.EffectiveAgeBand{"u10": {MinAge: 7, MaxAge: 9}}

	text := BuildDiagnosis(category, bands, ReasonTooStrictAge, model.MultiPrizeSingle)
	assert.Equal(t, "Age band 7-9 excludes all players", text)

	// Without a derived band, the raw max renders as an open range
	text = BuildDiagnosis(category, nil, ReasonTooStrictAge, model.MultiPrizeSingle)
	assert.Equal(t, "Age band up to 9 excludes all players", text)
}

func TestBuildDiagnosis_GenderAndLocation(t *testing.T) {
	girls := &model.Category{ID: "g", Criteria: model.Criteria{Gender: model.RequireFemale}}
	assert.Equal(t, "Requires gender F; no qualifying players",
		BuildDiagnosis(girls, nil, ReasonTooStrictGender, model.MultiPrizeSingle))

	local := &model.Category{ID: "l", Criteria: model.Criteria{States: []string{"Kerala"}}}
	assert.Equal(t, "Location restriction (state: Kerala) excludes all players",
		BuildDiagnosis(local, nil, ReasonTooStrictLocation, model.MultiPrizeSingle))
}

func TestBuildDiagnosis_PolicyBlock(t *testing.T) {
	category := &model.Category{ID: "open"}
	text := BuildDiagnosis(category, nil, ReasonBlockedByPrizePolicy, model.MultiPrizeSingle)
	assert.Equal(t, `Eligible players exist but all are capped by the "single" multi-prize policy`, text)
}
