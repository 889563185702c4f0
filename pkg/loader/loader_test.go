package loader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tournament-tools/prize-allocator/pkg/core/model"
)

const minimalTournament = `
name: City Open 2024
players:
  - id: p1
    name: Amit
    rank: 1
    rating: 2100
    gender: M
    dob: "1998-03-02"
categories:
  - id: open
    name: Open
    main: true
    order: 1
    prizes:
      - id: open-1
        place: 1
        cash: 1000
        trophy: true
`

func TestParse_Minimal(t *testing.T) {
	tournament, err := Parse([]byte(minimalTournament))
	require.NoError(t, err)

	assert.Equal(t, "City Open 2024", tournament.Name)
	require.Len(t, tournament.Players, 1)
	player := tournament.Players[0]
	assert.Equal(t, "Amit", player.Name)
	assert.Equal(t, model.GenderMale, player.Gender)
	require.NotNil(t, player.DOB)
	assert.Equal(t, time.Date(1998, time.March, 2, 0, 0, 0, 0, time.UTC), *player.DOB)

	require.Len(t, tournament.Categories, 1)
	category := tournament.Categories[0]
	assert.True(t, category.IsMain)
	assert.True(t, category.Active, "active defaults to true")
	require.Len(t, category.Prizes, 1)
	assert.True(t, category.Prizes[0].Active, "prize active defaults to true")
	assert.Equal(t, 1, tournament.PrizeCount())
}

func TestParse_GenderSpellings(t *testing.T) {
	cases := map[string]model.Gender{
		"F":      model.GenderFemale,
		"female": model.GenderFemale,
		"M":      model.GenderMale,
		"MALE":   model.GenderMale,
		"":       model.GenderUnknown,
	}
	for spelling, want := range cases {
		player, err := normalizePlayer(rawPlayer{ID: "p1", Name: "X", Rank: 1, Gender: spelling})
		require.NoError(t, err, "gender %q", spelling)
		assert.Equal(t, want, player.Gender, "gender %q", spelling)
	}

	_, err := normalizePlayer(rawPlayer{ID: "p1", Name: "X", Rank: 1, Gender: "other"})
	assert.Error(t, err)
}

func TestParse_LegacyCriteriaKeys(t *testing.T) {
	yaml := `
name: Legacy
players:
  - {id: p1, name: Amit, rank: 1}
categories:
  - id: u10
    name: Under 10
    criteria:
      ageMax: 9
      maxElo: 1400
      onlyUnrated: true
      sex: M
    prizes:
      - {id: u10-1, place: 1, cash: 100}
`
	tournament, err := Parse([]byte(yaml))
	require.NoError(t, err)

	criteria := tournament.Categories[0].Criteria
	require.NotNil(t, criteria.MaxAge)
	assert.Equal(t, 9, *criteria.MaxAge)
	require.NotNil(t, criteria.MaxRating)
	assert.Equal(t, 1400, *criteria.MaxRating)
	assert.True(t, criteria.UnratedOnly)
	assert.Equal(t, model.RequireMaleOrUnknown, criteria.Gender)
}

func TestParse_DocumentedKeyBeatsLegacy(t *testing.T) {
	criteria, _, err := normalizeCriteria(rawCriteria{
		MaxAge: intPtr(11),
		AgeMax: intPtr(9),
	})
	require.NoError(t, err)
	assert.Equal(t, 11, *criteria.MaxAge)
}

func TestParse_BareMaleNormalizes(t *testing.T) {
	// "M", "MALE" and "M_OR_UNKNOWN" all land on the same requirement
	for _, spelling := range []string{"M", "MALE", "m_or_unknown"} {
		criteria, _, err := normalizeCriteria(rawCriteria{Gender: spelling})
		require.NoError(t, err, "gender %q", spelling)
		assert.Equal(t, model.RequireMaleOrUnknown, criteria.Gender, "gender %q", spelling)
	}
}

func TestParse_InvertedBoundsClampedWithWarning(t *testing.T) {
	// Inverted bounds are recoverable: the minimum is clamped to the
	// maximum and the load carries on.
	criteria, warnings, err := normalizeCriteria(rawCriteria{MinAge: intPtr(14), MaxAge: intPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, 10, *criteria.MinAge)
	assert.Equal(t, 10, *criteria.MaxAge)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "age bounds inverted")

	criteria, warnings, err = normalizeCriteria(rawCriteria{MinRating: intPtr(1600), MaxRating: intPtr(1400)})
	require.NoError(t, err)
	assert.Equal(t, 1400, *criteria.MinRating)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "rating bounds inverted")
}

func TestParse_InvertedBoundsNotFatal(t *testing.T) {
	yaml := `
name: Clamped
players:
  - {id: p1, name: Amit, rank: 1}
categories:
  - id: u10
    name: Under 10
    criteria:
      minAge: 14
      maxAge: 10
    prizes:
      - {id: u10-1, place: 1, cash: 100}
`
	tournament, err := Parse([]byte(yaml))
	require.NoError(t, err)

	criteria := tournament.Categories[0].Criteria
	assert.Equal(t, 10, *criteria.MinAge)
	require.Len(t, tournament.Warnings, 1)
	assert.Contains(t, tournament.Warnings[0], "categories[0] (u10)")
	assert.Contains(t, tournament.Warnings[0], "age bounds inverted")
}

func TestParse_DuplicateIDsRejected(t *testing.T) {
	players := `
name: Dupes
players:
  - {id: p1, name: Amit, rank: 1}
  - {id: p1, name: Bala, rank: 2}
categories:
  - id: open
    name: Open
    prizes:
      - {id: open-1, place: 1, cash: 100}
`
	_, err := Parse([]byte(players))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate player id "p1"`)

	prizes := `
name: Dupes
players:
  - {id: p1, name: Amit, rank: 1}
categories:
  - id: open
    name: Open
    prizes:
      - {id: open-1, place: 1, cash: 100}
      - {id: open-1, place: 2, cash: 50}
`
	_, err = Parse([]byte(prizes))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate prize id "open-1"`)
}

func TestParse_Overrides(t *testing.T) {
	yaml := `
name: Overridden
players:
  - {id: p1, name: Amit, rank: 1}
categories:
  - id: open
    name: Open
    prizes:
      - {id: open-1, place: 1, cash: 100}
overrides:
  - {prize: open-1, player: p1, force: true}
`
	tournament, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.Len(t, tournament.Overrides, 1)
	assert.Equal(t, model.ManualOverride{PrizeID: "open-1", PlayerID: "p1", Force: true}, tournament.Overrides[0])
}

func TestParse_RejectsInvalidShapes(t *testing.T) {
	cases := map[string]string{
		"missing name": `
players:
  - {id: p1, name: Amit, rank: 1}
categories:
  - {id: open, name: Open, prizes: [{id: open-1, place: 1}]}
`,
		"no players": `
name: Empty
players: []
categories:
  - {id: open, name: Open, prizes: [{id: open-1, place: 1}]}
`,
		"category without prizes": `
name: Bare
players:
  - {id: p1, name: Amit, rank: 1}
categories:
  - {id: open, name: Open, prizes: []}
`,
		"bad category type": `
name: Bad
players:
  - {id: p1, name: Amit, rank: 1}
categories:
  - {id: open, name: Open, type: oldest_girl, prizes: [{id: open-1, place: 1}]}
`,
	}
	for name, yaml := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(yaml))
			assert.Error(t, err)
		})
	}
}

func TestParse_InvalidDOB(t *testing.T) {
	_, err := normalizePlayer(rawPlayer{ID: "p1", Name: "X", Rank: 1, DOB: "02-03-1998"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid dob")
}

func intPtr(v int) *int { return &v }
