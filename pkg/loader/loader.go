package loader

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/tournament-tools/prize-allocator/pkg/core/model"
)

// Tournament is a loaded, normalized tournament input: the roster, the
// category/prize configuration, and any manual overrides. Shape validation
// and legacy-key mapping happen here; the engine only ever sees the
// canonical model types.
type Tournament struct {
	Name       string
	Players    []*model.Player
	Categories []*model.Category
	Overrides  []model.ManualOverride

	// Warnings are recoverable input ambiguities (inverted bounds, clamped
	// values) the caller should surface; they never abort a load.
	Warnings []string
}

// PrizeCount counts active prizes across active categories.
func (t *Tournament) PrizeCount() int {
	count := 0
	for _, category := range t.Categories {
		if !category.Active {
			continue
		}
		for _, prize := range category.Prizes {
			if prize.Active {
				count++
			}
		}
	}
	return count
}

type rawPlayer struct {
	ID         string `yaml:"id" validate:"required"`
	Name       string `yaml:"name" validate:"required"`
	Rank       int    `yaml:"rank" validate:"required,min=1"`
	Rating     int    `yaml:"rating"`
	Unrated    bool   `yaml:"unrated"`
	DOB        string `yaml:"dob"`
	Gender     string `yaml:"gender"`
	State      string `yaml:"state"`
	City       string `yaml:"city"`
	Club       string `yaml:"club"`
	TypeLabel  string `yaml:"type"`
	GroupLabel string `yaml:"group"`
	Disability string `yaml:"disability"`
}

// rawCriteria accepts both the documented keys and the legacy spellings
// still found in older tournament files. The legacy key only applies when
// its documented twin is absent.
type rawCriteria struct {
	MinAge *int `yaml:"minAge"`
	MaxAge *int `yaml:"maxAge"`
	AgeMin *int `yaml:"ageMin"` // legacy
	AgeMax *int `yaml:"ageMax"` // legacy

	MinRating *int `yaml:"minRating"`
	MaxRating *int `yaml:"maxRating"`
	MinElo    *int `yaml:"minElo"` // legacy
	MaxElo    *int `yaml:"maxElo"` // legacy

	UnratedOnly    bool  `yaml:"unratedOnly"`
	OnlyUnrated    bool  `yaml:"onlyUnrated"` // legacy
	IncludeUnrated *bool `yaml:"includeUnrated"`

	Gender string `yaml:"gender"`
	Sex    string `yaml:"sex"` // legacy

	States       []string            `yaml:"states"`
	Cities       []string            `yaml:"cities"`
	Clubs        []string            `yaml:"clubs"`
	TypeLabels   []string            `yaml:"types"`
	GroupLabels  []string            `yaml:"groups"`
	Disabilities []string            `yaml:"disabilities"`
	Aliases      map[string][]string `yaml:"aliases"`
}

type rawPrize struct {
	ID     string   `yaml:"id" validate:"required"`
	Place  int      `yaml:"place" validate:"required,min=1"`
	Cash   int      `yaml:"cash" validate:"min=0"`
	Trophy bool     `yaml:"trophy"`
	Medal  bool     `yaml:"medal"`
	Gifts  []string `yaml:"gifts"`
	Active *bool    `yaml:"active"`
}

type rawCategory struct {
	ID            string      `yaml:"id" validate:"required"`
	Name          string      `yaml:"name" validate:"required"`
	IsMain        bool        `yaml:"main"`
	BrochureOrder int         `yaml:"order"`
	Active        *bool       `yaml:"active"`
	Type          string      `yaml:"type" validate:"omitempty,oneof=youngest_girl youngest_boy"`
	Criteria      rawCriteria `yaml:"criteria"`
	Prizes        []rawPrize  `yaml:"prizes" validate:"required,min=1,dive"`
}

type rawOverride struct {
	PrizeID  string `yaml:"prize" validate:"required"`
	PlayerID string `yaml:"player" validate:"required"`
	Force    bool   `yaml:"force"`
}

type rawTournament struct {
	Name       string        `yaml:"name" validate:"required"`
	Players    []rawPlayer   `yaml:"players" validate:"required,min=1,dive"`
	Categories []rawCategory `yaml:"categories" validate:"required,min=1,dive"`
	Overrides  []rawOverride `yaml:"overrides" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load reads and normalizes a tournament file.
func Load(path string) (*Tournament, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tournament file: %w", err)
	}
	return Parse(data)
}

// Parse normalizes raw tournament YAML into model types.
func Parse(data []byte) (*Tournament, error) {
	var raw rawTournament
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse tournament file: %w", err)
	}
	if err := validate.Struct(&raw); err != nil {
		return nil, fmt.Errorf("tournament file validation failed: %w", err)
	}

	tournament := &Tournament{Name: raw.Name}

	seenPlayers := make(map[string]bool, len(raw.Players))
	for i, rp := range raw.Players {
		if seenPlayers[rp.ID] {
			return nil, fmt.Errorf("duplicate player id %q", rp.ID)
		}
		seenPlayers[rp.ID] = true

		player, err := normalizePlayer(rp)
		if err != nil {
			return nil, fmt.Errorf("players[%d]: %w", i, err)
		}
		tournament.Players = append(tournament.Players, player)
	}

	seenCategories := make(map[string]bool, len(raw.Categories))
	for i, rc := range raw.Categories {
		if seenCategories[rc.ID] {
			return nil, fmt.Errorf("duplicate category id %q", rc.ID)
		}
		seenCategories[rc.ID] = true

		category, warnings, err := normalizeCategory(rc)
		if err != nil {
			return nil, fmt.Errorf("categories[%d]: %w", i, err)
		}
		for _, warning := range warnings {
			tournament.Warnings = append(tournament.Warnings, fmt.Sprintf("categories[%d] (%s): %s", i, rc.ID, warning))
		}
		tournament.Categories = append(tournament.Categories, category)
	}

	for _, ro := range raw.Overrides {
		tournament.Overrides = append(tournament.Overrides, model.ManualOverride{
			PrizeID:  ro.PrizeID,
			PlayerID: ro.PlayerID,
			Force:    ro.Force,
		})
	}

	return tournament, nil
}

func normalizePlayer(rp rawPlayer) (*model.Player, error) {
	player := &model.Player{
		ID:         rp.ID,
		Name:       strings.TrimSpace(rp.Name),
		Rank:       rp.Rank,
		Rating:     rp.Rating,
		Unrated:    rp.Unrated,
		State:      strings.TrimSpace(rp.State),
		City:       strings.TrimSpace(rp.City),
		Club:       strings.TrimSpace(rp.Club),
		TypeLabel:  strings.TrimSpace(rp.TypeLabel),
		GroupLabel: strings.TrimSpace(rp.GroupLabel),
		Disability: strings.TrimSpace(rp.Disability),
	}

	switch strings.ToUpper(strings.TrimSpace(rp.Gender)) {
	case "F", "FEMALE":
		player.Gender = model.GenderFemale
	case "M", "MALE":
		player.Gender = model.GenderMale
	case "":
		player.Gender = model.GenderUnknown
	default:
		return nil, fmt.Errorf("unrecognized gender %q", rp.Gender)
	}

	if rp.DOB != "" {
		dob, err := time.Parse("2006-01-02", rp.DOB)
		if err != nil {
			return nil, fmt.Errorf("invalid dob: %w", err)
		}
		player.DOB = &dob
	}

	return player, nil
}

func normalizeCategory(rc rawCategory) (*model.Category, []string, error) {
	criteria, warnings, err := normalizeCriteria(rc.Criteria)
	if err != nil {
		return nil, nil, err
	}

	category := &model.Category{
		ID:            rc.ID,
		Name:          strings.TrimSpace(rc.Name),
		IsMain:        rc.IsMain,
		BrochureOrder: rc.BrochureOrder,
		Active:        rc.Active == nil || *rc.Active,
		Type:          model.CategoryType(rc.Type),
		Criteria:      criteria,
	}

	seenPrizes := make(map[string]bool, len(rc.Prizes))
	for _, rp := range rc.Prizes {
		if seenPrizes[rp.ID] {
			return nil, nil, fmt.Errorf("duplicate prize id %q", rp.ID)
		}
		seenPrizes[rp.ID] = true
		category.Prizes = append(category.Prizes, model.Prize{
			ID:     rp.ID,
			Place:  rp.Place,
			Cash:   rp.Cash,
			Trophy: rp.Trophy,
			Medal:  rp.Medal,
			Gifts:  rp.Gifts,
			Active: rp.Active == nil || *rp.Active,
		})
	}

	return category, warnings, nil
}

// normalizeCriteria folds legacy keys into the documented fields and
// canonicalizes the gender requirement. A bare "M" still parses but
// normalizes to M_OR_UNKNOWN, so the evaluator has a single code path.
// Inverted bounds are a recoverable ambiguity: the minimum is clamped to
// the maximum and a warning recorded, never a fatal error.
func normalizeCriteria(rc rawCriteria) (model.Criteria, []string, error) {
	criteria := model.Criteria{
		MinAge:         firstInt(rc.MinAge, rc.AgeMin),
		MaxAge:         firstInt(rc.MaxAge, rc.AgeMax),
		MinRating:      firstInt(rc.MinRating, rc.MinElo),
		MaxRating:      firstInt(rc.MaxRating, rc.MaxElo),
		UnratedOnly:    rc.UnratedOnly || rc.OnlyUnrated,
		IncludeUnrated: rc.IncludeUnrated,
		States:         rc.States,
		Cities:         rc.Cities,
		Clubs:          rc.Clubs,
		TypeLabels:     rc.TypeLabels,
		GroupLabels:    rc.GroupLabels,
		Disabilities:   rc.Disabilities,
		Aliases:        rc.Aliases,
	}

	gender := rc.Gender
	if gender == "" {
		gender = rc.Sex
	}
	switch strings.ToUpper(strings.TrimSpace(gender)) {
	case "":
		criteria.Gender = model.RequireNone
	case "F", "FEMALE":
		criteria.Gender = model.RequireFemale
	case "M", "MALE", "M_OR_UNKNOWN":
		criteria.Gender = model.RequireMaleOrUnknown
	default:
		return model.Criteria{}, nil, fmt.Errorf("unrecognized gender requirement %q", gender)
	}

	var warnings []string
	if criteria.MinAge != nil && criteria.MaxAge != nil && *criteria.MinAge > *criteria.MaxAge {
		warnings = append(warnings, fmt.Sprintf("age bounds inverted (min %d > max %d); min clamped to %d", *criteria.MinAge, *criteria.MaxAge, *criteria.MaxAge))
		clamped := *criteria.MaxAge
		criteria.MinAge = &clamped
	}
	if criteria.MinRating != nil && criteria.MaxRating != nil && *criteria.MinRating > *criteria.MaxRating {
		warnings = append(warnings, fmt.Sprintf("rating bounds inverted (min %d > max %d); min clamped to %d", *criteria.MinRating, *criteria.MaxRating, *criteria.MaxRating))
		clamped := *criteria.MaxRating
		criteria.MinRating = &clamped
	}

	return criteria, warnings, nil
}

func firstInt(values ...*int) *int {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
