package model

import "time"

// Gender is a player's recorded gender. Empty means unknown.
type Gender string

const (
	GenderFemale  Gender = "F"
	GenderMale    Gender = "M"
	GenderUnknown Gender = ""
)

// GenderRequirement is the gender constraint a category declares.
// RequireMaleOrUnknown excludes explicit females only; a bare "M" on input
// is normalized to it at the load boundary (legacy equivalence).
type GenderRequirement string

const (
	RequireNone          GenderRequirement = ""
	RequireFemale        GenderRequirement = "F"
	RequireMaleOrUnknown GenderRequirement = "M_OR_UNKNOWN"
)

func (g GenderRequirement) IsValid() bool {
	return g == RequireNone || g == RequireFemale || g == RequireMaleOrUnknown
}

// CategoryType selects a non-standard ranking mode for a category.
type CategoryType string

const (
	CategoryStandard     CategoryType = ""
	CategoryYoungestGirl CategoryType = "youngest_girl"
	CategoryYoungestBoy  CategoryType = "youngest_boy"
)

// IsYoungest reports whether the category ranks by date of birth instead of rank.
func (c CategoryType) IsYoungest() bool {
	return c == CategoryYoungestGirl || c == CategoryYoungestBoy
}

// ImpliedGender returns the gender requirement a youngest category carries
// implicitly, or RequireNone for standard categories.
func (c CategoryType) ImpliedGender() GenderRequirement {
	switch c {
	case CategoryYoungestGirl:
		return RequireFemale
	case CategoryYoungestBoy:
		return RequireMaleOrUnknown
	default:
		return RequireNone
	}
}

// Player is one entry of the normalized, deduplicated tournament roster.
// The engine never mutates a Player.
type Player struct {
	ID         string
	Name       string
	Rank       int // tournament placement, 1 = best
	Rating     int // <= 0 means unrated
	Unrated    bool
	DOB        *time.Time
	Gender     Gender
	State      string
	City       string
	Club       string
	TypeLabel  string
	GroupLabel string
	Disability string
}

// IsUnrated reports whether the player counts as unrated for rating-aware
// categories. A non-positive rating is treated the same as the explicit flag.
func (p *Player) IsUnrated() bool {
	return p.Unrated || p.Rating <= 0
}

// Criteria is a category's eligibility document. All fields are optional;
// nil/empty means the dimension is unrestricted. Legacy input keys are
// normalized into these fields by the loader, never interpreted downstream.
type Criteria struct {
	MinAge *int
	MaxAge *int

	MinRating      *int
	MaxRating      *int
	UnratedOnly    bool
	IncludeUnrated *bool // explicit override of the legacy unrated fallback

	Gender GenderRequirement

	States       []string
	Cities       []string
	Clubs        []string
	TypeLabels   []string
	GroupLabels  []string
	Disabilities []string

	// Aliases maps a canonical location value to accepted spellings,
	// e.g. "Tamil Nadu" -> ["TN", "Tamilnadu"].
	Aliases map[string][]string
}

// RatingAware reports whether the category constrains rating at all.
func (c *Criteria) RatingAware() bool {
	return c.UnratedOnly || c.MinRating != nil || c.MaxRating != nil
}

// Prize is a single awardable slot inside a category.
type Prize struct {
	ID     string
	Place  int // 1 = best within its category
	Cash   int // 0 = no cash component
	Trophy bool
	Medal  bool
	Gifts  []string
	Active bool
}

// HasGift reports whether the prize carries at least one gift item.
func (p *Prize) HasGift() bool {
	return len(p.Gifts) > 0
}

// Category is a named eligibility bucket containing ordered prizes.
type Category struct {
	ID            string
	Name          string
	IsMain        bool
	BrochureOrder int
	Active        bool
	Type          CategoryType
	Criteria      Criteria
	Prizes        []Prize
}

// GenderRequirement resolves the category's effective gender constraint,
// letting a youngest category type override the declared criteria.
func (c *Category) GenderRequirement() GenderRequirement {
	if implied := c.Type.ImpliedGender(); implied != RequireNone {
		return implied
	}
	return c.Criteria.Gender
}

// AgeBandPolicy controls how age-bounded categories interact.
type AgeBandPolicy string

const (
	AgeBandNonOverlapping AgeBandPolicy = "non_overlapping"
	AgeBandOverlapping    AgeBandPolicy = "overlapping"
)

// MultiPrizePolicy controls how many prizes one player may take.
type MultiPrizePolicy string

const (
	MultiPrizeSingle          MultiPrizePolicy = "single"
	MultiPrizeUnlimited       MultiPrizePolicy = "unlimited"
	MultiPrizeMainPlusOneSide MultiPrizePolicy = "main_plus_one_side"
)

func (m MultiPrizePolicy) IsValid() bool {
	return m == MultiPrizeSingle || m == MultiPrizeUnlimited || m == MultiPrizeMainPlusOneSide
}

// MainVsSideMode decides whether the main flag or the place number wins
// first when prizes tie on cash and bundle.
type MainVsSideMode string

const (
	PlaceFirst MainVsSideMode = "place_first"
	MainFirst  MainVsSideMode = "main_first"
)

// TieBreakField is one secondary sort key for standard categories.
type TieBreakField string

const (
	TieBreakRating TieBreakField = "rating"
	TieBreakName   TieBreakField = "name"
)

// Rules is the global allocation rule set, resolved from configuration
// before the engine runs.
type Rules struct {
	StrictAge             bool
	AllowUnratedInRating  bool
	AllowMissingDOBForAge bool
	MaxAgeInclusive       bool
	AgeBandPolicy         AgeBandPolicy
	MultiPrizePolicy      MultiPrizePolicy
	MainVsSideMode        MainVsSideMode
	NonCashPriorityOrder  []string // bundle component order, default trophy,gift,medal
	TieBreakFields        []TieBreakField
}

// DefaultRules returns the rule set used when configuration declares nothing.
func DefaultRules() Rules {
	return Rules{
		MaxAgeInclusive:      true,
		AgeBandPolicy:        AgeBandOverlapping,
		MultiPrizePolicy:     MultiPrizeSingle,
		MainVsSideMode:       PlaceFirst,
		NonCashPriorityOrder: []string{"trophy", "gift", "medal"},
		TieBreakFields:       []TieBreakField{TieBreakRating, TieBreakName},
	}
}

// ManualOverride pre-assigns a prize to a player ahead of the greedy pass.
// Force skips eligibility validation.
type ManualOverride struct {
	PrizeID  string
	PlayerID string
	Force    bool
}

// EffectiveAgeBand is a derived, enforced age range for one category under
// the non-overlapping policy. It supersedes the category's raw bounds.
type EffectiveAgeBand struct {
	MinAge int
	MaxAge int
}
