package engine

import (
	"strings"
	"time"

	"github.com/tournament-tools/prize-allocator/pkg/core/model"
)

// EligibilityResult is the outcome of evaluating one (player, category) pair.
// Eligible is true exactly when FailCodes is empty.
type EligibilityResult struct {
	Eligible  bool
	FailCodes []Code
	PassCodes []Code
	WarnCodes []Code
}

func (r *EligibilityResult) fail(c Code) { r.FailCodes = append(r.FailCodes, c) }
func (r *EligibilityResult) pass(c Code) { r.PassCodes = append(r.PassCodes, c) }
func (r *EligibilityResult) warn(c Code) { r.WarnCodes = append(r.WarnCodes, c) }

// EvaluateEligibility decides whether a player qualifies for a category.
// Every dimension is evaluated independently so a fail in one still collects
// codes from the others; the category is eligible only if all pass.
// Malformed player fields fail their own dimension rather than erroring out,
// so one bad record never aborts a run.
func EvaluateEligibility(
	player *model.Player,
	category *model.Category,
	rules model.Rules,
	refDate time.Time,
	bands map[string]model.EffectiveAgeBand,
) EligibilityResult {
	var result EligibilityResult

	evalGender(player, category, &result)
	evalAge(player, category, rules, refDate, bands, &result)
	evalRating(player, category, rules, &result)
	evalLocation(player, category, &result)
	evalLabels(player, category, &result)

	result.Eligible = len(result.FailCodes) == 0
	return result
}

func evalGender(player *model.Player, category *model.Category, result *EligibilityResult) {
	switch category.GenderRequirement() {
	case model.RequireFemale:
		// An explicit F is required; unknown gender cannot qualify.
		switch player.Gender {
		case model.GenderFemale:
			result.pass(CodeGenderOK)
		case model.GenderUnknown:
			result.fail(CodeGenderMissing)
		default:
			result.fail(CodeGenderMismatch)
		}
	case model.RequireMaleOrUnknown:
		// Excludes explicit females only; unknown passes.
		if player.Gender == model.GenderFemale {
			result.fail(CodeGenderMismatch)
		} else {
			result.pass(CodeGenderOK)
		}
	default:
		result.pass(CodeGenderOK)
	}
}

func evalAge(
	player *model.Player,
	category *model.Category,
	rules model.Rules,
	refDate time.Time,
	bands map[string]model.EffectiveAgeBand,
	result *EligibilityResult,
) {
	minAge, maxAge, minDerived := effectiveAgeBounds(category, bands)
	if minAge == nil && maxAge == nil {
		result.pass(CodeAgeOK)
		return
	}

	if player.DOB == nil {
		if rules.AllowMissingDOBForAge {
			result.warn(CodeDOBMissingAllowed)
		} else {
			result.fail(CodeDOBMissing)
		}
		return
	}

	age := AgeAt(*player.DOB, refDate)

	if minAge != nil && age < *minAge {
		// A minimum that only exists because of band derivation is advisory
		// unless strict_age is on. Declared minimums always bind.
		if minDerived && !rules.StrictAge {
			result.warn(CodeDerivedMinRelaxed)
		} else {
			result.fail(CodeAgeBelowMin)
			return
		}
	}

	if maxAge != nil {
		if rules.MaxAgeInclusive {
			if age > *maxAge {
				result.fail(CodeAgeAboveMax)
				return
			}
		} else if age >= *maxAge {
			result.fail(CodeAgeAboveMax)
			return
		}
	}

	result.pass(CodeAgeOK)
}

// effectiveAgeBounds resolves the bounds the age dimension enforces. When a
// derived band exists for the category it supersedes the raw criteria.
// minDerived reports that the minimum came from band derivation rather than
// an explicitly declared criteria minimum.
func effectiveAgeBounds(category *model.Category, bands map[string]model.EffectiveAgeBand) (minAge, maxAge *int, minDerived bool) {
	if band, ok := bands[category.ID]; ok {
		lo, hi := band.MinAge, band.MaxAge
		return &lo, &hi, category.Criteria.MinAge == nil
	}
	return category.Criteria.MinAge, category.Criteria.MaxAge, false
}

// AgeAt computes a player's age in completed years at the reference date,
// borrowing a year when the reference month/day precedes the birth month/day.
func AgeAt(dob, refDate time.Time) int {
	age := refDate.Year() - dob.Year()
	if refDate.Month() < dob.Month() ||
		(refDate.Month() == dob.Month() && refDate.Day() < dob.Day()) {
		age--
	}
	return age
}

// evalRating applies the three-tier unrated rule chain:
// unratedOnly, then an explicit includeUnrated override, then the legacy
// fallback. Each tier is its own function so each has an isolated test.
func evalRating(player *model.Player, category *model.Category, rules model.Rules, result *EligibilityResult) {
	criteria := &category.Criteria
	if !criteria.RatingAware() {
		result.pass(CodeRatingOK)
		return
	}

	if criteria.UnratedOnly {
		evalUnratedOnly(player, result)
		return
	}

	if player.IsUnrated() {
		if unratedAdmitted(criteria, rules) {
			result.pass(CodeRatingOK)
		} else {
			result.fail(CodeUnratedExcluded)
		}
		return
	}

	if criteria.MinRating != nil && player.Rating < *criteria.MinRating {
		result.fail(CodeRatingBelowMin)
		return
	}
	if criteria.MaxRating != nil && player.Rating > *criteria.MaxRating {
		result.fail(CodeRatingAboveMax)
		return
	}
	result.pass(CodeRatingOK)
}

// evalUnratedOnly is tier one: rated players are out, unrated players are in,
// min/max bounds are ignored entirely.
func evalUnratedOnly(player *model.Player, result *EligibilityResult) {
	if player.IsUnrated() {
		result.pass(CodeRatingOK)
	} else {
		result.fail(CodeRatedExcludedUnratedOnly)
	}
}

// unratedAdmitted decides whether an unrated player may enter a rating-aware
// category. Tier two is the category's explicit includeUnrated override;
// tier three is the legacy fallback: a global rule flag, or a max-only band
// (historically treated as inclusive of unrated players).
func unratedAdmitted(criteria *model.Criteria, rules model.Rules) bool {
	if criteria.IncludeUnrated != nil {
		return *criteria.IncludeUnrated
	}
	if rules.AllowUnratedInRating {
		return true
	}
	return criteria.MaxRating != nil && criteria.MinRating == nil
}

func evalLocation(player *model.Player, category *model.Category, result *EligibilityResult) {
	criteria := &category.Criteria
	restricted := false

	type check struct {
		allowed []string
		value   string
		code    Code
	}
	for _, c := range []check{
		{criteria.States, player.State, CodeStateNotAllowed},
		{criteria.Cities, player.City, CodeCityNotAllowed},
		{criteria.Clubs, player.Club, CodeClubNotAllowed},
	} {
		if len(c.allowed) == 0 {
			continue
		}
		restricted = true
		if !locationAllowed(c.value, c.allowed, criteria.Aliases) {
			result.fail(c.code)
			return
		}
	}

	if restricted {
		result.pass(CodeLocationOK)
	}
}

// locationAllowed normalizes the player's value (case fold, alias
// resolution, state-code expansion) and tests membership in the allow-list.
func locationAllowed(value string, allowed []string, aliases map[string][]string) bool {
	normalized := normalizeLocation(value, aliases)
	if normalized == "" {
		return false
	}
	for _, a := range allowed {
		if normalizeLocation(a, aliases) == normalized {
			return true
		}
	}
	return false
}

// normalizeLocation folds a raw location value to its canonical form:
// trim + casefold, built-in state-code expansion, then alias resolution
// against the category's canonical→aliases map.
func normalizeLocation(value string, aliases map[string][]string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return ""
	}
	if expanded, ok := stateCodes[strings.ToUpper(v)]; ok {
		v = strings.ToLower(expanded)
	}
	for canonical, list := range aliases {
		folded := strings.ToLower(strings.TrimSpace(canonical))
		if v == folded {
			return folded
		}
		for _, alias := range list {
			if v == strings.ToLower(strings.TrimSpace(alias)) {
				return folded
			}
		}
	}
	return v
}

// stateCodes expands common 2-letter state abbreviations seen in roster
// exports to their full names.
var stateCodes = map[string]string{
	"AP": "Andhra Pradesh",
	"AR": "Arunachal Pradesh",
	"AS": "Assam",
	"BR": "Bihar",
	"CG": "Chhattisgarh",
	"DL": "Delhi",
	"GA": "Goa",
	"GJ": "Gujarat",
	"HR": "Haryana",
	"HP": "Himachal Pradesh",
	"JH": "Jharkhand",
	"JK": "Jammu and Kashmir",
	"KA": "Karnataka",
	"KL": "Kerala",
	"MH": "Maharashtra",
	"MN": "Manipur",
	"ML": "Meghalaya",
	"MP": "Madhya Pradesh",
	"MZ": "Mizoram",
	"NL": "Nagaland",
	"OD": "Odisha",
	"PB": "Punjab",
	"PY": "Puducherry",
	"RJ": "Rajasthan",
	"SK": "Sikkim",
	"TN": "Tamil Nadu",
	"TR": "Tripura",
	"TS": "Telangana",
	"UK": "Uttarakhand",
	"UP": "Uttar Pradesh",
	"WB": "West Bengal",
}

func evalLabels(player *model.Player, category *model.Category, result *EligibilityResult) {
	criteria := &category.Criteria

	labelsRestricted := false
	if len(criteria.TypeLabels) > 0 {
		labelsRestricted = true
		if !labelAllowed(player.TypeLabel, criteria.TypeLabels) {
			result.fail(CodeTypeNotAllowed)
			return
		}
	}
	if len(criteria.GroupLabels) > 0 {
		labelsRestricted = true
		if !labelAllowed(player.GroupLabel, criteria.GroupLabels) {
			result.fail(CodeGroupNotAllowed)
			return
		}
	}
	if labelsRestricted {
		result.pass(CodeLabelsOK)
	}

	if len(criteria.Disabilities) > 0 {
		if labelAllowed(player.Disability, criteria.Disabilities) {
			result.pass(CodeDisabilityOK)
		} else {
			result.fail(CodeDisabilityNotAllowed)
		}
	}
}

// labelAllowed is case-insensitive, trimmed exact membership.
func labelAllowed(value string, allowed []string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return false
	}
	for _, a := range allowed {
		if v == strings.ToLower(strings.TrimSpace(a)) {
			return true
		}
	}
	return false
}
