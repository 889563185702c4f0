package engine

import (
	"fmt"
	"strings"

	"github.com/tournament-tools/prize-allocator/pkg/core/model"
)

// PrizeCoverage is the operator-facing audit row for one prize: how many
// players could take it before and after the multi-prize cap, why it went
// unfilled if it did, and where it sat in the priority queue.
type PrizeCoverage struct {
	PrizeID           string
	CategoryID        string
	CategoryName      string
	EligibleBeforeCap int
	EligibleAfterCap  int
	ReasonCode        Code
	Diagnosis         string
	Priority          string
}

var ratingFailCodes = []Code{
	CodeRatingBelowMin, CodeRatingAboveMax, CodeUnratedExcluded, CodeRatedExcludedUnratedOnly,
}
var ageFailCodes = []Code{CodeDOBMissing, CodeAgeBelowMin, CodeAgeAboveMax}
var genderFailCodes = []Code{CodeGenderMismatch, CodeGenderMissing}
var locationFailCodes = []Code{CodeStateNotAllowed, CodeCityNotAllowed, CodeClubNotAllowed}
var labelFailCodes = []Code{CodeTypeNotAllowed, CodeGroupNotAllowed, CodeDisabilityNotAllowed}

// ClassifyFailCodes reduces the fail codes aggregated across all players
// into one dominant unfilled reason. Precedence is fixed:
// rating > age > gender > location > type/group > generic.
func ClassifyFailCodes(aggregated []Code) Code {
	if anyOf(aggregated, ratingFailCodes) {
		return ReasonTooStrictRating
	}
	if anyOf(aggregated, ageFailCodes) {
		return ReasonTooStrictAge
	}
	if anyOf(aggregated, genderFailCodes) {
		return ReasonTooStrictGender
	}
	if anyOf(aggregated, locationFailCodes) {
		return ReasonTooStrictLocation
	}
	if anyOf(aggregated, labelFailCodes) {
		return ReasonTooStrictLabels
	}
	return ReasonNoEligiblePlayers
}

func anyOf(aggregated, wanted []Code) bool {
	for _, c := range wanted {
		if containsCode(aggregated, c) {
			return true
		}
	}
	return false
}

// BuildDiagnosis renders a one-line human explanation for an unfilled prize,
// referencing the category's actual declared bounds.
func BuildDiagnosis(
	category *model.Category,
	bands map[string]model.EffectiveAgeBand,
	reason Code,
	policy model.MultiPrizePolicy,
) string {
	switch reason {
	case ReasonBlockedByPrizePolicy:
		return fmt.Sprintf("Eligible players exist but all are capped by the %q multi-prize policy", policy)
	case ReasonTooStrictRating:
		if category.Criteria.UnratedOnly {
			return "Unrated-only category excludes every rated player"
		}
		return fmt.Sprintf("Rating band %s excludes all players", ratingBandText(&category.Criteria))
	case ReasonTooStrictAge:
		return fmt.Sprintf("Age band %s excludes all players", ageBandText(category, bands))
	case ReasonTooStrictGender:
		if category.GenderRequirement() == model.RequireFemale {
			return "Requires gender F; no qualifying players"
		}
		return "Gender requirement excludes all players"
	case ReasonTooStrictLocation:
		return fmt.Sprintf("Location restriction (%s) excludes all players", locationListText(&category.Criteria))
	case ReasonTooStrictLabels:
		return "Type/group restriction excludes all players"
	default:
		return "No eligible players"
	}
}

func ratingBandText(criteria *model.Criteria) string {
	switch {
	case criteria.MinRating != nil && criteria.MaxRating != nil:
		return fmt.Sprintf("%d-%d", *criteria.MinRating, *criteria.MaxRating)
	case criteria.MinRating != nil:
		return fmt.Sprintf("%d and above", *criteria.MinRating)
	case criteria.MaxRating != nil:
		return fmt.Sprintf("up to %d", *criteria.MaxRating)
	default:
		return "unrestricted"
	}
}

func ageBandText(category *model.Category, bands map[string]model.EffectiveAgeBand) string {
	if band, ok := bands[category.ID]; ok {
		return fmt.Sprintf("%d-%d", band.MinAge, band.MaxAge)
	}
	criteria := &category.Criteria
	switch {
	case criteria.MinAge != nil && criteria.MaxAge != nil:
		return fmt.Sprintf("%d-%d", *criteria.MinAge, *criteria.MaxAge)
	case criteria.MinAge != nil:
		return fmt.Sprintf("%d and above", *criteria.MinAge)
	case criteria.MaxAge != nil:
		return fmt.Sprintf("up to %d", *criteria.MaxAge)
	default:
		return "unrestricted"
	}
}

func locationListText(criteria *model.Criteria) string {
	var parts []string
	if len(criteria.States) > 0 {
		parts = append(parts, "state: "+strings.Join(criteria.States, ", "))
	}
	if len(criteria.Cities) > 0 {
		parts = append(parts, "city: "+strings.Join(criteria.Cities, ", "))
	}
	if len(criteria.Clubs) > 0 {
		parts = append(parts, "club: "+strings.Join(criteria.Clubs, ", "))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "; ")
}
