package engine

// Code is a machine-readable reason emitted by the eligibility evaluator.
type Code string

// Fail codes. A player is eligible for a category only when no fail code
// was emitted for any dimension.
const (
	CodeGenderMismatch Code = "gender_mismatch"
	CodeGenderMissing  Code = "gender_missing"

	CodeDOBMissing  Code = "dob_missing"
	CodeAgeBelowMin Code = "age_below_min"
	CodeAgeAboveMax Code = "age_above_max"

	CodeRatingBelowMin            Code = "rating_below_min"
	CodeRatingAboveMax            Code = "rating_above_max"
	CodeUnratedExcluded           Code = "unrated_excluded"
	CodeRatedExcludedUnratedOnly  Code = "rated_player_excluded_unrated_only"

	CodeStateNotAllowed      Code = "state_not_allowed"
	CodeCityNotAllowed       Code = "city_not_allowed"
	CodeClubNotAllowed       Code = "club_not_allowed"
	CodeTypeNotAllowed       Code = "type_not_allowed"
	CodeGroupNotAllowed      Code = "group_not_allowed"
	CodeDisabilityNotAllowed Code = "disability_not_allowed"
)

// Pass codes, recorded so winners carry an audit trail of which dimensions
// they cleared.
const (
	CodeGenderOK     Code = "gender_ok"
	CodeAgeOK        Code = "age_ok"
	CodeRatingOK     Code = "rating_ok"
	CodeLocationOK   Code = "location_ok"
	CodeLabelsOK     Code = "labels_ok"
	CodeDisabilityOK Code = "disability_ok"
)

// Warn codes.
const (
	CodeDOBMissingAllowed   Code = "dob_missing_allowed"
	CodeDerivedMinRelaxed   Code = "derived_min_relaxed"
)

// Unfilled reason codes attached to prizes no one could take.
const (
	ReasonBlockedByPrizePolicy Code = "BLOCKED_BY_ONE_PRIZE_POLICY"
	ReasonTooStrictRating      Code = "TOO_STRICT_CRITERIA_RATING"
	ReasonTooStrictAge         Code = "TOO_STRICT_CRITERIA_AGE"
	ReasonTooStrictGender      Code = "TOO_STRICT_CRITERIA_GENDER"
	ReasonTooStrictLocation    Code = "TOO_STRICT_CRITERIA_LOCATION"
	ReasonTooStrictLabels      Code = "TOO_STRICT_CRITERIA_TYPE_GROUP"
	ReasonNoEligiblePlayers    Code = "NO_ELIGIBLE_PLAYERS"
)

// Conflict types.
const (
	ConflictPriorityTie     = "priority_tie"
	ConflictInvalidOverride = "invalid_override"
)

func containsCode(codes []Code, c Code) bool {
	for _, x := range codes {
		if x == c {
			return true
		}
	}
	return false
}
