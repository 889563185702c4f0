package services

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tournament-tools/prize-allocator/internal/config"
	"github.com/tournament-tools/prize-allocator/pkg/core/engine"
	"github.com/tournament-tools/prize-allocator/pkg/core/model"
)

// CategorySummary describes one category for the validation report.
type CategorySummary struct {
	ID         string
	Name       string
	IsMain     bool
	Type       model.CategoryType
	PrizeCount int
	Criteria   string
	AgeBand    *model.EffectiveAgeBand
}

// ValidateTournamentResult is the outcome of a boundary check on a
// tournament file: what loaded, and what the engine would enforce.
type ValidateTournamentResult struct {
	TournamentName string
	ReferenceDate  time.Time
	PlayerCount    int
	OverrideCount  int
	Categories     []CategorySummary
}

// ValidateTournament loads a tournament file and reports what the engine
// would see, including derived age bands under the non-overlapping policy.
// It never runs the allocation itself.
func ValidateTournament(
	tournaments TournamentLoader,
	cfg *config.Config,
	logger *zap.Logger,
	tournamentFile string,
	today time.Time,
) (*ValidateTournamentResult, error) {
	if tournamentFile == "" {
		tournamentFile = cfg.TournamentFile
	}

	logger.Debug("Validating tournament file", zap.String("path", tournamentFile))
	tournament, err := tournaments.Load(tournamentFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament: %w", err)
	}
	for _, warning := range tournament.Warnings {
		logger.Warn("Tournament input warning", zap.String("warning", warning))
	}

	refDate, err := cfg.ResolveReferenceDate(today)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve reference date: %w", err)
	}

	rules := cfg.EngineRules()
	var bands map[string]model.EffectiveAgeBand
	if rules.AgeBandPolicy == model.AgeBandNonOverlapping {
		bands = engine.DeriveAgeBands(tournament.Categories, engine.NewZapObserver(logger))
	}

	result := &ValidateTournamentResult{
		TournamentName: tournament.Name,
		ReferenceDate:  refDate,
		PlayerCount:    len(tournament.Players),
		OverrideCount:  len(tournament.Overrides),
	}
	for _, category := range tournament.Categories {
		if !category.Active {
			continue
		}
		summary := CategorySummary{
			ID:         category.ID,
			Name:       category.Name,
			IsMain:     category.IsMain,
			Type:       category.Type,
			PrizeCount: len(category.Prizes),
			Criteria:   describeCriteria(category),
		}
		if band, ok := bands[category.ID]; ok {
			b := band
			summary.AgeBand = &b
		}
		result.Categories = append(result.Categories, summary)
	}

	return result, nil
}

// describeCriteria renders a category's restrictions in one line.
func describeCriteria(category *model.Category) string {
	criteria := &category.Criteria
	var parts []string

	if criteria.MinAge != nil || criteria.MaxAge != nil {
		switch {
		case criteria.MinAge != nil && criteria.MaxAge != nil:
			parts = append(parts, fmt.Sprintf("age %d-%d", *criteria.MinAge, *criteria.MaxAge))
		case criteria.MinAge != nil:
			parts = append(parts, fmt.Sprintf("age %d+", *criteria.MinAge))
		default:
			parts = append(parts, fmt.Sprintf("age <=%d", *criteria.MaxAge))
		}
	}
	if criteria.UnratedOnly {
		parts = append(parts, "unrated only")
	} else if criteria.MinRating != nil || criteria.MaxRating != nil {
		switch {
		case criteria.MinRating != nil && criteria.MaxRating != nil:
			parts = append(parts, fmt.Sprintf("rating %d-%d", *criteria.MinRating, *criteria.MaxRating))
		case criteria.MinRating != nil:
			parts = append(parts, fmt.Sprintf("rating %d+", *criteria.MinRating))
		default:
			parts = append(parts, fmt.Sprintf("rating <=%d", *criteria.MaxRating))
		}
	}
	if req := category.GenderRequirement(); req != model.RequireNone {
		parts = append(parts, "gender "+string(req))
	}
	if len(criteria.States) > 0 {
		parts = append(parts, "states: "+strings.Join(criteria.States, "/"))
	}
	if len(criteria.Cities) > 0 {
		parts = append(parts, "cities: "+strings.Join(criteria.Cities, "/"))
	}
	if len(criteria.Clubs) > 0 {
		parts = append(parts, "clubs: "+strings.Join(criteria.Clubs, "/"))
	}
	if len(criteria.TypeLabels) > 0 {
		parts = append(parts, "types: "+strings.Join(criteria.TypeLabels, "/"))
	}
	if len(criteria.GroupLabels) > 0 {
		parts = append(parts, "groups: "+strings.Join(criteria.GroupLabels, "/"))
	}
	if len(criteria.Disabilities) > 0 {
		parts = append(parts, "disabilities: "+strings.Join(criteria.Disabilities, "/"))
	}

	if len(parts) == 0 {
		return "open"
	}
	return strings.Join(parts, ", ")
}
