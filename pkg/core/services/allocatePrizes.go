package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tournament-tools/prize-allocator/internal/config"
	"github.com/tournament-tools/prize-allocator/pkg/core/engine"
	"github.com/tournament-tools/prize-allocator/pkg/core/model"
	"github.com/tournament-tools/prize-allocator/pkg/loader"
)

// AllocatePrizesResult contains the allocation results
type AllocatePrizesResult struct {
	RunID          string
	TournamentName string
	ReferenceDate  time.Time
	PlayerCount    int
	CategoryCount  int
	PrizeCount     int
	Winners        []engine.Winner
	Unfilled       []engine.UnfilledEntry
	Conflicts      []engine.Conflict
	Coverage       []engine.PrizeCoverage
}

// TournamentLoader loads the normalized tournament input for a run.
type TournamentLoader interface {
	Load(path string) (*loader.Tournament, error)
}

// FileLoader is the production TournamentLoader, reading YAML from disk.
type FileLoader struct{}

func (FileLoader) Load(path string) (*loader.Tournament, error) {
	return loader.Load(path)
}

// AllocatePrizes loads the tournament input, resolves the reference date,
// and runs the allocation engine. today is the caller's wall clock; it is
// only consulted when the config resolves the reference date from a
// recurring series rule, so a run with an explicit date is reproducible.
func AllocatePrizes(
	tournaments TournamentLoader,
	cfg *config.Config,
	logger *zap.Logger,
	tournamentFile string,
	today time.Time,
) (*AllocatePrizesResult, error) {
	runID := uuid.New().String()
	logger.Debug("Starting allocatePrizes", zap.String("run_id", runID))

	if tournamentFile == "" {
		tournamentFile = cfg.TournamentFile
	}

	// Step 1: Load and normalize the tournament input
	logger.Debug("Loading tournament file", zap.String("path", tournamentFile))
	tournament, err := tournaments.Load(tournamentFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament: %w", err)
	}
	logger.Debug("Tournament loaded",
		zap.String("name", tournament.Name),
		zap.Int("players", len(tournament.Players)),
		zap.Int("categories", len(tournament.Categories)))
	for _, warning := range tournament.Warnings {
		logger.Warn("Tournament input warning", zap.String("warning", warning))
	}

	// Step 2: Resolve the reference date (explicit or from the series rule)
	refDate, err := cfg.ResolveReferenceDate(today)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve reference date: %w", err)
	}
	logger.Debug("Reference date resolved", zap.String("date", refDate.Format("2006-01-02")))

	// Step 3: Resolve rules and run the engine
	rules := cfg.EngineRules()
	logger.Debug("Rules resolved",
		zap.String("age_band_policy", string(rules.AgeBandPolicy)),
		zap.String("multi_prize_policy", string(rules.MultiPrizePolicy)),
		zap.String("main_vs_side_mode", string(rules.MainVsSideMode)))

	result := engine.Allocate(engine.Input{
		Players:       tournament.Players,
		Categories:    tournament.Categories,
		Rules:         rules,
		ReferenceDate: refDate,
		Overrides:     tournament.Overrides,
		Observer:      engine.NewZapObserver(logger),
	})
	logger.Info("Allocation complete",
		zap.String("run_id", runID),
		zap.Int("winners", len(result.Winners)),
		zap.Int("unfilled", len(result.Unfilled)),
		zap.Int("conflicts", len(result.Conflicts)))

	return &AllocatePrizesResult{
		RunID:          runID,
		TournamentName: tournament.Name,
		ReferenceDate:  refDate,
		PlayerCount:    len(tournament.Players),
		CategoryCount:  activeCategoryCount(tournament.Categories),
		PrizeCount:     tournament.PrizeCount(),
		Winners:        result.Winners,
		Unfilled:       result.Unfilled,
		Conflicts:      result.Conflicts,
		Coverage:       result.Coverage,
	}, nil
}

func activeCategoryCount(categories []*model.Category) int {
	count := 0
	for _, category := range categories {
		if category.Active {
			count++
		}
	}
	return count
}
