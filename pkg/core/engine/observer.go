package engine

import (
	"go.uber.org/zap"
)

// Observer receives structured events from an allocation run. It replaces
// ad-hoc global debug state: callers inject one, the engine stays pure.
type Observer interface {
	// BandClamped fires when a derived age band needed min>max clamping.
	BandClamped(categoryID string, min, max int)
	// EligibilityEvaluated fires once per (player, category) pair.
	EligibilityEvaluated(playerID, categoryID string, result EligibilityResult)
	// PrizeAssigned fires when a winner is recorded.
	PrizeAssigned(prizeID, playerID string, manual bool)
	// PrizeUnfilled fires when no winner could be found.
	PrizeUnfilled(prizeID string, reason Code)
}

// NopObserver discards all events. Used when no observer is injected.
type NopObserver struct{}

func (NopObserver) BandClamped(string, int, int)                        {}
func (NopObserver) EligibilityEvaluated(string, string, EligibilityResult) {}
func (NopObserver) PrizeAssigned(string, string, bool)                  {}
func (NopObserver) PrizeUnfilled(string, Code)                          {}

// ZapObserver logs engine events through a zap logger. Eligibility traces
// are Debug level so a normal run stays quiet.
type ZapObserver struct {
	Logger *zap.Logger
}

func NewZapObserver(logger *zap.Logger) *ZapObserver {
	return &ZapObserver{Logger: logger}
}

func (o *ZapObserver) BandClamped(categoryID string, min, max int) {
	o.Logger.Warn("Derived age band clamped",
		zap.String("category_id", categoryID),
		zap.Int("min", min),
		zap.Int("max", max))
}

func (o *ZapObserver) EligibilityEvaluated(playerID, categoryID string, result EligibilityResult) {
	o.Logger.Debug("Eligibility evaluated",
		zap.String("player_id", playerID),
		zap.String("category_id", categoryID),
		zap.Bool("eligible", result.Eligible),
		zap.Any("fail_codes", result.FailCodes))
}

func (o *ZapObserver) PrizeAssigned(prizeID, playerID string, manual bool) {
	o.Logger.Info("Prize assigned",
		zap.String("prize_id", prizeID),
		zap.String("player_id", playerID),
		zap.Bool("manual", manual))
}

func (o *ZapObserver) PrizeUnfilled(prizeID string, reason Code) {
	o.Logger.Info("Prize unfilled",
		zap.String("prize_id", prizeID),
		zap.String("reason", string(reason)))
}
