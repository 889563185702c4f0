package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/tournament-tools/prize-allocator/pkg/core/model"
)

// RulesConfig is the allocation rule block of the config file. Legacy keys
// (oneAwardPerPlayer, allowUnrated) are accepted here and normalized in
// EngineRules(); they never reach the engine.
type RulesConfig struct {
	StrictAge             bool     `yaml:"strictAge"`
	AllowUnratedInRating  bool     `yaml:"allowUnratedInRating"`
	AllowMissingDOBForAge bool     `yaml:"allowMissingDobForAge"`
	MaxAgeInclusive       *bool    `yaml:"maxAgeInclusive"`
	AgeBandPolicy         string   `yaml:"ageBandPolicy" validate:"omitempty,oneof=non_overlapping overlapping"`
	MultiPrizePolicy      string   `yaml:"multiPrizePolicy" validate:"omitempty,oneof=single unlimited main_plus_one_side"`
	MainVsSideMode        string   `yaml:"mainVsSidePriorityMode" validate:"omitempty,oneof=place_first main_first"`
	NonCashPriorityMode   string   `yaml:"nonCashPriorityMode"`
	TieBreakStrategy      string   `yaml:"tieBreakStrategy"`
	TieBreakFields        []string `yaml:"tieBreakFields" validate:"dive,oneof=rating name"`

	// Legacy keys, mapped to the documented flags above.
	OneAwardPerPlayer *bool `yaml:"oneAwardPerPlayer"`
	AllowUnrated      *bool `yaml:"allowUnrated"`
}

// Config represents the application configuration
type Config struct {
	TournamentFile string      `yaml:"tournamentFile" validate:"required"`
	ReferenceDate  string      `yaml:"referenceDate,omitempty"`
	SeriesRule     string      `yaml:"seriesRule,omitempty"`
	Rules          RulesConfig `yaml:"rules"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from prize_allocator_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, the reference date, and the
// series recurrence rule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.ReferenceDate != "" {
		if _, err := time.Parse("2006-01-02", cfg.ReferenceDate); err != nil {
			return fmt.Errorf("invalid referenceDate: %w", err)
		}
	}

	if cfg.SeriesRule != "" {
		if _, err := rrule.StrToRRule(cfg.SeriesRule); err != nil {
			return fmt.Errorf("invalid seriesRule: %w", err)
		}
	}

	return nil
}

// EngineRules resolves the config block into the engine rule set, applying
// defaults and folding legacy keys into their documented equivalents.
func (c *Config) EngineRules() model.Rules {
	rules := model.DefaultRules()
	rc := c.Rules

	rules.StrictAge = rc.StrictAge
	rules.AllowUnratedInRating = rc.AllowUnratedInRating
	rules.AllowMissingDOBForAge = rc.AllowMissingDOBForAge
	if rc.MaxAgeInclusive != nil {
		rules.MaxAgeInclusive = *rc.MaxAgeInclusive
	}
	if rc.AgeBandPolicy != "" {
		rules.AgeBandPolicy = model.AgeBandPolicy(rc.AgeBandPolicy)
	}
	if rc.MultiPrizePolicy != "" {
		rules.MultiPrizePolicy = model.MultiPrizePolicy(rc.MultiPrizePolicy)
	}
	if rc.MainVsSideMode != "" {
		rules.MainVsSideMode = model.MainVsSideMode(rc.MainVsSideMode)
	}
	if rc.NonCashPriorityMode != "" {
		rules.NonCashPriorityOrder = splitMode(rc.NonCashPriorityMode)
	}
	rules.TieBreakFields = resolveTieBreak(rc)

	// Legacy keys win only when the documented key is absent.
	if rc.AllowUnrated != nil && !rc.AllowUnratedInRating {
		rules.AllowUnratedInRating = *rc.AllowUnrated
	}
	if rc.OneAwardPerPlayer != nil && rc.MultiPrizePolicy == "" {
		if *rc.OneAwardPerPlayer {
			rules.MultiPrizePolicy = model.MultiPrizeSingle
		} else {
			rules.MultiPrizePolicy = model.MultiPrizeUnlimited
		}
	}

	return rules
}

// splitMode turns "trophy_gift_medal" (or a comma form) into components.
func splitMode(mode string) []string {
	sep := "_"
	if strings.Contains(mode, ",") {
		sep = ","
	}
	var out []string
	for _, part := range strings.Split(mode, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func resolveTieBreak(rc RulesConfig) []model.TieBreakField {
	if len(rc.TieBreakFields) > 0 {
		fields := make([]model.TieBreakField, 0, len(rc.TieBreakFields))
		for _, f := range rc.TieBreakFields {
			fields = append(fields, model.TieBreakField(f))
		}
		return fields
	}
	switch rc.TieBreakStrategy {
	case "none":
		return []model.TieBreakField{}
	case "rating_then_name", "":
		return []model.TieBreakField{model.TieBreakRating, model.TieBreakName}
	default:
		// An explicit ordered list like "rating" or "name,rating".
		var fields []model.TieBreakField
		for _, part := range splitMode(rc.TieBreakStrategy) {
			switch part {
			case "rating":
				fields = append(fields, model.TieBreakRating)
			case "name":
				fields = append(fields, model.TieBreakName)
			}
		}
		return fields
	}
}

// ResolveReferenceDate returns the tournament start date for a run: the
// explicit referenceDate when set, otherwise the most recent seriesRule
// occurrence on or before today. today is passed in by the caller so the
// engine input stays free of wall-clock reads.
func (c *Config) ResolveReferenceDate(today time.Time) (time.Time, error) {
	if c.ReferenceDate != "" {
		return time.Parse("2006-01-02", c.ReferenceDate)
	}
	if c.SeriesRule == "" {
		return time.Time{}, fmt.Errorf("config declares neither referenceDate nor seriesRule")
	}

	rule, err := rrule.StrToRRule(c.SeriesRule)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid seriesRule: %w", err)
	}
	// Config rules typically omit DTSTART; anchor the search window a year
	// back so Before can find the current edition.
	rule.DTStart(today.AddDate(-1, 0, 0))
	occurrence := rule.Before(today, true)
	if occurrence.IsZero() {
		return time.Time{}, fmt.Errorf("seriesRule has no occurrence on or before %s", today.Format("2006-01-02"))
	}
	return occurrence, nil
}

// findConfigFile searches for prize_allocator_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "prize_allocator_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
