package engine

import (
	"fmt"
)

// NextDayPolicy selects how "next <weekday>" is read when the phrase
// is genuinely contested.
type NextDayPolicy string

const (
	// NextDayProximity resolves to the soonest future occurrence
	// strictly after the anchor date.
	NextDayProximity NextDayPolicy = "proximity"
	// NextDayWeekAfter resolves to the named weekday of the week
	// after the anchor's week.
	NextDayWeekAfter NextDayPolicy = "week_after"
)

// Config carries the engine's interpretation policy. Both readings of
// "next <weekday>" are defensible, so the default is a policy choice,
// not fixed behaviour; the rejected reading is always surfaced as an
// assumption either way.
type Config struct {
	// NextDay selects the default reading of "next <weekday>".
	NextDay NextDayPolicy `json:"nextDay" yaml:"nextDay"`

	// MaxExpressions bounds how many independent time expressions a
	// single input may yield in ResolveAll.
	MaxExpressions int `json:"maxExpressions" yaml:"maxExpressions"`
}

// DefaultConfig returns the production policy.
func DefaultConfig() *Config {
	return &Config{
		NextDay:        NextDayProximity,
		MaxExpressions: 8,
	}
}

// ValidateConfig checks a configuration for programmer errors.
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}
	switch config.NextDay {
	case NextDayProximity, NextDayWeekAfter:
	default:
		return fmt.Errorf("unknown next-day policy %q", config.NextDay)
	}
	if config.MaxExpressions < 1 {
		return fmt.Errorf("maxExpressions must be at least 1, got %d", config.MaxExpressions)
	}
	return nil
}
