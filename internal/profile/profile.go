// Package profile holds the runtime configuration of the server and
// CLI, loaded from environment variables with sane defaults.
package profile

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Version is the current version of server
	Version string

	// MaxInputLength caps the raw input accepted by the HTTP surface.
	MaxInputLength int // CHRONOSENSE_MAX_INPUT_LENGTH (default: 512)
	// NextDayPolicy selects the reading of "next <weekday>":
	// "proximity" or "week_after".
	NextDayPolicy string // CHRONOSENSE_NEXT_DAY_POLICY (default: proximity)
	// DefaultAnchorZone is the fallback reference zone abbreviation
	// when a request carries no anchor zone.
	DefaultAnchorZone string // CHRONOSENSE_DEFAULT_ANCHOR_ZONE (default: UTC)

	// Rate limiting
	RateLimitRPS   float64 // CHRONOSENSE_RATE_LIMIT_RPS (default: 10)
	RateLimitBurst int     // CHRONOSENSE_RATE_LIMIT_BURST (default: 20)

	// Narrator Configuration
	NarratorEnabled bool   // CHRONOSENSE_NARRATOR_ENABLED (default: false)
	NarratorAPIKey  string // CHRONOSENSE_NARRATOR_API_KEY
	NarratorBaseURL string // CHRONOSENSE_NARRATOR_BASE_URL (default: https://api.openai.com/v1)
	NarratorModel   string // CHRONOSENSE_NARRATOR_MODEL (default: gpt-4o-mini)
	// NarratorTimeoutSeconds bounds one narration call.
	NarratorTimeoutSeconds int // CHRONOSENSE_NARRATOR_TIMEOUT_SECONDS (default: 10)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsNarratorEnabled returns true if the narrator is enabled and an API
// key is configured.
func (p *Profile) IsNarratorEnabled() bool {
	return p.NarratorEnabled && p.NarratorAPIKey != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getFloatEnvOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// FromEnv loads configuration from CHRONOSENSE_* environment variables.
func (p *Profile) FromEnv() {
	p.MaxInputLength = getIntEnvOrDefault("CHRONOSENSE_MAX_INPUT_LENGTH", 512)
	p.NextDayPolicy = getEnvOrDefault("CHRONOSENSE_NEXT_DAY_POLICY", "proximity")
	p.DefaultAnchorZone = getEnvOrDefault("CHRONOSENSE_DEFAULT_ANCHOR_ZONE", "UTC")

	p.RateLimitRPS = getFloatEnvOrDefault("CHRONOSENSE_RATE_LIMIT_RPS", 10)
	p.RateLimitBurst = getIntEnvOrDefault("CHRONOSENSE_RATE_LIMIT_BURST", 20)

	p.NarratorEnabled = os.Getenv("CHRONOSENSE_NARRATOR_ENABLED") == "true"
	p.NarratorAPIKey = os.Getenv("CHRONOSENSE_NARRATOR_API_KEY")
	p.NarratorBaseURL = getEnvOrDefault("CHRONOSENSE_NARRATOR_BASE_URL", "https://api.openai.com/v1")
	p.NarratorModel = getEnvOrDefault("CHRONOSENSE_NARRATOR_MODEL", "gpt-4o-mini")
	p.NarratorTimeoutSeconds = getIntEnvOrDefault("CHRONOSENSE_NARRATOR_TIMEOUT_SECONDS", 10)
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Port <= 0 || p.Port > 65535 {
		return errors.Errorf("invalid port %d", p.Port)
	}
	if p.MaxInputLength <= 0 {
		return errors.Errorf("max input length must be positive, got %d", p.MaxInputLength)
	}
	if p.NextDayPolicy != "proximity" && p.NextDayPolicy != "week_after" {
		return errors.Errorf("unknown next-day policy %q", p.NextDayPolicy)
	}
	if p.RateLimitRPS <= 0 {
		return errors.Errorf("rate limit rps must be positive, got %v", p.RateLimitRPS)
	}
	if p.RateLimitBurst <= 0 {
		return errors.Errorf("rate limit burst must be positive, got %d", p.RateLimitBurst)
	}
	if p.NarratorTimeoutSeconds <= 0 {
		return errors.Errorf("narrator timeout must be positive, got %d", p.NarratorTimeoutSeconds)
	}
	return nil
}
