// Package narrator optionally rewrites a finished interpretation as a
// short conversational explanation via an OpenAI-compatible LLM. It is
// strictly post-hoc: the deterministic result is already assembled
// before the narrator sees it, and a narrator failure never changes it.
package narrator

import (
	"errors"
	"time"

	"github.com/hrygo/chronosense/internal/profile"
)

// Config represents narrator configuration.
type Config struct {
	Enabled bool

	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewConfigFromProfile creates narrator config from profile.
func NewConfigFromProfile(p *profile.Profile) *Config {
	cfg := &Config{
		Enabled: p.IsNarratorEnabled(),
	}
	if !cfg.Enabled {
		return cfg
	}

	cfg.APIKey = p.NarratorAPIKey
	cfg.BaseURL = p.NarratorBaseURL
	cfg.Model = p.NarratorModel
	cfg.Timeout = time.Duration(p.NarratorTimeoutSeconds) * time.Second
	return cfg
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.APIKey == "" {
		return errors.New("narrator API key is required")
	}
	if c.Model == "" {
		return errors.New("narrator model is required")
	}
	if c.Timeout <= 0 {
		return errors.New("narrator timeout must be positive")
	}
	return nil
}
