package profile

import (
	"testing"
)

func defaultTestProfile() *Profile {
	return &Profile{
		Mode:                   "dev",
		Addr:                   "",
		Port:                   8230,
		MaxInputLength:         512,
		NextDayPolicy:          "proximity",
		DefaultAnchorZone:      "UTC",
		RateLimitRPS:           10,
		RateLimitBurst:         20,
		NarratorTimeoutSeconds: 10,
	}
}

func TestValidateDefaults(t *testing.T) {
	p := defaultTestProfile()
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateNormalizesUnknownMode(t *testing.T) {
	p := defaultTestProfile()
	p.Mode = "staging"
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
	if p.Mode != "demo" {
		t.Errorf("Mode = %q, want demo", p.Mode)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"zero port", func(p *Profile) { p.Port = 0 }},
		{"huge port", func(p *Profile) { p.Port = 70000 }},
		{"zero input length", func(p *Profile) { p.MaxInputLength = 0 }},
		{"unknown next-day policy", func(p *Profile) { p.NextDayPolicy = "soonest" }},
		{"zero rps", func(p *Profile) { p.RateLimitRPS = 0 }},
		{"negative burst", func(p *Profile) { p.RateLimitBurst = -1 }},
		{"zero narrator timeout", func(p *Profile) { p.NarratorTimeoutSeconds = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := defaultTestProfile()
			tt.mutate(p)
			if err := p.Validate(); err == nil {
				t.Errorf("Validate() = nil, want error")
			}
		})
	}
}

func TestFromEnvDefaults(t *testing.T) {
	p := &Profile{}
	p.FromEnv()

	if p.MaxInputLength != 512 {
		t.Errorf("MaxInputLength = %d, want 512", p.MaxInputLength)
	}
	if p.NextDayPolicy != "proximity" {
		t.Errorf("NextDayPolicy = %q, want proximity", p.NextDayPolicy)
	}
	if p.DefaultAnchorZone != "UTC" {
		t.Errorf("DefaultAnchorZone = %q, want UTC", p.DefaultAnchorZone)
	}
	if p.NarratorEnabled {
		t.Errorf("NarratorEnabled = true, want false")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("CHRONOSENSE_MAX_INPUT_LENGTH", "256")
	t.Setenv("CHRONOSENSE_NEXT_DAY_POLICY", "week_after")
	t.Setenv("CHRONOSENSE_RATE_LIMIT_RPS", "2.5")
	t.Setenv("CHRONOSENSE_NARRATOR_ENABLED", "true")
	t.Setenv("CHRONOSENSE_NARRATOR_API_KEY", "sk-test")

	p := &Profile{}
	p.FromEnv()

	if p.MaxInputLength != 256 {
		t.Errorf("MaxInputLength = %d, want 256", p.MaxInputLength)
	}
	if p.NextDayPolicy != "week_after" {
		t.Errorf("NextDayPolicy = %q, want week_after", p.NextDayPolicy)
	}
	if p.RateLimitRPS != 2.5 {
		t.Errorf("RateLimitRPS = %v, want 2.5", p.RateLimitRPS)
	}
	if !p.IsNarratorEnabled() {
		t.Errorf("IsNarratorEnabled() = false, want true")
	}
}

func TestIsNarratorEnabledRequiresKey(t *testing.T) {
	p := defaultTestProfile()
	p.NarratorEnabled = true
	p.NarratorAPIKey = ""
	if p.IsNarratorEnabled() {
		t.Errorf("IsNarratorEnabled() = true without API key, want false")
	}
}
