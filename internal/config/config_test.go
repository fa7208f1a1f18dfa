package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "JWT_EXPIRY", "RATE_LIMIT_RPS", "GEN_MIN_LENGTH", "GEN_MAX_LENGTH", "GEN_DEFAULT_LENGTH"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("JWTExpiry = %v, want %v", cfg.JWTExpiry, 24*time.Hour)
	}
	if cfg.RateLimitRPS != 5 || cfg.RateLimitBurst != 10 {
		t.Errorf("rate limit = %v/%d, want 5/10", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.Generator != DefaultGeneratorLimits() {
		t.Errorf("Generator = %+v, want %+v", cfg.Generator, DefaultGeneratorLimits())
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRY", "90m")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("GEN_MIN_LENGTH", "8")
	t.Setenv("GEN_MAX_LENGTH", "64")
	t.Setenv("GEN_DEFAULT_LENGTH", "20")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9090")
	}
	if cfg.JWTExpiry != 90*time.Minute {
		t.Errorf("JWTExpiry = %v, want %v", cfg.JWTExpiry, 90*time.Minute)
	}
	if cfg.RateLimitRPS != 2.5 {
		t.Errorf("RateLimitRPS = %v, want 2.5", cfg.RateLimitRPS)
	}
	want := GeneratorLimits{MinLength: 8, MaxLength: 64, DefaultLength: 20}
	if cfg.Generator != want {
		t.Errorf("Generator = %+v, want %+v", cfg.Generator, want)
	}
}

func TestLoadFallsBackOnInvalidValues(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("JWT_EXPIRY", "soon")
	t.Setenv("RATE_LIMIT_BURST", "many")
	t.Setenv("GEN_MIN_LENGTH", "40")
	t.Setenv("GEN_MAX_LENGTH", "10")

	cfg := Load()

	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("JWTExpiry = %v, want default", cfg.JWTExpiry)
	}
	if cfg.RateLimitBurst != 10 {
		t.Errorf("RateLimitBurst = %d, want default", cfg.RateLimitBurst)
	}
	if cfg.Generator != DefaultGeneratorLimits() {
		t.Errorf("Generator = %+v, want defaults", cfg.Generator)
	}
}

func TestGeneratorLimitsValidate(t *testing.T) {
	tests := []struct {
		name    string
		limits  GeneratorLimits
		wantErr bool
	}{
		{name: "defaults", limits: DefaultGeneratorLimits()},
		{name: "single value range", limits: GeneratorLimits{MinLength: 12, MaxLength: 12, DefaultLength: 12}},
		{name: "zero allowed", limits: GeneratorLimits{MinLength: 0, MaxLength: 4, DefaultLength: 0}},
		{name: "negative min", limits: GeneratorLimits{MinLength: -1, MaxLength: 4, DefaultLength: 2}, wantErr: true},
		{name: "inverted range", limits: GeneratorLimits{MinLength: 10, MaxLength: 5, DefaultLength: 7}, wantErr: true},
		{name: "default outside", limits: GeneratorLimits{MinLength: 4, MaxLength: 32, DefaultLength: 64}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.limits.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidLimits) {
				t.Errorf("Validate() error = %v, want %v", err, ErrInvalidLimits)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}
