package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

const devJWTSecret = "dev-secret-change-in-production"

var ErrInvalidLimits = errors.New("invalid generator length limits")

// GeneratorLimits bound the lengths callers may request, mirroring the
// length slider of the generator screen.
type GeneratorLimits struct {
	MinLength     int
	MaxLength     int
	DefaultLength int
}

// DefaultGeneratorLimits returns the 4-32 slider range with a default of 16.
func DefaultGeneratorLimits() GeneratorLimits {
	return GeneratorLimits{MinLength: 4, MaxLength: 32, DefaultLength: 16}
}

// Validate checks that the limits describe a non-empty range containing the default.
func (l GeneratorLimits) Validate() error {
	if l.MinLength < 0 || l.MaxLength < l.MinLength {
		return fmt.Errorf("%w: min %d, max %d", ErrInvalidLimits, l.MinLength, l.MaxLength)
	}
	if l.DefaultLength < l.MinLength || l.DefaultLength > l.MaxLength {
		return fmt.Errorf("%w: default %d outside [%d, %d]", ErrInvalidLimits, l.DefaultLength, l.MinLength, l.MaxLength)
	}
	return nil
}

type Config struct {
	Port        string
	Env         string
	DatabaseDSN string
	JWTSecret   string
	JWTExpiry   time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	MetricsUser     string
	MetricsPassword string

	Generator GeneratorLimits
}

// IsProduction reports whether the service runs with ENV=production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func Load() Config {
	defaults := DefaultGeneratorLimits()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/passgen?parseTime=true"),
		JWTSecret:   getEnv("JWT_SECRET", devJWTSecret),
		JWTExpiry:   getDuration("JWT_EXPIRY", 24*time.Hour),

		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 10),

		MetricsUser:     getEnv("METRICS_USER", "prometheus"),
		MetricsPassword: getEnv("METRICS_PASSWORD", "passgen"),

		Generator: GeneratorLimits{
			MinLength:     getInt("GEN_MIN_LENGTH", defaults.MinLength),
			MaxLength:     getInt("GEN_MAX_LENGTH", defaults.MaxLength),
			DefaultLength: getInt("GEN_DEFAULT_LENGTH", defaults.DefaultLength),
		},
	}

	if cfg.IsProduction() && cfg.JWTSecret == devJWTSecret {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	if err := cfg.Generator.Validate(); err != nil {
		slog.Warn("ignoring generator limits from environment", "error", err)
		cfg.Generator = defaults
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		slog.Warn("invalid rate in environment, using default", "key", key, "value", v)
		return fallback
	}
	return f
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", v)
		return fallback
	}
	return d
}
