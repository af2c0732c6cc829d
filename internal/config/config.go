// Package config loads server settings from the environment and an optional .env file.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the server configuration.
type Config struct {
	Port     string `mapstructure:"PORT" validate:"required,numeric"`
	LogLevel string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`

	// Session tokens
	SessionSecret string        `mapstructure:"SESSION_SECRET"`
	SessionIssuer string        `mapstructure:"SESSION_ISSUER" validate:"required"`
	SessionTTL    time.Duration `mapstructure:"SESSION_TTL" validate:"gt=0"`
	SweepInterval time.Duration `mapstructure:"SESSION_SWEEP_INTERVAL" validate:"gt=0"`

	// Summary collaborator
	GeminiAPIKey   string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel    string        `mapstructure:"GEMINI_MODEL" validate:"required"`
	SummaryTimeout time.Duration `mapstructure:"SUMMARY_TIMEOUT" validate:"gt=0"`

	MetricsEnabled bool `mapstructure:"METRICS_ENABLED"`
}

var defaults = map[string]any{
	"PORT":                   "8080",
	"LOG_LEVEL":              "info",
	"SESSION_SECRET":         "",
	"SESSION_ISSUER":         "dutchpay",
	"SESSION_TTL":            "24h",
	"SESSION_SWEEP_INTERVAL": "10m",
	"GEMINI_API_KEY":         "",
	"GEMINI_MODEL":           "gemini-2.0-flash",
	"SUMMARY_TIMEOUT":        "15s",
	"METRICS_ENABLED":        true,
}

// Load reads configuration from environment variables. Values from the given
// env files (".env" when none are given) are applied first; variables already
// set in the environment win. A missing default .env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if len(envFiles) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.SessionSecret = secret
		slog.Warn("SESSION_SECRET not set, using a random secret; tokens will not survive a restart")
	}
	if cfg.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY not set, summaries will return a fallback message")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
