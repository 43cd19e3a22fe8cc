// Package config loads the engine's Config in layers: compiled-in
// defaults, then ~/.ciphey/config.toml if present, then DECIPHER_*
// environment variables, each layer overriding only the fields it sets.
// This mirrors an env-first config style (requireEnv/getEnvOrDefault)
// generalized with a TOML layer underneath it, since this engine's
// config surface is large enough to want a file instead of a wall of
// env vars.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rawblock/decipher-engine/pkg/models"
)

// Dir returns ~/.ciphey, falling back to ./.ciphey if the home directory
// can't be resolved.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".ciphey")
}

// Defaults returns the engine's compiled-in configuration.
func Defaults() models.Config {
	return models.Config{
		TimeoutSeconds: 5,
		HumanCheckerOn: false,
		Verbose:        0,
		APIMode:        false,
		TopResults:     false,
		ColorScheme: models.ColorScheme{
			"success": {0, 255, 0},
			"warning": {255, 255, 0},
			"error":   {255, 0, 0},
			"info":    {0, 255, 255},
			"text":    {255, 255, 255},
		},
	}
}

// Load builds a Config by applying, in order: Defaults, the TOML file at
// configPath (skipped entirely if it doesn't exist), then environment
// variable overrides. A missing file is not an error; a malformed
// present file is.
func Load(configPath string) (models.Config, error) {
	cfg := Defaults()

	if data, err := os.ReadFile(configPath); err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return models.Config{}, fmt.Errorf("config: parse %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return models.Config{}, fmt.Errorf("config: read %s: %w", configPath, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overrides cfg fields from DECIPHER_* environment variables,
// leaving any field whose variable is unset untouched.
func applyEnv(cfg *models.Config) {
	if v := os.Getenv("DECIPHER_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("DECIPHER_REGEX"); v != "" {
		cfg.Regex = v
	}
	if v := os.Getenv("DECIPHER_WORDLIST"); v != "" {
		cfg.Wordlist = strings.Split(v, ",")
	}
	if v := os.Getenv("DECIPHER_HUMAN_CHECKER"); v != "" {
		cfg.HumanCheckerOn = parseBool(v, cfg.HumanCheckerOn)
	}
	if v := os.Getenv("DECIPHER_VERBOSE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Verbose = n
		}
	}
	if v := os.Getenv("DECIPHER_API_MODE"); v != "" {
		cfg.APIMode = parseBool(v, cfg.APIMode)
	}
	if v := os.Getenv("DECIPHER_TOP_RESULTS"); v != "" {
		cfg.TopResults = parseBool(v, cfg.TopResults)
	}
	if v := os.Getenv("DECIPHER_AI_ENABLED"); v != "" {
		cfg.AI.Enabled = parseBool(v, cfg.AI.Enabled)
	}
	if v := os.Getenv("DECIPHER_AI_MODEL"); v != "" {
		cfg.AI.Model = v
	}
	if v := os.Getenv("DECIPHER_AI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
}

func parseBool(v string, fallback bool) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// GetEnvOrDefault reads an environment variable or returns fallback.
func GetEnvOrDefault(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
