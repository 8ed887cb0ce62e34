// Package config provides comparison settings loaded from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	smi "github.com/Evan-Kim2028/sui-move-interface-extractor"
)

// Config holds all command configuration.
type Config struct {
	MaxMismatches    int
	IncludeValues    bool
	LogLevel         string
	BatchConcurrency int
}

// DefaultBatchConcurrency bounds how many packages a batch compares at once.
const DefaultBatchConcurrency = 4

// Load reads a .env file from the working directory, if present, then LoadFromEnv.
// Variables already set in the environment take precedence over the file.
func Load() (Config, error) {
	_ = godotenv.Load()
	return LoadFromEnv()
}

// LoadFromEnv reads configuration from environment variables with defaults.
func LoadFromEnv() (Config, error) {
	cfg := Config{
		LogLevel: strings.ToLower(envOr("SMI_LOG_LEVEL", "info")),
	}

	var err error
	if cfg.MaxMismatches, err = envInt("SMI_MAX_MISMATCHES", smi.DefaultMaxMismatches); err != nil {
		return Config{}, err
	}
	if cfg.MaxMismatches < 0 {
		return Config{}, fmt.Errorf("config: SMI_MAX_MISMATCHES must be >= 0 (got %d)", cfg.MaxMismatches)
	}
	if cfg.IncludeValues, err = envBool("SMI_INCLUDE_VALUES", true); err != nil {
		return Config{}, err
	}
	if cfg.BatchConcurrency, err = envInt("SMI_BATCH_CONCURRENCY", DefaultBatchConcurrency); err != nil {
		return Config{}, err
	}
	if cfg.BatchConcurrency < 1 {
		return Config{}, fmt.Errorf("config: SMI_BATCH_CONCURRENCY must be >= 1 (got %d)", cfg.BatchConcurrency)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return Config{}, fmt.Errorf("config: invalid SMI_LOG_LEVEL %q (must be debug, info, warn or error)", cfg.LogLevel)
	}

	return cfg, nil
}

// CompareOptions returns the comparison options this configuration selects.
func (c Config) CompareOptions() smi.CompareOptions {
	return smi.CompareOptions{MaxMismatches: c.MaxMismatches, IncludeValues: c.IncludeValues}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, raw, err)
	}
	return n, nil
}

func envBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("config: invalid %s %q: %w", key, raw, err)
	}
	return b, nil
}
