package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads KEY=value pairs from the given files (".env" when none
// are named) into the process environment. Variables already set win.
// Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// applyEnv overlays XOSO_* variables onto cfg.
func applyEnv(cfg *Config) {
	cfg.FetchDays = intEnvOrDefault(envFetchDays, cfg.FetchDays)
	cfg.ShowDays = intEnvOrDefault(envShowDays, cfg.ShowDays)
	cfg.Workers = intEnvOrDefault(envWorkers, cfg.Workers)
	cfg.CacheTTL = durationEnvOrDefault(envCacheTTL, cfg.CacheTTL)
	cfg.LogLevel = envOrDefault(envLogLevel, cfg.LogLevel)
	cfg.Format = envOrDefault(envFormat, cfg.Format)
	cfg.Offline = boolEnvOrDefault(envOffline, cfg.Offline)
	cfg.SnapshotDir = envOrDefault(envSnapshotDir, cfg.SnapshotDir)
	cfg.Listen = envOrDefault(envListen, cfg.Listen)

	cfg.Tracking.Source = envOrDefault(envSource, cfg.Tracking.Source)
	cfg.Tracking.Compare = envOrDefault(envCompare, cfg.Tracking.Compare)
	cfg.Tracking.Window = intEnvOrDefault(envWindow, cfg.Tracking.Window)
	cfg.Tracking.Backtest = nonNegativeIntEnvOrDefault(envBacktest, cfg.Tracking.Backtest)

	cfg.Fetch.Timeout = durationEnvOrDefault(envTimeout, cfg.Fetch.Timeout)
	cfg.Fetch.Retries = intEnvOrDefault(envRetries, cfg.Fetch.Retries)
	cfg.Fetch.RetryDelay = durationEnvOrDefault(envRetryDelay, cfg.Fetch.RetryDelay)
	cfg.Fetch.RateLimit = floatEnvOrDefault(envRateLimit, cfg.Fetch.RateLimit)
}

func envOrDefault(key, defaultValue string) string {
	val := os.Getenv(key)
	if val != "" {
		return val
	}
	return defaultValue
}

func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

func intEnvOrDefault(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return defaultValue
	}
	return val
}

func nonNegativeIntEnvOrDefault(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return defaultValue
	}
	return val
}

func floatEnvOrDefault(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val < 0 {
		return defaultValue
	}
	return val
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	if raw == "1" || strings.EqualFold(raw, "true") || strings.EqualFold(raw, "yes") {
		return true
	}
	if raw == "0" || strings.EqualFold(raw, "false") || strings.EqualFold(raw, "no") {
		return false
	}
	return defaultValue
}
