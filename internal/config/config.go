// Package config resolves xoso-stats settings.
//
// Values are layered: built-in defaults, then the TOML file, then XOSO_*
// environment variables (optionally seeded from a .env file). Command-line
// flags are applied last by the CLI.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/xoso-stats/internal/analysis"
	"github.com/pfrederiksen/xoso-stats/internal/scraper"
)

// Config holds runtime configuration.
type Config struct {
	FetchDays   int
	ShowDays    int
	Workers     int
	CacheTTL    time.Duration
	LogLevel    string
	Format      string
	Offline     bool
	SnapshotDir string
	Listen      string
	Tracking    TrackingConfig
	Fetch       FetchConfig
	Endpoints   scraper.Endpoints
}

// TrackingConfig holds the default tracking matrix selectors.
type TrackingConfig struct {
	Source   string
	Compare  string
	Window   int
	Backtest int
}

// Options converts the selectors into tracking options.
func (t TrackingConfig) Options() (analysis.TrackOptions, error) {
	source, err := analysis.ParseSource(t.Source)
	if err != nil {
		return analysis.TrackOptions{}, err
	}
	compare, err := analysis.ParseCompare(t.Compare)
	if err != nil {
		return analysis.TrackOptions{}, err
	}
	return analysis.TrackOptions{
		Source:   source,
		Compare:  compare,
		Window:   t.Window,
		Backtest: t.Backtest,
	}, nil
}

// FetchConfig holds HTTP fetch settings.
type FetchConfig struct {
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
	// RateLimit is requests per second across all sources; 0 disables it.
	RateLimit float64
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		FetchDays: defaultFetchDays,
		ShowDays:  defaultShowDays,
		Workers:   defaultWorkers,
		CacheTTL:  defaultCacheTTL,
		LogLevel:  defaultLogLevel,
		Format:    defaultFormat,
		Listen:    defaultListen,
		Tracking: TrackingConfig{
			Source:  defaultSource,
			Compare: defaultCompare,
			Window:  defaultWindow,
		},
		Fetch: FetchConfig{
			Timeout:    defaultTimeout,
			Retries:    defaultRetries,
			RetryDelay: defaultRetryDelay,
		},
		Endpoints: scraper.DefaultEndpoints(),
	}
}

// Load builds the configuration from defaults, the TOML file at path
// (DefaultConfigPath when empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultConfigPath()
	}
	fc, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	fc.Apply(&cfg)

	applyEnv(&cfg)
	return cfg, nil
}

// Validate checks ranges and selector names.
func (c Config) Validate() error {
	var errs []error

	if c.FetchDays < MinFetchDays || c.FetchDays > MaxFetchDays {
		errs = append(errs, fmt.Errorf("fetch days must be between %d and %d, got %d", MinFetchDays, MaxFetchDays, c.FetchDays))
	}
	if c.ShowDays < 1 {
		errs = append(errs, fmt.Errorf("show days must be positive, got %d", c.ShowDays))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("cache ttl must be positive, got %s", c.CacheTTL))
	}
	switch strings.ToLower(c.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown format %q (want text or json)", c.Format))
	}

	if _, err := analysis.ParseSource(c.Tracking.Source); err != nil {
		errs = append(errs, err)
	}
	if _, err := analysis.ParseCompare(c.Tracking.Compare); err != nil {
		errs = append(errs, err)
	}
	if c.Tracking.Window < 1 || c.Tracking.Window > MaxWindow {
		errs = append(errs, fmt.Errorf("window must be between 1 and %d, got %d", MaxWindow, c.Tracking.Window))
	}
	if c.Tracking.Backtest < 0 {
		errs = append(errs, fmt.Errorf("backtest must not be negative, got %d", c.Tracking.Backtest))
	}

	if c.Fetch.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("fetch timeout must be positive, got %s", c.Fetch.Timeout))
	}
	if c.Fetch.Retries < 1 {
		errs = append(errs, fmt.Errorf("fetch retries must be at least 1, got %d", c.Fetch.Retries))
	}
	if c.Fetch.RetryDelay < 0 {
		errs = append(errs, fmt.Errorf("retry delay must not be negative, got %s", c.Fetch.RetryDelay))
	}
	if c.Fetch.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate limit must not be negative, got %g", c.Fetch.RateLimit))
	}

	for name, url := range map[string]string{
		"digits":     c.Endpoints.Digits,
		"sweepstake": c.Endpoints.Sweepstake,
		"special":    c.Endpoints.Special,
		"first":      c.Endpoints.First,
	} {
		if strings.TrimSpace(url) == "" {
			errs = append(errs, fmt.Errorf("endpoint %s is empty", name))
		}
	}

	return errors.Join(errs...)
}
