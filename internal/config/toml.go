package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Unset keys stay nil
// and leave the defaults alone.
type FileConfig struct {
	FetchDays   *int           `toml:"fetch_days"`
	ShowDays    *int           `toml:"show_days"`
	Workers     *int           `toml:"workers"`
	CacheTTL    *time.Duration `toml:"cache_ttl"`
	LogLevel    *string        `toml:"log_level"`
	Format      *string        `toml:"format"`
	Offline     *bool          `toml:"offline"`
	SnapshotDir *string        `toml:"snapshot_dir"`
	Listen      *string        `toml:"listen"`
	Tracking    TrackingFile   `toml:"tracking"`
	Fetch       FetchFile      `toml:"fetch"`
	Endpoints   EndpointsFile  `toml:"endpoints"`
}

// TrackingFile maps the [tracking] table.
type TrackingFile struct {
	Source   *string `toml:"source"`
	Compare  *string `toml:"compare"`
	Window   *int    `toml:"window"`
	Backtest *int    `toml:"backtest"`
}

// FetchFile maps the [fetch] table.
type FetchFile struct {
	Timeout    *time.Duration `toml:"timeout"`
	Retries    *int           `toml:"retries"`
	RetryDelay *time.Duration `toml:"retry_delay"`
	RateLimit  *float64       `toml:"rate_limit"`
}

// EndpointsFile maps the [endpoints] table.
type EndpointsFile struct {
	Digits     *string `toml:"digits"`
	Sweepstake *string `toml:"sweepstake"`
	Special    *string `toml:"special"`
	First      *string `toml:"first"`
}

// LoadFile reads a TOML config from the given path. Missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var fc FileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return fc, nil
}

// Apply copies every set key onto cfg.
func (fc FileConfig) Apply(cfg *Config) {
	setInt(&cfg.FetchDays, fc.FetchDays)
	setInt(&cfg.ShowDays, fc.ShowDays)
	setInt(&cfg.Workers, fc.Workers)
	setDuration(&cfg.CacheTTL, fc.CacheTTL)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.Format, fc.Format)
	if fc.Offline != nil {
		cfg.Offline = *fc.Offline
	}
	setString(&cfg.SnapshotDir, fc.SnapshotDir)
	setString(&cfg.Listen, fc.Listen)

	setString(&cfg.Tracking.Source, fc.Tracking.Source)
	setString(&cfg.Tracking.Compare, fc.Tracking.Compare)
	setInt(&cfg.Tracking.Window, fc.Tracking.Window)
	setInt(&cfg.Tracking.Backtest, fc.Tracking.Backtest)

	setDuration(&cfg.Fetch.Timeout, fc.Fetch.Timeout)
	setInt(&cfg.Fetch.Retries, fc.Fetch.Retries)
	setDuration(&cfg.Fetch.RetryDelay, fc.Fetch.RetryDelay)
	if fc.Fetch.RateLimit != nil {
		cfg.Fetch.RateLimit = *fc.Fetch.RateLimit
	}

	setString(&cfg.Endpoints.Digits, fc.Endpoints.Digits)
	setString(&cfg.Endpoints.Sweepstake, fc.Endpoints.Sweepstake)
	setString(&cfg.Endpoints.Special, fc.Endpoints.Special)
	setString(&cfg.Endpoints.First, fc.Endpoints.First)
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *time.Duration) {
	if v != nil {
		*dst = *v
	}
}
