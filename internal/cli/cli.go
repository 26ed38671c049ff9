package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/pfrederiksen/xoso-stats/internal/config"
	"github.com/pfrederiksen/xoso-stats/internal/dataset"
	"github.com/pfrederiksen/xoso-stats/internal/fetcher"
	"github.com/pfrederiksen/xoso-stats/internal/logger"
	"github.com/pfrederiksen/xoso-stats/internal/scraper"
	"github.com/pfrederiksen/xoso-stats/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitNoData  = 2
)

// ServiceFactory builds the dataset service for a resolved configuration.
type ServiceFactory func(cfg config.Config) (*dataset.Service, error)

// app holds the state shared by every subcommand of one invocation.
type app struct {
	newService ServiceFactory

	configPath string
	verbose    bool

	cfg    config.Config
	format OutputFormat
	svc    *dataset.Service
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(NewService)
}

func newRootCmd(factory ServiceFactory) *cobra.Command {
	a := &app{newService: factory}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "xoso-stats",
		Short: "Scrape Vietnamese lottery results and analyse them",
		Long: `A CLI tool that scrapes Điện Toán 123, Thần Tài and Miền Bắc prize
results, merges them by date and reports combination tracking, cycles,
gan statistics, streaks and digit frequencies.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/xoso-stats/config.toml)")
	flags.Int("days", defaults.FetchDays, fmt.Sprintf("Days of history to fetch (%d-%d)", config.MinFetchDays, config.MaxFetchDays))
	flags.String("format", defaults.Format, "Output format: text or json")
	flags.Bool("offline", false, "Use the stored snapshot instead of fetching")
	flags.String("snapshot-dir", "", "Snapshot directory (default $XDG_DATA_HOME/xoso-stats/snapshots)")
	flags.BoolVar(&a.verbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		a.newTableCmd(),
		a.newTrackCmd(),
		a.newGanCmd(),
		a.newStreakCmd(),
		a.newFreqCmd(),
		a.newLookupCmd(),
		a.newServeCmd(),
	)

	return cmd
}

// setup resolves configuration, installs the logger and builds the dataset
// service before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyFlags(cmd, &cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if a.format, err = ParseFormat(cfg.Format); err != nil {
		return err
	}

	level := logger.ParseLevel(cfg.LogLevel)
	if a.verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	logger.Debug("configuration resolved", logger.Fields{
		"fetch_days":   cfg.FetchDays,
		"show_days":    cfg.ShowDays,
		"offline":      cfg.Offline,
		"snapshot_dir": cfg.SnapshotDir,
	})

	a.svc, err = a.newService(cfg)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// applyFlags copies every flag the user set onto cfg. Flags that the running
// command does not define are ignored.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	applyInt(cmd, "days", &cfg.FetchDays)
	applyInt(cmd, "show", &cfg.ShowDays)
	applyString(cmd, "format", &cfg.Format)
	applyBool(cmd, "offline", &cfg.Offline)
	applyString(cmd, "snapshot-dir", &cfg.SnapshotDir)
	applyString(cmd, "listen", &cfg.Listen)
	applyString(cmd, "source", &cfg.Tracking.Source)
	applyString(cmd, "compare", &cfg.Tracking.Compare)
	applyInt(cmd, "window", &cfg.Tracking.Window)
	applyInt(cmd, "backtest", &cfg.Tracking.Backtest)
}

func applyString(cmd *cobra.Command, name string, target *string) {
	if cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return
	}
	if v, err := cmd.Flags().GetString(name); err == nil {
		*target = v
	}
}

func applyInt(cmd *cobra.Command, name string, target *int) {
	if cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return
	}
	if v, err := cmd.Flags().GetInt(name); err == nil {
		*target = v
	}
}

func applyBool(cmd *cobra.Command, name string, target *bool) {
	if cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return
	}
	if v, err := cmd.Flags().GetBool(name); err == nil {
		*target = v
	}
}

// NewService wires the fetcher, scraper and snapshot store into a dataset
// service.
func NewService(cfg config.Config) (*dataset.Service, error) {
	limit := rate.Inf
	if cfg.Fetch.RateLimit > 0 {
		limit = rate.Limit(cfg.Fetch.RateLimit)
	}

	f := fetcher.New(fetcher.Options{
		Timeout: cfg.Fetch.Timeout,
		Retry: fetcher.RetryPolicy{
			MaxAttempts: cfg.Fetch.Retries,
			Delay:       cfg.Fetch.RetryDelay,
		},
		RateLimit: limit,
	})
	sc := scraper.New(f, cfg.Endpoints, cfg.Workers)

	dir := cfg.SnapshotDir
	if dir == "" {
		dir = config.DefaultSnapshotDir()
	}
	store, err := storage.New(dir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	return dataset.New(sc, dataset.Options{
		TTL:     cfg.CacheTTL,
		Offline: cfg.Offline,
		Store:   store,
	}), nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, dataset.ErrNoData) {
			os.Exit(ExitNoData)
		}
		os.Exit(ExitError)
	}
}
