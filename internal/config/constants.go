package config

import "time"

const (
	envFetchDays   = "XOSO_FETCH_DAYS"
	envShowDays    = "XOSO_SHOW_DAYS"
	envWindow      = "XOSO_WINDOW"
	envBacktest    = "XOSO_BACKTEST"
	envSource      = "XOSO_SOURCE"
	envCompare     = "XOSO_COMPARE"
	envWorkers     = "XOSO_WORKERS"
	envCacheTTL    = "XOSO_CACHE_TTL"
	envLogLevel    = "XOSO_LOG_LEVEL"
	envFormat      = "XOSO_FORMAT"
	envOffline     = "XOSO_OFFLINE"
	envSnapshotDir = "XOSO_SNAPSHOT_DIR"
	envListen      = "XOSO_LISTEN"
	envTimeout     = "XOSO_FETCH_TIMEOUT"
	envRetries     = "XOSO_FETCH_RETRIES"
	envRetryDelay  = "XOSO_RETRY_DELAY"
	envRateLimit   = "XOSO_RATE_LIMIT"

	defaultFetchDays  = 60
	defaultShowDays   = 20
	defaultWindow     = 7
	defaultSource     = "sweepstake"
	defaultCompare    = "special"
	defaultWorkers    = 4
	defaultCacheTTL   = 30 * time.Minute
	defaultLogLevel   = "info"
	defaultFormat     = "text"
	defaultListen     = ":8080"
	defaultTimeout    = 10 * time.Second
	defaultRetries    = 3
	defaultRetryDelay = time.Second

	MinFetchDays = 30
	MaxFetchDays = 365
	MaxWindow    = 20
)
