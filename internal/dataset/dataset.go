// Package dataset serves master tables to the CLI and HTTP server.
//
// A Service fetches every source, merges them and keeps the table in a TTL
// cache keyed by fetch depth. Successful tables are written to the snapshot
// store; when a fetch yields nothing, or the service runs offline, the last
// stored snapshot is served instead.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pfrederiksen/xoso-stats/internal/cache"
	"github.com/pfrederiksen/xoso-stats/internal/draw"
	"github.com/pfrederiksen/xoso-stats/internal/logger"
)

// DefaultTTL is how long a fetched table is reused.
const DefaultTTL = 30 * time.Minute

// ErrNoData is returned when neither the sources nor a snapshot produced rows.
var ErrNoData = errors.New("no data available")

// Fetcher produces the raw source series for a fetch depth.
type Fetcher interface {
	FetchAll(ctx context.Context, days int) draw.Sources
}

// Store persists tables between runs.
type Store interface {
	SaveTable(table *draw.Table) error
	LoadTable(days int) (*draw.Table, error)
}

// Options configures a Service.
type Options struct {
	TTL time.Duration
	// Offline serves stored snapshots only and never fetches.
	Offline bool
	// Store is optional.
	Store Store
	// Cache is created when nil.
	Cache *cache.Cache[int, *draw.Table]
}

// Service builds and caches master tables.
type Service struct {
	fetcher Fetcher
	store   Store
	cache   *cache.Cache[int, *draw.Table]
	ttl     time.Duration
	offline bool
}

// New creates a Service.
func New(fetcher Fetcher, opts Options) *Service {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Cache == nil {
		opts.Cache = cache.New[int, *draw.Table]()
	}
	return &Service{
		fetcher: fetcher,
		store:   opts.Store,
		cache:   opts.Cache,
		ttl:     opts.TTL,
		offline: opts.Offline,
	}
}

// Table returns the master table for a fetch depth, from cache when fresh.
// ErrNoData is returned when the table would be empty.
func (s *Service) Table(ctx context.Context, days int) (*draw.Table, error) {
	return s.cache.GetOrCompute(ctx, days, s.ttl, func(ctx context.Context) (*draw.Table, error) {
		return s.build(ctx, days)
	})
}

// Refresh drops every cached table and rebuilds the one for days.
func (s *Service) Refresh(ctx context.Context, days int) (*draw.Table, error) {
	s.cache.Invalidate()
	logger.IncrCounter("dataset.refreshes")
	return s.Table(ctx, days)
}

// Invalidate drops every cached table.
func (s *Service) Invalidate() {
	s.cache.Invalidate()
}

func (s *Service) build(ctx context.Context, days int) (*draw.Table, error) {
	if s.offline {
		return s.fromStore(days)
	}

	start := time.Now()
	src := s.fetcher.FetchAll(ctx, days)

	if err := draw.CheckAlignment(src, 0); err != nil {
		logger.Warn("prize series joined by position are misaligned", logger.Fields{
			"days":  days,
			"error": err.Error(),
		})
		logger.IncrCounter("dataset.misaligned")
	}

	table := draw.Merge(src)
	table.Days = days
	logger.RecordTiming("dataset.build", time.Since(start))
	logger.SetGauge("table.rows", float64(table.Len()))

	if table.Empty() {
		logger.Error("master table is empty", logger.Fields{"days": days}, nil)
		logger.IncrCounter("dataset.empty")
		if s.store != nil {
			if stored, err := s.fromStore(days); err == nil {
				logger.Warn("serving stored snapshot", logger.Fields{
					"days":       days,
					"fetched_at": stored.FetchedAt.Format(time.RFC3339),
				})
				return stored, nil
			}
		}
		return nil, ErrNoData
	}

	if s.store != nil {
		if err := s.store.SaveTable(table); err != nil {
			logger.Error("saving snapshot", logger.Fields{"days": days}, err)
		}
	}

	logger.Info("master table built", logger.Fields{
		"days": days,
		"rows": table.Len(),
	})
	return table, nil
}

func (s *Service) fromStore(days int) (*draw.Table, error) {
	if s.store == nil {
		return nil, fmt.Errorf("%w: offline mode needs a snapshot directory", ErrNoData)
	}
	table, err := s.store.LoadTable(days)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoData, err)
	}
	if table.Empty() {
		return nil, ErrNoData
	}
	return table, nil
}
