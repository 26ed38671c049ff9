package scraper

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/xoso-stats/internal/draw"
	"github.com/pfrederiksen/xoso-stats/internal/logger"
)

const (
	DigitsURL     = "https://ketqua04.net/so-ket-qua-dien-toan-123/{days}"
	SweepstakeURL = "https://ketqua04.net/so-ket-qua-than-tai/{days}"
	SpecialURL    = "https://congcuxoso.com/MienBac/DacBiet/PhoiCauDacBiet/PhoiCauTuan5So.aspx"
	FirstURL      = "https://congcuxoso.com/MienBac/GiaiNhat/PhoiCauGiaiNhat/PhoiCauTuan5So.aspx"

	// DefaultWorkers runs every source at once.
	DefaultWorkers = 4
)

// Fetcher retrieves a parsed page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Endpoints holds the source URLs. A "{days}" placeholder is replaced with
// the fetch depth.
type Endpoints struct {
	Digits     string `toml:"digits"`
	Sweepstake string `toml:"sweepstake"`
	Special    string `toml:"special"`
	First      string `toml:"first"`
}

// DefaultEndpoints returns the production result pages.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Digits:     DigitsURL,
		Sweepstake: SweepstakeURL,
		Special:    SpecialURL,
		First:      FirstURL,
	}
}

// BuildURL substitutes the fetch depth into an endpoint template.
func BuildURL(template string, days int) string {
	return strings.ReplaceAll(template, "{days}", strconv.Itoa(days))
}

// Scraper fetches and parses every result source.
type Scraper struct {
	fetcher   Fetcher
	endpoints Endpoints
	workers   int
}

// New creates a Scraper. workers bounds how many sources are fetched at once.
func New(fetcher Fetcher, endpoints Endpoints, workers int) *Scraper {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Scraper{
		fetcher:   fetcher,
		endpoints: endpoints,
		workers:   workers,
	}
}

// FetchAll fetches all four sources concurrently and waits for every one of
// them. Sources that fail come back empty.
func (s *Scraper) FetchAll(ctx context.Context, days int) draw.Sources {
	var src draw.Sources

	var g errgroup.Group
	g.SetLimit(s.workers)

	// Each task writes only its own field of src
	g.Go(func() error {
		src.Digits = s.FetchDigits(ctx, days)
		return nil
	})
	g.Go(func() error {
		src.Sweepstake = s.FetchSweepstake(ctx, days)
		return nil
	})
	g.Go(func() error {
		src.Special = s.FetchPaired(ctx, "special", s.endpoints.Special, days)
		return nil
	})
	g.Go(func() error {
		src.First = s.FetchPaired(ctx, "first", s.endpoints.First, days)
		return nil
	})

	_ = g.Wait()

	logger.Info("sources fetched", logger.Fields{
		"days":       days,
		"digits":     len(src.Digits),
		"sweepstake": len(src.Sweepstake),
		"special":    len(src.Special),
		"first":      len(src.First),
	})

	return src
}

// FetchDigits fetches the Điện Toán 123 archive.
func (s *Scraper) FetchDigits(ctx context.Context, days int) []draw.DigitsResult {
	return fetchSource(ctx, s, "digits", BuildURL(s.endpoints.Digits, days), func(doc *goquery.Document) []draw.DigitsResult {
		return ParseDigits(doc, days)
	})
}

// FetchSweepstake fetches the Thần Tài archive.
func (s *Scraper) FetchSweepstake(ctx context.Context, days int) []draw.SweepstakeResult {
	return fetchSource(ctx, s, "sweepstake", BuildURL(s.endpoints.Sweepstake, days), func(doc *goquery.Document) []draw.SweepstakeResult {
		return ParseSweepstake(doc, days)
	})
}

// FetchPaired fetches one weekly prize grid.
func (s *Scraper) FetchPaired(ctx context.Context, name, endpoint string, days int) []string {
	return fetchSource(ctx, s, name, BuildURL(endpoint, days), func(doc *goquery.Document) []string {
		return ParsePaired(doc, days)
	})
}

// fetchSource fetches url and runs parse on it. Fetch errors and parser
// panics are logged and turned into an empty series.
func fetchSource[T any](ctx context.Context, s *Scraper, name, url string, parse func(*goquery.Document) []T) (out []T) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("parsing source", logger.Fields{"source": name, "url": url}, fmt.Errorf("panic: %v", r))
			logger.IncrCounter("source." + name + ".parse_errors")
			out = []T{}
		}
		logger.SetGauge("source."+name+".rows", float64(len(out)))
	}()

	doc, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		logger.Error("source unavailable", logger.Fields{"source": name, "url": url}, err)
		return []T{}
	}

	out = parse(doc)
	if len(out) == 0 {
		logger.Warn("source returned no valid rows", logger.Fields{"source": name, "url": url})
	}
	return out
}
