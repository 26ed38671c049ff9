package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/pfrederiksen/xoso-stats/internal/logger"
)

const (
	// UserAgent mimics a desktop browser; the result sites block obvious bots.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	DefaultTimeout     = 10 * time.Second
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 1 * time.Second
)

// RetryPolicy is the fixed-delay retry budget of a fetch.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryPolicy returns three attempts one second apart.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		Delay:       DefaultRetryDelay,
	}
}

// backOff converts the policy into a constant backoff that stops after
// MaxAttempts-1 retries.
func (p RetryPolicy) backOff() backoff.BackOff {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := p.Delay
	if delay < 0 {
		delay = 0
	}
	return backoff.WithMaxRetries(backoff.NewConstantBackOff(delay), uint64(attempts-1))
}

// Options configures a Fetcher. Zero values select the defaults.
type Options struct {
	Timeout    time.Duration
	Retry      RetryPolicy
	RateLimit  rate.Limit
	UserAgent  string
	HTTPClient *http.Client
	Metrics    *logger.Metrics

	// NewTimer supplies the timer that waits between attempts. Tests use it
	// to retry without sleeping.
	NewTimer func() backoff.Timer
}

// Fetcher retrieves and parses HTML pages.
type Fetcher struct {
	client    *http.Client
	retry     RetryPolicy
	limiter   *rate.Limiter
	userAgent string
	metrics   *logger.Metrics
	newTimer  func() backoff.Timer
}

// New creates a Fetcher from options.
func New(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Retry.MaxAttempts <= 0 {
		opts.Retry = DefaultRetryPolicy()
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = rate.Inf
	}
	if opts.UserAgent == "" {
		opts.UserAgent = UserAgent
	}
	if opts.Metrics == nil {
		opts.Metrics = logger.DefaultMetrics()
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{
			Timeout: opts.Timeout,
		}
	}

	return &Fetcher{
		client:    client,
		retry:     opts.Retry,
		limiter:   rate.NewLimiter(opts.RateLimit, 1),
		userAgent: opts.UserAgent,
		metrics:   opts.Metrics,
		newTimer:  opts.NewTimer,
	}
}

// Fetch retrieves url and parses it, retrying per the retry policy.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	var (
		doc      *goquery.Document
		attempts int
	)

	operation := func() error {
		attempts++
		start := time.Now()
		d, err := f.fetchOnce(ctx, url)
		f.metrics.IncrCounter("fetch.attempts")
		f.metrics.RecordTiming("fetch.duration", time.Since(start))
		if err != nil {
			f.logAttempt(url, attempts, err)
			return err
		}
		doc = d
		return nil
	}

	var timer backoff.Timer
	if f.newTimer != nil {
		timer = f.newTimer()
	}

	err := backoff.RetryNotifyWithTimer(operation, backoff.WithContext(f.retry.backOff(), ctx), nil, timer)
	if err != nil {
		f.metrics.IncrCounter("fetch.exhausted")
		logger.Error("fetch failed", logger.Fields{
			"url":      url,
			"attempts": attempts,
		}, err)
		return nil, &FetchError{URL: url, Attempts: attempts, Err: err}
	}

	return doc, nil
}

// fetchOnce performs a single GET and parses the body.
func (f *Fetcher) fetchOnce(ctx context.Context, url string) (*goquery.Document, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("waiting for rate limiter: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "vi-VN,vi;q=0.9,en;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(fmt.Errorf("fetching page: %w", err))
		}
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

func (f *Fetcher) logAttempt(url string, attempt int, err error) {
	fields := logger.Fields{
		"url":          url,
		"attempt":      attempt,
		"max_attempts": f.retry.MaxAttempts,
	}

	if IsTimeout(err) {
		f.metrics.IncrCounter("fetch.timeouts")
		logger.Warn("timeout loading page", fields)
		return
	}

	f.metrics.IncrCounter("fetch.failures")
	logger.Error("error loading page", fields, err)
}

// IsTimeout reports whether err is a network timeout.
func IsTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
