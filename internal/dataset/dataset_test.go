package dataset

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pfrederiksen/xoso-stats/internal/cache"
	"github.com/pfrederiksen/xoso-stats/internal/draw"
	"github.com/pfrederiksen/xoso-stats/internal/storage"
)

type stubFetcher struct {
	mu    sync.Mutex
	calls int
	src   draw.Sources
}

func (f *stubFetcher) FetchAll(ctx context.Context, days int) draw.Sources {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.src
}

func (f *stubFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func sampleSources() draw.Sources {
	return draw.Sources{
		Digits: []draw.DigitsResult{
			{Date: "17/10/2024", Numbers: []string{"1", "2", "3"}},
			{Date: "16/10/2024", Numbers: []string{"4", "5", "6"}},
		},
		Sweepstake: []draw.SweepstakeResult{{Date: "16/10/2024", Number: "0587"}},
		Special:    []string{"12345", "54321"},
		First:      []string{"67890", "09876"},
	}
}

func TestService_TableCachesByDepth(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	f := &stubFetcher{src: sampleSources()}
	svc := New(f, Options{TTL: time.Minute, Cache: cache.NewWithClock[int, *draw.Table](now)})

	table, err := svc.Table(context.Background(), 60)
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	if table.Len() != 2 || table.Days != 60 {
		t.Errorf("table = %d rows / %d days", table.Len(), table.Days)
	}
	if table.Rows[1].Sweepstake != "0587" {
		t.Errorf("row 1 sweepstake = %q", table.Rows[1].Sweepstake)
	}

	if _, err := svc.Table(context.Background(), 60); err != nil {
		t.Fatal(err)
	}
	if f.Calls() != 1 {
		t.Errorf("fetches = %d, want 1 while fresh", f.Calls())
	}

	if _, err := svc.Table(context.Background(), 90); err != nil {
		t.Fatal(err)
	}
	if f.Calls() != 2 {
		t.Errorf("fetches = %d, another depth should fetch", f.Calls())
	}

	clock = clock.Add(time.Minute)
	if _, err := svc.Table(context.Background(), 60); err != nil {
		t.Fatal(err)
	}
	if f.Calls() != 3 {
		t.Errorf("fetches = %d, expired entry should refetch", f.Calls())
	}
}

func TestService_Refresh(t *testing.T) {
	f := &stubFetcher{src: sampleSources()}
	svc := New(f, Options{})

	if _, err := svc.Table(context.Background(), 60); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Refresh(context.Background(), 60); err != nil {
		t.Fatal(err)
	}
	if f.Calls() != 2 {
		t.Errorf("fetches = %d, Refresh should refetch", f.Calls())
	}
}

func TestService_EmptySources(t *testing.T) {
	f := &stubFetcher{src: draw.Sources{Digits: sampleSources().Digits}}
	svc := New(f, Options{})

	_, err := svc.Table(context.Background(), 60)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("Table() error = %v, want ErrNoData", err)
	}

	// Failures are not cached
	f.src = sampleSources()
	if _, err := svc.Table(context.Background(), 60); err != nil {
		t.Errorf("Table() after recovery error = %v", err)
	}
}

func TestService_SnapshotFallback(t *testing.T) {
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	online := New(&stubFetcher{src: sampleSources()}, Options{Store: store})
	if _, err := online.Table(context.Background(), 60); err != nil {
		t.Fatalf("Table() error = %v", err)
	}

	t.Run("empty fetch serves snapshot", func(t *testing.T) {
		svc := New(&stubFetcher{}, Options{Store: store})
		table, err := svc.Table(context.Background(), 60)
		if err != nil {
			t.Fatalf("Table() error = %v", err)
		}
		if table.Len() != 2 {
			t.Errorf("table rows = %d, want 2", table.Len())
		}
	})

	t.Run("offline never fetches", func(t *testing.T) {
		f := &stubFetcher{src: sampleSources()}
		svc := New(f, Options{Store: store, Offline: true})
		if _, err := svc.Table(context.Background(), 60); err != nil {
			t.Fatalf("Table() error = %v", err)
		}
		if f.Calls() != 0 {
			t.Errorf("offline service fetched %d times", f.Calls())
		}
	})

	t.Run("offline without snapshot", func(t *testing.T) {
		svc := New(&stubFetcher{}, Options{Store: store, Offline: true})
		_, err := svc.Table(context.Background(), 120)
		if !errors.Is(err, ErrNoData) || !errors.Is(err, storage.ErrNoSnapshot) {
			t.Errorf("Table() error = %v, want ErrNoData wrapping ErrNoSnapshot", err)
		}
	})

	t.Run("offline without store", func(t *testing.T) {
		svc := New(&stubFetcher{}, Options{Offline: true})
		if _, err := svc.Table(context.Background(), 60); !errors.Is(err, ErrNoData) {
			t.Errorf("Table() error = %v, want ErrNoData", err)
		}
	})
}

// blockingFetcher holds FetchAll until released and, like the HTTP
// fetcher, returns empty series when its context is cancelled.
type blockingFetcher struct {
	started chan struct{}
	release chan struct{}
	calls   int32
}

func (f *blockingFetcher) FetchAll(ctx context.Context, days int) draw.Sources {
	if atomic.AddInt32(&f.calls, 1) == 1 {
		close(f.started)
	}
	<-f.release
	if ctx.Err() != nil {
		return draw.Sources{}
	}
	return sampleSources()
}

func TestService_TableSurvivesCancelledCaller(t *testing.T) {
	f := &blockingFetcher{started: make(chan struct{}), release: make(chan struct{})}
	svc := New(f, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := svc.Table(ctx, 60)
		first <- err
	}()

	<-f.started
	cancel()
	if err := <-first; !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled caller error = %v, want context.Canceled", err)
	}

	type result struct {
		table *draw.Table
		err   error
	}
	second := make(chan result, 1)
	go func() {
		table, err := svc.Table(context.Background(), 60)
		second <- result{table, err}
	}()

	close(f.release)
	res := <-second
	if res.err != nil {
		t.Fatalf("live caller error = %v", res.err)
	}
	if res.table.Len() != 2 {
		t.Errorf("live caller rows = %d, want 2", res.table.Len())
	}
	if got := atomic.LoadInt32(&f.calls); got != 1 {
		t.Errorf("fetches = %d, want one shared build", got)
	}
}
