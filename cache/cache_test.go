package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/neoniv-fr/breizh-transit/feed"
	"github.com/neoniv-fr/breizh-transit/registry"
)

// countingLoader counts loads per key and can be switched into failure mode.
type countingLoader struct {
	mu    sync.Mutex
	loads map[string]int
	fail  bool
	blob  []byte
}

func newCountingLoader() *countingLoader {
	return &countingLoader{loads: map[string]int{}, blob: []byte("v1")}
}

func (l *countingLoader) Load(ctx context.Context, network string, kind registry.FeedKind) (feed.Payload, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loads[network+"|"+string(kind)]++
	if l.fail {
		return feed.Payload{}, errors.New("upstream down")
	}
	return feed.Payload{Kind: registry.Static, Blob: l.blob}, nil
}

func (l *countingLoader) count(network string, kind registry.FeedKind) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loads[network+"|"+string(kind)]
}

func (l *countingLoader) setFail(fail bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fail = fail
}

func TestGet_FreshHitSkipsLoader(t *testing.T) {
	l := newCountingLoader()
	c := New(l, time.Minute)

	for i := 0; i < 5; i++ {
		if _, _, err := c.Get(context.Background(), "bibus", registry.Static); err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
	}
	if got := l.count("bibus", registry.Static); got != 1 {
		t.Errorf("Expected 1 load within freshness window, got %d", got)
	}
}

func TestGet_StaleTriggersRefresh(t *testing.T) {
	l := newCountingLoader()
	c := New(l, time.Minute)

	now := time.Unix(1700000000, 0)
	c.now = func() time.Time { return now }

	if _, _, err := c.Get(context.Background(), "bibus", registry.Static); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	now = now.Add(2 * time.Minute)
	_, captured, err := c.Get(context.Background(), "bibus", registry.Static)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got := l.count("bibus", registry.Static); got != 2 {
		t.Errorf("Expected stale entry to refresh, got %d loads", got)
	}
	if !captured.Equal(now) {
		t.Errorf("Expected capture time at refresh start, got %s", captured)
	}
}

func TestGet_ServeStaleOnError(t *testing.T) {
	l := newCountingLoader()
	c := New(l, time.Minute)

	now := time.Unix(1700000000, 0)
	c.now = func() time.Time { return now }

	p1, t1, err := c.Get(context.Background(), "bibus", registry.Static)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	l.setFail(true)
	now = now.Add(2 * time.Minute)

	p2, t2, err := c.Get(context.Background(), "bibus", registry.Static)
	if err != nil {
		t.Fatalf("Stale fallback should not report an error, got %v", err)
	}
	if string(p2.Blob) != string(p1.Blob) {
		t.Errorf("Expected prior payload unchanged, got %q", p2.Blob)
	}
	if !t2.Equal(t1) {
		t.Errorf("Stale payload should keep its original capture time: %s vs %s", t2, t1)
	}
}

func TestGet_EmptyAndFailing(t *testing.T) {
	l := newCountingLoader()
	l.setFail(true)
	c := New(l, time.Minute)

	_, _, err := c.Get(context.Background(), "bibus", registry.Static)
	var ue *UnavailableError
	if !errors.As(err, &ue) {
		t.Fatalf("Expected UnavailableError, got %v", err)
	}
	if ue.Network != "bibus" || ue.Kind != registry.Static {
		t.Errorf("Error should name network and kind: %+v", ue)
	}
	// The entry must remain Empty: no capture time recorded.
	if _, ok := c.LastUpdate("bibus", registry.Static); ok {
		t.Error("Failed fetch must not create a cache entry")
	}
}

func TestGet_FailureNeverCorruptsEntry(t *testing.T) {
	l := newCountingLoader()
	c := New(l, time.Minute)

	now := time.Unix(1700000000, 0)
	c.now = func() time.Time { return now }

	if _, _, err := c.Get(context.Background(), "bibus", registry.Static); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	l.setFail(true)
	for i := 0; i < 3; i++ {
		now = now.Add(2 * time.Minute)
		p, _, err := c.Get(context.Background(), "bibus", registry.Static)
		if err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
		if string(p.Blob) != "v1" {
			t.Fatalf("Payload corrupted after failed refresh: %q", p.Blob)
		}
	}
}

func TestGet_SingleFlight(t *testing.T) {
	l := newCountingLoader()
	c := New(l, time.Minute)

	var wg sync.WaitGroup
	var errs atomic.Int32
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := c.Get(context.Background(), "bibus", registry.Static); err != nil {
				errs.Add(1)
			}
		}()
	}
	wg.Wait()

	if errs.Load() != 0 {
		t.Fatalf("%d concurrent Gets failed", errs.Load())
	}
	if got := l.count("bibus", registry.Static); got != 1 {
		t.Errorf("Concurrent Gets for one key should collapse to 1 load, got %d", got)
	}
}

func TestGet_IndependentKeys(t *testing.T) {
	l := newCountingLoader()
	c := New(l, time.Minute)

	var wg sync.WaitGroup
	for _, kind := range []registry.FeedKind{registry.VehiclePositions, registry.TripUpdates, registry.ServiceAlerts} {
		wg.Add(1)
		go func(k registry.FeedKind) {
			defer wg.Done()
			_, _, _ = c.Get(context.Background(), "star", k)
		}(kind)
	}
	wg.Wait()

	for _, kind := range []registry.FeedKind{registry.VehiclePositions, registry.TripUpdates, registry.ServiceAlerts} {
		if got := l.count("star", kind); got != 1 {
			t.Errorf("Expected 1 load for %s, got %d", kind, got)
		}
	}
}

func TestGet_FreshnessMonotonicity(t *testing.T) {
	l := newCountingLoader()
	c := New(l, time.Minute)

	before := time.Now()
	_, captured, err := c.Get(context.Background(), "bibus", registry.Static)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if captured.Before(before) {
		t.Errorf("Capture time %s precedes fetch start %s", captured, before)
	}
}

func TestLastUpdate(t *testing.T) {
	l := newCountingLoader()
	c := New(l, time.Minute)

	if _, ok := c.LastUpdate("bibus", registry.Static); ok {
		t.Error("LastUpdate should report nothing before the first fetch")
	}
	_, captured, _ := c.Get(context.Background(), "bibus", registry.Static)
	ts, ok := c.LastUpdate("bibus", registry.Static)
	if !ok || !ts.Equal(captured) {
		t.Errorf("LastUpdate = %s, %v; want %s, true", ts, ok, captured)
	}
}
