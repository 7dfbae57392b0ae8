package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/neoniv-fr/breizh-transit/feed"
	"github.com/neoniv-fr/breizh-transit/registry"
)

// DefaultWindow is the freshness window used when none is configured.
const DefaultWindow = 30 * time.Second

// Loader produces a fresh payload for one (network, kind) pair. The cache
// calls it at most once per key per refresh cycle.
type Loader interface {
	Load(ctx context.Context, network string, kind registry.FeedKind) (feed.Payload, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, network string, kind registry.FeedKind) (feed.Payload, error)

func (f LoaderFunc) Load(ctx context.Context, network string, kind registry.FeedKind) (feed.Payload, error) {
	return f(ctx, network, kind)
}

// UnavailableError reports that a feed could not be served: the refresh
// failed and no prior payload exists to fall back on.
type UnavailableError struct {
	Network string
	Kind    registry.FeedKind
	Err     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("feed %s for network %q unavailable: %v", e.Kind, e.Network, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

type key struct {
	network string
	kind    registry.FeedKind
}

type entry struct {
	payload    feed.Payload
	capturedAt time.Time
}

type result struct {
	payload    feed.Payload
	capturedAt time.Time
}

// Cache is the only stateful component of the engine. Safe for concurrent
// use; entries for independent keys refresh in parallel.
type Cache struct {
	loader Loader
	window time.Duration

	mu      sync.RWMutex
	entries map[key]entry

	group singleflight.Group

	now func() time.Time
}

// New creates a cache around loader with the given freshness window.
// A non-positive window falls back to DefaultWindow.
func New(loader Loader, window time.Duration) *Cache {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Cache{
		loader:  loader,
		window:  window,
		entries: map[key]entry{},
		now:     time.Now,
	}
}

// Get returns the payload for (network, kind) together with its capture
// time. Fresh entries are returned without I/O; otherwise one refresh runs
// and waiters share its outcome. A failed refresh falls back to the stale
// payload when one exists, and returns an *UnavailableError only when the
// entry is still Empty.
func (c *Cache) Get(ctx context.Context, network string, kind registry.FeedKind) (feed.Payload, time.Time, error) {
	k := key{network: network, kind: kind}

	if e, ok := c.fresh(k); ok {
		return e.payload, e.capturedAt, nil
	}

	v, err, _ := c.group.Do(flightKey(k), func() (any, error) {
		// Another waiter may have refreshed the entry while this call was
		// queued behind the flight lock.
		if e, ok := c.fresh(k); ok {
			return result{payload: e.payload, capturedAt: e.capturedAt}, nil
		}
		return c.refresh(ctx, k)
	})
	if err != nil {
		return feed.Payload{}, time.Time{}, err
	}
	r := v.(result)
	return r.payload, r.capturedAt, nil
}

// LastUpdate returns the capture time of the entry, if any payload has ever
// been captured for the key.
func (c *Cache) LastUpdate(network string, kind registry.FeedKind) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key{network: network, kind: kind}]
	if !ok {
		return time.Time{}, false
	}
	return e.capturedAt, true
}

func (c *Cache) fresh(k key) (entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[k]
	if !ok {
		return entry{}, false
	}
	if c.now().Sub(e.capturedAt) >= c.window {
		return entry{}, false
	}
	return e, true
}

// refresh performs one load. Only a successful load writes the entry.
func (c *Cache) refresh(ctx context.Context, k key) (result, error) {
	start := c.now()
	payload, err := c.loader.Load(ctx, k.network, k.kind)
	if err != nil {
		c.mu.RLock()
		prior, ok := c.entries[k]
		c.mu.RUnlock()
		if ok {
			// Serve-stale-on-error: the last good payload wins over the
			// transient failure.
			return result{payload: prior.payload, capturedAt: prior.capturedAt}, nil
		}
		return result{}, &UnavailableError{Network: k.network, Kind: k.kind, Err: err}
	}

	e := entry{payload: payload, capturedAt: start}
	c.mu.Lock()
	c.entries[k] = e
	c.mu.Unlock()
	return result{payload: e.payload, capturedAt: e.capturedAt}, nil
}

func flightKey(k key) string {
	return k.network + "|" + string(k.kind)
}
