// Package breizhtransit is a pull-based realtime view over the Breton transit
// networks. It fetches GTFS-RT, OpenAgenda and Infoclimat feeds on demand,
// caches them with a freshness window, and answers queries from normalized
// in-memory records. Nothing is persisted and nothing is pushed.
package breizhtransit

import (
	"context"
	"log"
	"time"

	"github.com/bluele/gcache"

	"github.com/neoniv-fr/breizh-transit/cache"
	"github.com/neoniv-fr/breizh-transit/config"
	"github.com/neoniv-fr/breizh-transit/feed"
	"github.com/neoniv-fr/breizh-transit/registry"
)

// derivedCacheSize bounds the memo of computed statistics. One entry per
// (network, derived kind) pair; far more room than the handful of networks.
const derivedCacheSize = 64

// Engine owns the cache and answers every query. Construct one per process
// and share it; all methods are safe for concurrent use.
type Engine struct {
	cfg     config.EngineConfig
	reg     *registry.Registry
	cache   *cache.Cache
	derived gcache.Cache
}

// New wires an engine from the given configuration.
func New(cfg config.AppConfig) *Engine {
	reg := cfg.Registry()
	fetcher := feed.NewFetcher(cfg.Engine.Timeout())

	loader := cache.LoaderFunc(func(ctx context.Context, network string, kind registry.FeedKind) (feed.Payload, error) {
		url, err := reg.Locator(network, kind)
		if err != nil {
			return feed.Payload{}, err
		}
		log.Printf("Fetching %s for %s from %s", kind, network, url)
		raw, err := fetcher.Fetch(ctx, url)
		if err != nil {
			log.Printf("Error fetching %s for %s: %v", kind, network, err)
			return feed.Payload{}, err
		}
		payload, err := feed.Decode(kind, raw)
		if err != nil {
			log.Printf("Error decoding %s for %s: %v", kind, network, err)
			return feed.Payload{}, err
		}
		log.Printf("Successfully fetched %s for %s with %d entities", kind, network, payload.EntityCount())
		return payload, nil
	})

	window := cfg.Engine.RefreshInterval()
	if window <= 0 {
		window = cache.DefaultWindow
	}
	return &Engine{
		cfg:   cfg.Engine,
		reg:   reg,
		cache: cache.New(loader, window),
		derived: gcache.New(derivedCacheSize).
			LRU().
			Expiration(window).
			Build(),
	}
}

// payload serves one feed through the cache. Configuration errors surface
// immediately; they are never retried or masked by stale data.
func (e *Engine) payload(ctx context.Context, network string, kind registry.FeedKind) (feed.Payload, time.Time, error) {
	if _, err := e.reg.Locator(network, kind); err != nil {
		return feed.Payload{}, time.Time{}, err
	}
	return e.cache.Get(ctx, network, kind)
}
