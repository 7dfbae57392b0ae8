package config

import (
	"time"

	"github.com/neoniv-fr/breizh-transit/registry"
)

// EngineConfig contains the cache and statistics tunables.
type EngineConfig struct {
	// RefreshIntervalSec is the freshness window applied to every cached
	// feed, in seconds.
	RefreshIntervalSec int `yaml:"refreshIntervalSec" validate:"gte=0"`
	// TimeoutSec bounds each outbound fetch, in seconds.
	TimeoutSec int `yaml:"timeoutSec" validate:"gte=0"`
	// OnTimeThresholdSec is the absolute arrival delay below which a stop
	// counts as on time, in seconds.
	OnTimeThresholdSec int `yaml:"onTimeThresholdSec" validate:"gte=0"`
}

// RefreshInterval returns the freshness window as a duration.
func (e EngineConfig) RefreshInterval() time.Duration {
	return time.Duration(e.RefreshIntervalSec) * time.Second
}

// Timeout returns the fetch timeout as a duration.
func (e EngineConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSec) * time.Second
}

// FeedURLs contains the per-kind source URLs of one network. Empty entries
// mean the network does not carry that feed.
type FeedURLs struct {
	VehiclePositions string `yaml:"vehiclePositions" validate:"omitempty,url"`
	TripUpdates      string `yaml:"tripUpdates" validate:"omitempty,url"`
	ServiceAlerts    string `yaml:"serviceAlerts" validate:"omitempty,url"`
	Events           string `yaml:"events" validate:"omitempty,url"`
	Weather          string `yaml:"weather" validate:"omitempty,url"`
	Static           string `yaml:"static" validate:"omitempty,url"`
}

// NetworkConfig describes one transit network.
type NetworkConfig struct {
	ID    string   `yaml:"id" validate:"required"`
	Name  string   `yaml:"name"`
	Feeds FeedURLs `yaml:"feeds"`
}

// Network converts the configuration entry into a registry network,
// dropping empty URLs.
func (n NetworkConfig) Network() registry.Network {
	urls := map[registry.FeedKind]string{}
	put := func(k registry.FeedKind, url string) {
		if url != "" {
			urls[k] = url
		}
	}
	put(registry.VehiclePositions, n.Feeds.VehiclePositions)
	put(registry.TripUpdates, n.Feeds.TripUpdates)
	put(registry.ServiceAlerts, n.Feeds.ServiceAlerts)
	put(registry.Events, n.Feeds.Events)
	put(registry.Weather, n.Feeds.Weather)
	put(registry.Static, n.Feeds.Static)
	name := n.Name
	if name == "" {
		name = n.ID
	}
	return registry.Network{ID: n.ID, Name: name, URLs: urls}
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Engine   EngineConfig    `yaml:"engine"`
	Networks []NetworkConfig `yaml:"networks"`
}

// Registry builds the source registry from the configured networks.
func (c AppConfig) Registry() *registry.Registry {
	nets := make([]registry.Network, 0, len(c.Networks))
	for _, n := range c.Networks {
		nets = append(nets, n.Network())
	}
	return registry.New(nets...)
}
