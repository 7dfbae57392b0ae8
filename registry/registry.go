package registry

import (
	"fmt"
	"sort"
)

// FeedKind identifies one upstream feed type and determines how its payload
// is decoded.
type FeedKind string

const (
	VehiclePositions FeedKind = "vehicle_positions"
	TripUpdates      FeedKind = "trip_updates"
	ServiceAlerts    FeedKind = "service_alerts"
	Events           FeedKind = "events"
	Weather          FeedKind = "weather"
	Static           FeedKind = "static"
)

// AllKinds lists every known feed kind in stable order.
var AllKinds = []FeedKind{VehiclePositions, TripUpdates, ServiceAlerts, Events, Weather, Static}

// IsProtobuf reports whether the kind carries a GTFS-RT protobuf payload.
func (k FeedKind) IsProtobuf() bool {
	return k == VehiclePositions || k == TripUpdates || k == ServiceAlerts
}

// IsJSON reports whether the kind carries a raw JSON payload.
func (k FeedKind) IsJSON() bool {
	return k == Events || k == Weather
}

func (k FeedKind) String() string { return string(k) }

// Valid reports whether k is one of the known feed kinds.
func (k FeedKind) Valid() bool {
	for _, known := range AllKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Network describes one transit network and its configured feed sources.
type Network struct {
	ID   string
	Name string
	URLs map[FeedKind]string
}

// Kinds returns the feed kinds configured for the network, in stable order.
func (n Network) Kinds() []FeedKind {
	kinds := make([]FeedKind, 0, len(n.URLs))
	for _, k := range AllKinds {
		if _, ok := n.URLs[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// NotConfiguredError reports a lookup for a network or feed kind that has no
// source registered.
type NotConfiguredError struct {
	Network string
	Kind    FeedKind
}

func (e *NotConfiguredError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("network %q is not configured", e.Network)
	}
	return fmt.Sprintf("feed %s is not configured for network %q", e.Kind, e.Network)
}

// Registry is an immutable lookup table from (network, kind) to feed URL.
type Registry struct {
	networks map[string]Network
}

// New builds a registry from the given networks. Later entries with the same
// ID replace earlier ones.
func New(networks ...Network) *Registry {
	m := make(map[string]Network, len(networks))
	for _, n := range networks {
		m[n.ID] = n
	}
	return &Registry{networks: m}
}

// Locator returns the source URL for the given network and feed kind.
func (r *Registry) Locator(network string, kind FeedKind) (string, error) {
	n, ok := r.networks[network]
	if !ok {
		return "", &NotConfiguredError{Network: network}
	}
	url, ok := n.URLs[kind]
	if !ok || url == "" {
		return "", &NotConfiguredError{Network: network, Kind: kind}
	}
	return url, nil
}

// Network returns the network with the given ID.
func (r *Registry) Network(id string) (Network, error) {
	n, ok := r.networks[id]
	if !ok {
		return Network{}, &NotConfiguredError{Network: id}
	}
	return n, nil
}

// Networks returns all registered networks sorted by ID.
func (r *Registry) Networks() []Network {
	out := make([]Network, 0, len(r.networks))
	for _, n := range r.networks {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
