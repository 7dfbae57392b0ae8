package feed

import (
	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"

	"github.com/neoniv-fr/breizh-transit/registry"
)

// Payload is the decoded form of one feed snapshot. The Kind tag selects
// which of the three variants is populated; the others stay nil.
type Payload struct {
	Kind registry.FeedKind

	// Feed holds the parsed GTFS-RT message for protobuf kinds.
	Feed *gtfsrtpb.FeedMessage
	// JSON holds the generic decoded value for JSON kinds (object or array).
	JSON any
	// Blob holds the raw bytes for the static kind.
	Blob []byte
}

// Empty reports whether the payload carries no data for its kind.
func (p Payload) Empty() bool {
	switch {
	case p.Kind.IsProtobuf():
		return p.Feed == nil
	case p.Kind.IsJSON():
		return p.JSON == nil
	default:
		return p.Blob == nil
	}
}

// EntityCount returns the number of entities in a GTFS-RT payload, 0 for the
// other kinds. Used for logging parity with the upstream feeds.
func (p Payload) EntityCount() int {
	if p.Feed == nil {
		return 0
	}
	return len(p.Feed.Entity)
}
