package feed

import (
	"encoding/json"
	"fmt"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/neoniv-fr/breizh-transit/registry"
)

// Decode turns raw feed bytes into a Payload according to the feed kind.
//
// Protobuf kinds parse as a GTFS-RT FeedMessage; a malformed message is a
// *DecodeError, never a partial entity list. JSON kinds must be a valid JSON
// object or array and are passed through without schema validation. The
// static kind is kept as-is.
func Decode(kind registry.FeedKind, raw []byte) (Payload, error) {
	switch {
	case kind.IsProtobuf():
		var fm gtfsrtpb.FeedMessage
		if err := proto.Unmarshal(raw, &fm); err != nil {
			return Payload{}, &DecodeError{Kind: kind, Size: len(raw), Err: err}
		}
		return Payload{Kind: kind, Feed: &fm}, nil

	case kind.IsJSON():
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return Payload{}, &DecodeError{Kind: kind, Size: len(raw), Err: err}
		}
		switch v.(type) {
		case map[string]any, []any:
			return Payload{Kind: kind, JSON: v}, nil
		default:
			return Payload{}, &DecodeError{Kind: kind, Size: len(raw), Err: fmt.Errorf("expected JSON object or array")}
		}

	case kind == registry.Static:
		return Payload{Kind: kind, Blob: raw}, nil

	default:
		return Payload{}, &DecodeError{Kind: kind, Size: len(raw), Err: fmt.Errorf("unknown feed kind")}
	}
}
