package registry

import (
	"errors"
	"testing"
)

func testRegistry() *Registry {
	return New(
		Network{
			ID:   "bibus",
			Name: "Bibus (Brest)",
			URLs: map[FeedKind]string{
				VehiclePositions: "http://example.com/vp",
				TripUpdates:      "http://example.com/tu",
				ServiceAlerts:    "http://example.com/sa",
				Events:           "http://example.com/events",
				Weather:          "http://example.com/weather",
				Static:           "http://example.com/static.zip",
			},
		},
		Network{
			ID:   "tub",
			Name: "TUB (Saint-Brieuc)",
			URLs: map[FeedKind]string{
				VehiclePositions: "http://example.com/tub-vp",
			},
		},
	)
}

func TestLocator(t *testing.T) {
	r := testRegistry()

	url, err := r.Locator("bibus", TripUpdates)
	if err != nil {
		t.Fatalf("Locator returned error: %v", err)
	}
	if url != "http://example.com/tu" {
		t.Errorf("Expected trip updates URL, got %s", url)
	}
}

func TestLocator_UnknownNetwork(t *testing.T) {
	r := testRegistry()

	_, err := r.Locator("nope", VehiclePositions)
	var nc *NotConfiguredError
	if !errors.As(err, &nc) {
		t.Fatalf("Expected NotConfiguredError, got %v", err)
	}
	if nc.Network != "nope" || nc.Kind != "" {
		t.Errorf("Unexpected error fields: %+v", nc)
	}
}

func TestLocator_UnconfiguredKind(t *testing.T) {
	r := testRegistry()

	// tub has no weather feed
	_, err := r.Locator("tub", Weather)
	var nc *NotConfiguredError
	if !errors.As(err, &nc) {
		t.Fatalf("Expected NotConfiguredError, got %v", err)
	}
	if nc.Kind != Weather {
		t.Errorf("Expected kind %s in error, got %s", Weather, nc.Kind)
	}
}

func TestNetworkKinds_StableOrder(t *testing.T) {
	r := testRegistry()

	n, err := r.Network("bibus")
	if err != nil {
		t.Fatalf("Network returned error: %v", err)
	}
	kinds := n.Kinds()
	if len(kinds) != 6 {
		t.Fatalf("Expected 6 kinds, got %d", len(kinds))
	}
	if kinds[0] != VehiclePositions || kinds[5] != Static {
		t.Errorf("Kinds not in stable order: %v", kinds)
	}
}

func TestNetworks_Sorted(t *testing.T) {
	r := testRegistry()

	nets := r.Networks()
	if len(nets) != 2 {
		t.Fatalf("Expected 2 networks, got %d", len(nets))
	}
	if nets[0].ID != "bibus" || nets[1].ID != "tub" {
		t.Errorf("Networks not sorted by ID: %v, %v", nets[0].ID, nets[1].ID)
	}
}

func TestFeedKind_Classification(t *testing.T) {
	cases := []struct {
		kind     FeedKind
		protobuf bool
		json     bool
	}{
		{VehiclePositions, true, false},
		{TripUpdates, true, false},
		{ServiceAlerts, true, false},
		{Events, false, true},
		{Weather, false, true},
		{Static, false, false},
	}
	for _, tc := range cases {
		if tc.kind.IsProtobuf() != tc.protobuf {
			t.Errorf("%s: IsProtobuf() = %v, want %v", tc.kind, tc.kind.IsProtobuf(), tc.protobuf)
		}
		if tc.kind.IsJSON() != tc.json {
			t.Errorf("%s: IsJSON() = %v, want %v", tc.kind, tc.kind.IsJSON(), tc.json)
		}
		if !tc.kind.Valid() {
			t.Errorf("%s should be valid", tc.kind)
		}
	}
	if FeedKind("bogus").Valid() {
		t.Error("bogus kind should not be valid")
	}
}
