package stats

import (
	"testing"

	"github.com/neoniv-fr/breizh-transit/records"
)

func trip(routeID string, arrivalDelays ...int32) records.TripUpdate {
	t := records.TripUpdate{TripID: "T-" + routeID, RouteID: routeID}
	for i, d := range arrivalDelays {
		t.StopTimeUpdates = append(t.StopTimeUpdates, records.StopTimeUpdate{
			StopID:       "S" + string(rune('1'+i)),
			ArrivalDelay: d,
		})
	}
	return t
}

func TestNetwork_EmptyInputs(t *testing.T) {
	s := Network(nil, nil, nil, 180)
	if s.TotalVehicles != 0 {
		t.Errorf("Expected 0 vehicles, got %d", s.TotalVehicles)
	}
	if s.AverageDelay != 0 {
		t.Errorf("No predictions should average 0, got %v", s.AverageDelay)
	}
	if s.OnTimePerformance != 100 {
		t.Errorf("No predictions should be vacuously on time, got %v", s.OnTimePerformance)
	}
	for _, status := range []string{records.StatusInTransit, records.StatusStopped, records.StatusUnknown} {
		if n, ok := s.VehiclesByStatus[status]; !ok || n != 0 {
			t.Errorf("Status %s should be present with count 0, got %d (present=%v)", status, n, ok)
		}
	}
}

func TestNetwork_DelaysAndPerformance(t *testing.T) {
	trips := []records.TripUpdate{trip("R7", 60, 300)}

	s := Network(nil, trips, nil, 180)
	if s.AverageDelay != 180 {
		t.Errorf("Delays [60, 300] should average 180, got %v", s.AverageDelay)
	}
	if s.OnTimePerformance != 50 {
		t.Errorf("One of two stops under the threshold should give 50, got %v", s.OnTimePerformance)
	}
}

func TestNetwork_OnTimeThresholdIsStrict(t *testing.T) {
	// A delay exactly at the threshold is not on time, and the bound is
	// symmetric around zero.
	trips := []records.TripUpdate{trip("R1", 180, -180, 179, -179)}

	s := Network(nil, trips, nil, 180)
	if s.OnTimePerformance != 50 {
		t.Errorf("Expected 50, got %v", s.OnTimePerformance)
	}
}

func TestNetwork_VehiclesByStatus(t *testing.T) {
	vehicles := []records.VehiclePosition{
		{VehicleID: "1", CurrentStatus: records.StatusInTransit},
		{VehicleID: "2", CurrentStatus: records.StatusInTransit},
		{VehicleID: "3", CurrentStatus: records.StatusStopped},
		{VehicleID: "4"},
	}

	s := Network(vehicles, nil, nil, 180)
	if s.TotalVehicles != 4 {
		t.Errorf("Expected 4 vehicles, got %d", s.TotalVehicles)
	}
	want := map[string]int{
		records.StatusInTransit: 2,
		records.StatusStopped:   1,
		records.StatusUnknown:   1,
	}
	for status, n := range want {
		if s.VehiclesByStatus[status] != n {
			t.Errorf("Status %s: expected %d, got %d", status, n, s.VehiclesByStatus[status])
		}
	}
}

func TestNetwork_RoutesWithAlerts(t *testing.T) {
	alerts := []records.ServiceAlert{
		{AlertID: "a1", Routes: []string{"R1", "R2"}},
		{AlertID: "a2", Routes: []string{"R2"}},
		{AlertID: "a3"},
	}

	s := Network(nil, nil, alerts, 180)
	if s.RoutesWithAlerts != 2 {
		t.Errorf("Expected 2 distinct routes with alerts, got %d", s.RoutesWithAlerts)
	}
}

func TestNetwork_ThresholdFallback(t *testing.T) {
	trips := []records.TripUpdate{trip("R1", 179, 181)}

	s := Network(nil, trips, nil, 0)
	if s.OnTimePerformance != 50 {
		t.Errorf("Zero threshold should fall back to the default, got %v", s.OnTimePerformance)
	}
}

func TestRoute(t *testing.T) {
	trips := []records.TripUpdate{
		trip("R7", 60, 300),
		trip("R7", -30),
		trip("R9", 900),
	}

	d := Route(trips, "R7", 180)
	if d.AverageDelay != 110 {
		t.Errorf("Expected average 110, got %v", d.AverageDelay)
	}
	if d.MaxDelay != 300 || d.MinDelay != -30 {
		t.Errorf("Expected max 300 min -30, got %d/%d", d.MaxDelay, d.MinDelay)
	}
	if d.DelayedStops != 1 {
		t.Errorf("Only the 300s stop exceeds the threshold, got %d", d.DelayedStops)
	}
}

func TestRoute_NoMatchingTrips(t *testing.T) {
	trips := []records.TripUpdate{trip("R9", 900)}

	d := Route(trips, "R7", 180)
	if d.AverageDelay != 0 || d.MaxDelay != 0 || d.MinDelay != 0 || d.DelayedStops != 0 {
		t.Errorf("Unknown route should yield all zeros, got %+v", d)
	}
}

func TestRoute_DelayedStopsBoundIsStrict(t *testing.T) {
	trips := []records.TripUpdate{trip("R1", 180, 181)}

	d := Route(trips, "R1", 180)
	if d.DelayedStops != 1 {
		t.Errorf("A delay exactly at the threshold is not delayed, got %d", d.DelayedStops)
	}
}
