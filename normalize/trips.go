package normalize

import (
	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"

	"github.com/neoniv-fr/breizh-transit/records"
)

// TripUpdates flattens a trip updates feed, keeping the feed's stop order.
//
// Arrival and departure delays default to 0 when the feed omits them; the
// absolute arrival/departure times stay absent instead.
func TripUpdates(fm *gtfsrtpb.FeedMessage) []records.TripUpdate {
	if fm == nil {
		return nil
	}
	out := make([]records.TripUpdate, 0, len(fm.Entity))
	for _, e := range fm.Entity {
		tu := e.GetTripUpdate()
		if tu == nil {
			continue
		}

		rec := records.TripUpdate{
			StopTimeUpdates: make([]records.StopTimeUpdate, 0, len(tu.StopTimeUpdate)),
		}
		if trip := tu.GetTrip(); trip != nil {
			rec.TripID = trip.GetTripId()
			rec.RouteID = trip.GetRouteId()
			rec.StartTime = trip.GetStartTime()
			rec.StartDate = trip.GetStartDate()
		}
		if v := tu.GetVehicle(); v != nil && v.Id != nil {
			id := *v.Id
			rec.VehicleID = &id
		}

		for _, stu := range tu.StopTimeUpdate {
			rec.StopTimeUpdates = append(rec.StopTimeUpdates, stopTimeUpdate(stu))
		}
		out = append(out, rec)
	}
	return out
}

func stopTimeUpdate(stu *gtfsrtpb.TripUpdate_StopTimeUpdate) records.StopTimeUpdate {
	rec := records.StopTimeUpdate{
		StopID:               stu.GetStopId(),
		ScheduleRelationship: stu.GetScheduleRelationship().String(),
	}
	if arr := stu.GetArrival(); arr != nil {
		if arr.Delay != nil {
			rec.ArrivalDelay = *arr.Delay
		}
		if arr.Time != nil {
			t := *arr.Time
			rec.ArrivalTime = &t
		}
	}
	if dep := stu.GetDeparture(); dep != nil {
		if dep.Delay != nil {
			rec.DepartureDelay = *dep.Delay
		}
		if dep.Time != nil {
			t := *dep.Time
			rec.DepartureTime = &t
		}
	}
	return rec
}
