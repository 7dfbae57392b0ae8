package normalize

import (
	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"

	"github.com/neoniv-fr/breizh-transit/records"
)

// VehiclePositions flattens a vehicle positions feed. Entities without a
// vehicle block are skipped.
//
// The vehicle id is resolved in precedence order: top-level entity id, then
// the nested vehicle descriptor id, then its label.
func VehiclePositions(fm *gtfsrtpb.FeedMessage) []records.VehiclePosition {
	if fm == nil {
		return nil
	}
	out := make([]records.VehiclePosition, 0, len(fm.Entity))
	for _, e := range fm.Entity {
		vp := e.GetVehicle()
		if vp == nil {
			continue
		}

		rec := records.VehiclePosition{
			VehicleID:     vehicleID(e.GetId(), vp.GetVehicle()),
			CurrentStatus: vehicleStatus(vp),
		}

		if pos := vp.GetPosition(); pos != nil {
			rec.Latitude = float64(pos.GetLatitude())
			rec.Longitude = float64(pos.GetLongitude())
			if pos.Bearing != nil {
				b := float64(*pos.Bearing)
				rec.Bearing = &b
			}
			if pos.Speed != nil {
				s := float64(*pos.Speed)
				rec.Speed = &s
			}
		}

		if trip := vp.GetTrip(); trip != nil {
			rec.TripID = trip.GetTripId()
			rec.RouteID = trip.GetRouteId()
			rec.StartTime = trip.GetStartTime()
			rec.StartDate = trip.GetStartDate()
		}

		if vp.Timestamp != nil {
			ts := int64(*vp.Timestamp)
			rec.Timestamp = &ts
		}

		out = append(out, rec)
	}
	return out
}

func vehicleID(entityID string, desc *gtfsrtpb.VehicleDescriptor) string {
	if entityID != "" {
		return entityID
	}
	if desc == nil {
		return ""
	}
	if id := desc.GetId(); id != "" {
		return id
	}
	return desc.GetLabel()
}

func vehicleStatus(vp *gtfsrtpb.VehiclePosition) string {
	if vp.CurrentStatus == nil {
		return records.StatusUnknown
	}
	switch *vp.CurrentStatus {
	case gtfsrtpb.VehiclePosition_STOPPED_AT:
		return records.StatusStopped
	case gtfsrtpb.VehiclePosition_IN_TRANSIT_TO, gtfsrtpb.VehiclePosition_INCOMING_AT:
		return records.StatusInTransit
	default:
		return records.StatusUnknown
	}
}
