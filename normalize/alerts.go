package normalize

import (
	"strings"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"

	"github.com/neoniv-fr/breizh-transit/records"
)

// The GTFS-RT cause and effect enumerations as the upstream feeds emit
// them. Unmapped or absent values fall back to the UNKNOWN_* sentinels.
var causeNames = map[int32]string{
	1:  "UNKNOWN_CAUSE",
	2:  "OTHER_CAUSE",
	3:  "TECHNICAL_PROBLEM",
	4:  "STRIKE",
	5:  "DEMONSTRATION",
	6:  "ACCIDENT",
	7:  "HOLIDAY",
	8:  "WEATHER",
	9:  "MAINTENANCE",
	10: "CONSTRUCTION",
	11: "POLICE_ACTIVITY",
	12: "MEDICAL_EMERGENCY",
}

var effectNames = map[int32]string{
	1: "NO_SERVICE",
	2: "REDUCED_SERVICE",
	3: "SIGNIFICANT_DELAYS",
	4: "DETOUR",
	5: "ADDITIONAL_SERVICE",
	6: "MODIFIED_SERVICE",
	7: "OTHER_EFFECT",
	8: "UNKNOWN_EFFECT",
	9: "STOP_MOVED",
}

// ServiceAlerts flattens a service alerts feed.
//
// Active periods are kept only when at least one bound is present. Route
// and stop sets are deduplicated in first-seen order. Header and
// description prefer an English-tagged translation and otherwise take the
// feed's first; an empty translation list leaves the field absent.
func ServiceAlerts(fm *gtfsrtpb.FeedMessage) []records.ServiceAlert {
	if fm == nil {
		return nil
	}
	out := make([]records.ServiceAlert, 0, len(fm.Entity))
	for _, e := range fm.Entity {
		alert := e.GetAlert()
		if alert == nil {
			continue
		}

		rec := records.ServiceAlert{
			AlertID:     e.GetId(),
			Cause:       "UNKNOWN_CAUSE",
			Effect:      "UNKNOWN_EFFECT",
			Header:      pickTranslation(alert.GetHeaderText()),
			Description: pickTranslation(alert.GetDescriptionText()),
		}
		if alert.Cause != nil {
			if name, ok := causeNames[int32(*alert.Cause)]; ok {
				rec.Cause = name
			}
		}
		if alert.Effect != nil {
			if name, ok := effectNames[int32(*alert.Effect)]; ok {
				rec.Effect = name
			}
		}

		for _, p := range alert.ActivePeriod {
			if p.Start == nil && p.End == nil {
				continue
			}
			var period records.ActivePeriod
			if p.Start != nil {
				s := int64(*p.Start)
				period.Start = &s
			}
			if p.End != nil {
				end := int64(*p.End)
				period.End = &end
			}
			rec.ActivePeriods = append(rec.ActivePeriods, period)
		}

		seenRoutes := map[string]struct{}{}
		seenStops := map[string]struct{}{}
		for _, ie := range alert.InformedEntity {
			if ie.RouteId != nil {
				if _, ok := seenRoutes[*ie.RouteId]; !ok {
					seenRoutes[*ie.RouteId] = struct{}{}
					rec.Routes = append(rec.Routes, *ie.RouteId)
				}
			}
			if ie.StopId != nil {
				if _, ok := seenStops[*ie.StopId]; !ok {
					seenStops[*ie.StopId] = struct{}{}
					rec.Stops = append(rec.Stops, *ie.StopId)
				}
			}
		}

		out = append(out, rec)
	}
	return out
}

// pickTranslation selects the alert text to surface: an English-tagged
// translation when one exists, else the first in feed order.
func pickTranslation(ts *gtfsrtpb.TranslatedString) *string {
	if ts == nil || len(ts.Translation) == 0 {
		return nil
	}
	for _, tr := range ts.Translation {
		if tr.Language != nil && strings.HasPrefix(*tr.Language, "en") {
			text := tr.GetText()
			return &text
		}
	}
	text := ts.Translation[0].GetText()
	return &text
}
