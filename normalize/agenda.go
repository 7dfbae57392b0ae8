package normalize

import "github.com/neoniv-fr/breizh-transit/records"

// Events flattens an OpenAgenda payload. The feed wraps its list in an
// "events" object but a bare array is accepted too. Only key renames and
// field flattening happen here; text stays in the feed's French locale.
func Events(payload any) []records.Event {
	var list []any
	switch v := payload.(type) {
	case map[string]any:
		list, _ = v["events"].([]any)
	case []any:
		list = v
	}

	out := make([]records.Event, 0, len(list))
	for _, item := range list {
		ev := asMap(item)
		if ev == nil {
			continue
		}
		location := childMap(ev, "location")
		rec := records.Event{
			UID:         stringAt(ev, "uid"),
			Title:       stringAt(childMap(ev, "title"), "fr"),
			Description: stringAt(childMap(ev, "description"), "fr"),
			Location:    stringAt(location, "name"),
			Latitude:    floatPtrAt(location, "latitude"),
			Longitude:   floatPtrAt(location, "longitude"),
		}
		if timings, ok := ev["timings"].([]any); ok && len(timings) > 0 {
			first := asMap(timings[0])
			rec.StartTime = stringAt(first, "begin")
			rec.EndTime = stringAt(first, "end")
		}
		out = append(out, rec)
	}
	return out
}
