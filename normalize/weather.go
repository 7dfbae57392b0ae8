package normalize

import (
	"strings"

	"github.com/neoniv-fr/breizh-transit/records"
)

// Weather flattens an Infoclimat GFS payload into forecast points keyed by
// timestamp. The feed mixes forecast entries with metadata keys at the top
// level; only keys that look like timestamps (starting with "20") are
// forecast entries.
func Weather(payload any) map[string]records.ForecastPoint {
	obj := asMap(payload)
	out := make(map[string]records.ForecastPoint, len(obj))
	for ts, v := range obj {
		if !strings.HasPrefix(ts, "20") {
			continue
		}
		entry := asMap(v)
		if entry == nil {
			continue
		}
		out[ts] = records.ForecastPoint{
			Temperature2M: nestedFloatPtr(entry, "temperature", "2m"),
			WindSpeed:     nestedFloatPtr(entry, "vent_moyen", "10m"),
			WindGusts:     nestedFloatPtr(entry, "vent_rafales", "10m"),
			WindDirection: nestedFloatPtr(entry, "vent_direction", "10m"),
			Precipitation: floatPtrAt(entry, "pluie"),
			Humidity:      nestedFloatPtr(entry, "humidite", "2m"),
			Pressure:      nestedFloatPtr(entry, "pression", "niveau_de_la_mer"),
		}
	}
	return out
}
