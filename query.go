package breizhtransit

import (
	"context"
	"strings"
	"time"

	"github.com/neoniv-fr/breizh-transit/normalize"
	"github.com/neoniv-fr/breizh-transit/records"
	"github.com/neoniv-fr/breizh-transit/registry"
	"github.com/neoniv-fr/breizh-transit/stats"
)

// QueryError reports a query that cannot be answered regardless of feed
// state, such as a by-id lookup on a kind without per-record ids.
type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

// ListNetworks returns every configured network with its available feed
// kinds, sorted by id. Never touches the network.
func (e *Engine) ListNetworks() []NetworkInfo {
	nets := e.reg.Networks()
	out := make([]NetworkInfo, 0, len(nets))
	for _, n := range nets {
		out = append(out, NetworkInfo{ID: n.ID, Name: n.Name, Kinds: n.Kinds()})
	}
	return out
}

// GetRecords serves the normalized records of one feed as a tagged result.
// Upstream failures with no usable cached payload come back as an error
// result; stale-but-usable data comes back as a success with the old capture
// time.
func (e *Engine) GetRecords(ctx context.Context, network string, kind registry.FeedKind) Result {
	payload, capturedAt, err := e.payload(ctx, network, kind)
	if err != nil {
		return errorResult(err)
	}
	switch kind {
	case registry.VehiclePositions:
		recs := normalize.VehiclePositions(payload.Feed)
		return countedResult(recs, len(recs), capturedAt)
	case registry.TripUpdates:
		recs := normalize.TripUpdates(payload.Feed)
		return countedResult(recs, len(recs), capturedAt)
	case registry.ServiceAlerts:
		recs := normalize.ServiceAlerts(payload.Feed)
		return countedResult(recs, len(recs), capturedAt)
	case registry.Events:
		recs := normalize.Events(payload.JSON)
		return countedResult(recs, len(recs), capturedAt)
	case registry.Weather:
		points := normalize.Weather(payload.JSON)
		return countedResult(points, len(points), capturedAt)
	case registry.Static:
		return successResult(StaticBlobInfo{Available: !payload.Empty(), SizeBytes: len(payload.Blob)}, capturedAt)
	default:
		return errorResult(&registry.NotConfiguredError{Network: network, Kind: kind})
	}
}

// Vehicles returns the normalized vehicle positions of one network.
func (e *Engine) Vehicles(ctx context.Context, network string) ([]records.VehiclePosition, error) {
	payload, _, err := e.payload(ctx, network, registry.VehiclePositions)
	if err != nil {
		return nil, err
	}
	return normalize.VehiclePositions(payload.Feed), nil
}

// Trips returns the normalized trip updates of one network.
func (e *Engine) Trips(ctx context.Context, network string) ([]records.TripUpdate, error) {
	payload, _, err := e.payload(ctx, network, registry.TripUpdates)
	if err != nil {
		return nil, err
	}
	return normalize.TripUpdates(payload.Feed), nil
}

// Alerts returns the normalized service alerts of one network.
func (e *Engine) Alerts(ctx context.Context, network string) ([]records.ServiceAlert, error) {
	payload, _, err := e.payload(ctx, network, registry.ServiceAlerts)
	if err != nil {
		return nil, err
	}
	return normalize.ServiceAlerts(payload.Feed), nil
}

// Events returns the normalized agenda events of one network.
func (e *Engine) Events(ctx context.Context, network string) ([]records.Event, error) {
	payload, _, err := e.payload(ctx, network, registry.Events)
	if err != nil {
		return nil, err
	}
	return normalize.Events(payload.JSON), nil
}

// Weather returns the forecast points of one network keyed by timestamp.
func (e *Engine) Weather(ctx context.Context, network string) (map[string]records.ForecastPoint, error) {
	payload, _, err := e.payload(ctx, network, registry.Weather)
	if err != nil {
		return nil, err
	}
	return normalize.Weather(payload.JSON), nil
}

// GetVehicle looks one vehicle up by id. A missing id is a normal result,
// not an error.
func (e *Engine) GetVehicle(ctx context.Context, network, vehicleID string) (records.VehiclePosition, bool, error) {
	vehicles, err := e.Vehicles(ctx, network)
	if err != nil {
		return records.VehiclePosition{}, false, err
	}
	for _, v := range vehicles {
		if v.VehicleID == vehicleID {
			return v, true, nil
		}
	}
	return records.VehiclePosition{}, false, nil
}

// GetTrip looks one trip update up by trip id.
func (e *Engine) GetTrip(ctx context.Context, network, tripID string) (records.TripUpdate, bool, error) {
	trips, err := e.Trips(ctx, network)
	if err != nil {
		return records.TripUpdate{}, false, err
	}
	for _, t := range trips {
		if t.TripID == tripID {
			return t, true, nil
		}
	}
	return records.TripUpdate{}, false, nil
}

// GetAlert looks one service alert up by alert id.
func (e *Engine) GetAlert(ctx context.Context, network, alertID string) (records.ServiceAlert, bool, error) {
	alerts, err := e.Alerts(ctx, network)
	if err != nil {
		return records.ServiceAlert{}, false, err
	}
	for _, a := range alerts {
		if a.AlertID == alertID {
			return a, true, nil
		}
	}
	return records.ServiceAlert{}, false, nil
}

// GetByID looks one record up by id in the given feed. Only the three
// GTFS-RT kinds carry per-record ids.
func (e *Engine) GetByID(ctx context.Context, network string, kind registry.FeedKind, id string) (any, bool, error) {
	switch kind {
	case registry.VehiclePositions:
		return liftFound(e.GetVehicle(ctx, network, id))
	case registry.TripUpdates:
		return liftFound(e.GetTrip(ctx, network, id))
	case registry.ServiceAlerts:
		return liftFound(e.GetAlert(ctx, network, id))
	default:
		return nil, false, &QueryError{Msg: "feed " + string(kind) + " has no per-record ids"}
	}
}

func liftFound[T any](v T, ok bool, err error) (any, bool, error) {
	if err != nil || !ok {
		return nil, ok, err
	}
	return v, true, nil
}

// FindByRoute gathers the vehicles, alerts and delay statistics of one
// route. Vehicle positions and trip updates missing upstream do not hide the
// alerts, and vice versa; only a route with no serveable feed at all errors.
func (e *Engine) FindByRoute(ctx context.Context, network, routeID string) (RouteStatus, error) {
	status := RouteStatus{RouteID: routeID}

	vehicles, vErr := e.Vehicles(ctx, network)
	for _, v := range vehicles {
		if v.RouteID == routeID {
			status.Vehicles = append(status.Vehicles, v)
		}
	}

	alerts, aErr := e.Alerts(ctx, network)
	for _, a := range alerts {
		for _, r := range a.Routes {
			if r == routeID {
				status.Alerts = append(status.Alerts, a)
				break
			}
		}
	}

	if trips, err := e.Trips(ctx, network); err == nil {
		status.Delays = stats.Route(trips, routeID, e.cfg.OnTimeThresholdSec)
	}

	if vErr != nil && aErr != nil {
		return RouteStatus{}, vErr
	}
	status.VehicleCount = len(status.Vehicles)
	status.AlertCount = len(status.Alerts)
	return status, nil
}

// TripsByRoute returns the trip ids currently running on a route.
func (e *Engine) TripsByRoute(ctx context.Context, network, routeID string) ([]string, error) {
	trips, err := e.Trips(ctx, network)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, t := range trips {
		if t.RouteID == routeID {
			ids = append(ids, t.TripID)
		}
	}
	return ids, nil
}

// EventsByDate filters agenda events whose start time falls on the given
// day. date is YYYY-MM-DD and matches the start_time prefix.
func (e *Engine) EventsByDate(ctx context.Context, network, date string) ([]records.Event, error) {
	events, err := e.Events(ctx, network)
	if err != nil {
		return nil, err
	}
	var out []records.Event
	for _, ev := range events {
		if strings.HasPrefix(ev.StartTime, date) {
			out = append(out, ev)
		}
	}
	return out, nil
}

// WeatherAt returns the forecast point for one exact timestamp key. An
// unknown timestamp is a normal not-found result.
func (e *Engine) WeatherAt(ctx context.Context, network, timestamp string) (records.ForecastPoint, bool, error) {
	points, err := e.Weather(ctx, network)
	if err != nil {
		return records.ForecastPoint{}, false, err
	}
	p, ok := points[timestamp]
	return p, ok, nil
}

// Statistics computes one network's aggregate statistics. Results are
// memoized for one freshness window; a stale cache never makes the numbers
// older than the records they were derived from.
func (e *Engine) Statistics(ctx context.Context, network string) (records.NetworkStatistics, error) {
	if v, err := e.derived.Get(statsKey(network)); err == nil {
		return v.(records.NetworkStatistics), nil
	}

	vehicles, err := e.Vehicles(ctx, network)
	if err != nil {
		return records.NetworkStatistics{}, err
	}
	trips, err := e.Trips(ctx, network)
	if err != nil {
		return records.NetworkStatistics{}, err
	}
	alerts, err := e.Alerts(ctx, network)
	if err != nil {
		return records.NetworkStatistics{}, err
	}

	s := stats.Network(vehicles, trips, alerts, e.cfg.OnTimeThresholdSec)
	e.derived.Set(statsKey(network), s)
	return s, nil
}

// RouteDelays summarises arrival delays for one route.
func (e *Engine) RouteDelays(ctx context.Context, network, routeID string) (records.RouteDelays, error) {
	trips, err := e.Trips(ctx, network)
	if err != nil {
		return records.RouteDelays{}, err
	}
	return stats.Route(trips, routeID, e.cfg.OnTimeThresholdSec), nil
}

// StaticBlob reports whether the GTFS static archive is available and how
// large it is. The bytes themselves stay in the cache.
func (e *Engine) StaticBlob(ctx context.Context, network string) (StaticBlobInfo, error) {
	payload, _, err := e.payload(ctx, network, registry.Static)
	if err != nil {
		return StaticBlobInfo{}, err
	}
	return StaticBlobInfo{Available: !payload.Empty(), SizeBytes: len(payload.Blob)}, nil
}

// LastUpdate returns the capture time of the cached feed, if any.
func (e *Engine) LastUpdate(network string, kind registry.FeedKind) (time.Time, bool) {
	return e.cache.LastUpdate(network, kind)
}

// CountVehicles returns the number of active vehicles on a network.
func (e *Engine) CountVehicles(ctx context.Context, network string) (int, error) {
	vehicles, err := e.Vehicles(ctx, network)
	return len(vehicles), err
}

// CountAlerts returns the number of active service alerts on a network.
func (e *Engine) CountAlerts(ctx context.Context, network string) (int, error) {
	alerts, err := e.Alerts(ctx, network)
	return len(alerts), err
}

// CountEvents returns the number of published agenda events on a network.
func (e *Engine) CountEvents(ctx context.Context, network string) (int, error) {
	events, err := e.Events(ctx, network)
	return len(events), err
}

func statsKey(network string) string { return "stats|" + network }
