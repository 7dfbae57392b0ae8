package records

// Vehicle status values. Anything the feed does not map onto the first two
// is reported as UNKNOWN.
const (
	StatusInTransit = "IN_TRANSIT"
	StatusStopped   = "STOPPED"
	StatusUnknown   = "UNKNOWN"
)

// VehiclePosition is one vehicle's realtime state.
type VehiclePosition struct {
	VehicleID     string   `json:"vehicle_id"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Bearing       *float64 `json:"bearing,omitempty"`
	Speed         *float64 `json:"speed,omitempty"`
	TripID        string   `json:"trip_id,omitempty"`
	RouteID       string   `json:"route_id,omitempty"`
	StartTime     string   `json:"start_time,omitempty"`
	StartDate     string   `json:"start_date,omitempty"`
	CurrentStatus string   `json:"current_status"`
	Timestamp     *int64   `json:"timestamp,omitempty"`
}

// StopTimeUpdate is one stop-level prediction within a trip update.
type StopTimeUpdate struct {
	StopID               string `json:"stop_id"`
	ArrivalDelay         int32  `json:"arrival_delay"`
	DepartureDelay       int32  `json:"departure_delay"`
	ArrivalTime          *int64 `json:"arrival_time,omitempty"`
	DepartureTime        *int64 `json:"departure_time,omitempty"`
	ScheduleRelationship string `json:"schedule_relationship"`
}

// TripUpdate is the realtime state of one trip, with its ordered stop
// predictions.
type TripUpdate struct {
	TripID          string           `json:"trip_id"`
	RouteID         string           `json:"route_id"`
	StartTime       string           `json:"start_time,omitempty"`
	StartDate       string           `json:"start_date,omitempty"`
	VehicleID       *string          `json:"vehicle_id,omitempty"`
	StopTimeUpdates []StopTimeUpdate `json:"stop_time_updates"`
}

// ActivePeriod is a time span during which an alert applies. At least one
// bound is always present; fully empty periods are dropped upstream.
type ActivePeriod struct {
	Start *int64 `json:"start,omitempty"`
	End   *int64 `json:"end,omitempty"`
}

// ServiceAlert is one service disruption notice.
type ServiceAlert struct {
	AlertID       string         `json:"alert_id"`
	Cause         string         `json:"cause"`
	Effect        string         `json:"effect"`
	ActivePeriods []ActivePeriod `json:"active_periods,omitempty"`
	Routes        []string       `json:"routes,omitempty"`
	Stops         []string       `json:"stops,omitempty"`
	Header        *string        `json:"header,omitempty"`
	Description   *string        `json:"description,omitempty"`
}

// Event is one entry from the OpenAgenda feed (French-locale text).
type Event struct {
	UID         string   `json:"uid"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	StartTime   string   `json:"start_time,omitempty"`
	EndTime     string   `json:"end_time,omitempty"`
}

// ForecastPoint is one timestamped weather forecast entry. Every field is
// individually optional depending on what the upstream model published.
type ForecastPoint struct {
	Temperature2M *float64 `json:"temperature_2m,omitempty"`
	WindSpeed     *float64 `json:"wind_speed,omitempty"`
	WindGusts     *float64 `json:"wind_gusts,omitempty"`
	WindDirection *float64 `json:"wind_direction,omitempty"`
	Precipitation *float64 `json:"precipitation,omitempty"`
	Humidity      *float64 `json:"humidity,omitempty"`
	Pressure      *float64 `json:"pressure,omitempty"`
}

// NetworkStatistics aggregates one network's realtime state. Derived on
// demand, never stored.
type NetworkStatistics struct {
	TotalVehicles     int            `json:"totalVehicles"`
	VehiclesByStatus  map[string]int `json:"vehiclesByStatus"`
	AverageDelay      float64        `json:"averageDelay"`
	RoutesWithAlerts  int            `json:"routesWithAlerts"`
	OnTimePerformance float64        `json:"onTimePerformance"`
}

// RouteDelays summarises stop-level arrival delays for one route.
type RouteDelays struct {
	AverageDelay float64 `json:"averageDelay"`
	MaxDelay     int32   `json:"maxDelay"`
	MinDelay     int32   `json:"minDelay"`
	DelayedStops int     `json:"delayedStops"`
}
