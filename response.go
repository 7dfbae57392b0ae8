package breizhtransit

import (
	"time"

	"github.com/neoniv-fr/breizh-transit/records"
	"github.com/neoniv-fr/breizh-transit/registry"
)

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the tagged envelope every feed query returns. A real upstream
// failure is always reported through Status and Reason, never as an empty
// success.
type Result struct {
	Status     string     `json:"status"`
	Data       any        `json:"data,omitempty"`
	Count      *int       `json:"count,omitempty"`
	Reason     string     `json:"reason,omitempty"`
	LastUpdate *time.Time `json:"lastUpdate"`
}

func successResult(data any, capturedAt time.Time) Result {
	return Result{Status: StatusSuccess, Data: data, LastUpdate: &capturedAt}
}

func countedResult(data any, n int, capturedAt time.Time) Result {
	r := successResult(data, capturedAt)
	r.Count = &n
	return r
}

func errorResult(err error) Result {
	return Result{Status: StatusError, Reason: err.Error()}
}

// NetworkInfo is one entry of the network listing.
type NetworkInfo struct {
	ID    string              `json:"id"`
	Name  string              `json:"name"`
	Kinds []registry.FeedKind `json:"kinds"`
}

// RouteStatus combines everything known about one route.
type RouteStatus struct {
	RouteID      string                    `json:"route_id"`
	Vehicles     []records.VehiclePosition `json:"vehicles"`
	Alerts       []records.ServiceAlert    `json:"alerts"`
	Delays       records.RouteDelays       `json:"delays"`
	VehicleCount int                       `json:"vehicle_count"`
	AlertCount   int                       `json:"alert_count"`
}

// StaticBlobInfo describes the cached GTFS static archive without exposing
// its bytes.
type StaticBlobInfo struct {
	Available bool `json:"available"`
	SizeBytes int  `json:"sizeBytes"`
}
