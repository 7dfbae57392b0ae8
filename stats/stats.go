package stats

import "github.com/neoniv-fr/breizh-transit/records"

// DefaultOnTimeThreshold is the absolute arrival delay, in seconds, below
// which a stop prediction counts as on time.
const DefaultOnTimeThreshold = 180

// Network computes one network's aggregate statistics from its normalized
// vehicles, trips and alerts. threshold is the on-time bound in seconds; a
// non-positive value falls back to DefaultOnTimeThreshold.
func Network(vehicles []records.VehiclePosition, trips []records.TripUpdate, alerts []records.ServiceAlert, threshold int) records.NetworkStatistics {
	if threshold <= 0 {
		threshold = DefaultOnTimeThreshold
	}
	return records.NetworkStatistics{
		TotalVehicles:     len(vehicles),
		VehiclesByStatus:  countByStatus(vehicles),
		AverageDelay:      averageDelay(trips),
		RoutesWithAlerts:  routesWithAlerts(alerts),
		OnTimePerformance: onTimePerformance(trips, threshold),
	}
}

// Route summarises stop-level arrival delays for one route. Only trips whose
// route_id matches contribute. threshold marks a stop as delayed when its
// arrival delay strictly exceeds it.
func Route(trips []records.TripUpdate, routeID string, threshold int) records.RouteDelays {
	if threshold <= 0 {
		threshold = DefaultOnTimeThreshold
	}
	var delays []int32
	for _, trip := range trips {
		if trip.RouteID != routeID {
			continue
		}
		for _, stu := range trip.StopTimeUpdates {
			delays = append(delays, stu.ArrivalDelay)
		}
	}
	if len(delays) == 0 {
		return records.RouteDelays{}
	}

	out := records.RouteDelays{MaxDelay: delays[0], MinDelay: delays[0]}
	var sum int64
	for _, d := range delays {
		sum += int64(d)
		if d > out.MaxDelay {
			out.MaxDelay = d
		}
		if d < out.MinDelay {
			out.MinDelay = d
		}
		if int(d) > threshold {
			out.DelayedStops++
		}
	}
	out.AverageDelay = float64(sum) / float64(len(delays))
	return out
}

func countByStatus(vehicles []records.VehiclePosition) map[string]int {
	counts := map[string]int{
		records.StatusInTransit: 0,
		records.StatusStopped:   0,
		records.StatusUnknown:   0,
	}
	for _, v := range vehicles {
		status := v.CurrentStatus
		if status == "" {
			status = records.StatusUnknown
		}
		counts[status]++
	}
	return counts
}

// averageDelay averages arrival delays over every stop prediction of every
// trip, flattened. No predictions means 0.
func averageDelay(trips []records.TripUpdate) float64 {
	var sum int64
	var n int
	for _, trip := range trips {
		for _, stu := range trip.StopTimeUpdates {
			sum += int64(stu.ArrivalDelay)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// onTimePerformance is the share of stop predictions whose absolute arrival
// delay is strictly under threshold, as a percentage. With no predictions the
// network is vacuously on time.
func onTimePerformance(trips []records.TripUpdate, threshold int) float64 {
	var total, onTime int
	for _, trip := range trips {
		for _, stu := range trip.StopTimeUpdates {
			total++
			delay := int(stu.ArrivalDelay)
			if delay < 0 {
				delay = -delay
			}
			if delay < threshold {
				onTime++
			}
		}
	}
	if total == 0 {
		return 100
	}
	return float64(onTime) / float64(total) * 100
}

// routesWithAlerts counts distinct route ids referenced by active alerts.
func routesWithAlerts(alerts []records.ServiceAlert) int {
	seen := make(map[string]struct{})
	for _, a := range alerts {
		for _, r := range a.Routes {
			seen[r] = struct{}{}
		}
	}
	return len(seen)
}
