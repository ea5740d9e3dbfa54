package domain

// Represents a single stop in a collection route.
// A RouteStop corresponds to traveling to one report's location and
// servicing it, with cumulative time measured from the route start.
type RouteStop struct {
	Report             *Report
	DistanceFromPrevKm float64
	ServiceMinutes     int
	CumulativeMinutes  int
}

// Represents the planned visiting order for one collector's open reports.
// A Route is the output of the routing heuristic and describes the stop
// sequence along with aggregate distance and duration metrics.
// It is ephemeral planning data, recomputed on every request, and is
// never persisted.
type Route struct {
	CollectorID     string
	Start           Coordinates
	Stops           []RouteStop
	TotalDistanceKm float64
	TotalMinutes    int
}
