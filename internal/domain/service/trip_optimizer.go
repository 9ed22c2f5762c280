package service

import (
	"context"

	"github.com/paulmach/orb"
)

// Waypoint is one entry of the optimizer's waypoint list. Entries come back
// in input order; WaypointIndex is the position the input coordinate occupies
// in the optimized trip. A nil index marks a malformed entry.
type Waypoint struct {
	WaypointIndex *int
}

// OptimizedTrip is the decoded result of a trip optimization call.
type OptimizedTrip struct {
	Geometry       orb.LineString
	DistanceMeters float64
	DurationSecs   float64
	Waypoints      []Waypoint
}

// TripOptimizer computes an optimized visiting order for a coordinate list.
type TripOptimizer interface {
	// Optimize submits the coordinates (in lon, lat order) and returns the
	// optimized trip. The first coordinate is the trip source and the last
	// the destination; no round trip.
	Optimize(ctx context.Context, coords []orb.Point) (*OptimizedTrip, error)

	// MaxCoordinates is the largest coordinate list Optimize accepts.
	MaxCoordinates() int
}
