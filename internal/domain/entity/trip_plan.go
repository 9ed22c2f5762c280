package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Route is the geometry/distance/duration bundle produced by a successful
// optimization call. It is derived state: any mutation of the owning plan's
// stop list or options invalidates it.
type Route struct {
	Geometry       orb.LineString // Trip polyline in (lon, lat) order.
	DistanceMeters float64
	DurationSecs   float64
	ComputedAt     time.Time
}

// Bound returns the bounding rectangle of the route polyline,
// used by map clients for fit-to-bounds camera moves.
func (r Route) Bound() orb.Bound {
	return r.Geometry.Bound()
}

// TripOptions are the user-adjustable optimization options of a plan.
type TripOptions struct {
	// IncludeCurrentLocation prepends the device coordinate as the trip
	// origin. Toggling it invalidates the current route.
	IncludeCurrentLocation bool
}

// TripPlan is the aggregate owning an ordered stop list and its derived route.
// Plans are session-scoped; they live in memory and die with the process.
type TripPlan struct {
	ID        uuid.UUID
	Stops     []Stop
	Options   TripOptions
	Route     *Route // nil until an optimization succeeds
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StopIndex returns the position of the stop with the given id, or -1.
func (p *TripPlan) StopIndex(id uuid.UUID) int {
	for i, s := range p.Stops {
		if s.ID == id {
			return i
		}
	}

	return -1
}
