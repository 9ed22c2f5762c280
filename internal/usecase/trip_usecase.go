package usecase

import (
	"context"

	"waypoints/internal/domain/entity"

	"github.com/google/uuid"
)

// Coordinate is a plain lon/lat pair crossing the use-case boundary.
type Coordinate struct {
	Longitude float64
	Latitude  float64
}

// OptimizeInput carries per-attempt data for an optimization run.
type OptimizeInput struct {
	// CurrentLocation is the device coordinate, required when the plan's
	// IncludeCurrentLocation option is set and ignored otherwise.
	CurrentLocation *Coordinate
}

// OptimizeResult is the outcome of a successful optimization attempt.
type OptimizeResult struct {
	Plan *entity.TripPlan

	// Reordered is false when the waypoint mapping could not be trusted and
	// the stop order was left unchanged (the route itself is still valid).
	Reordered bool

	// Display-ready summary strings derived from the route.
	DurationText string
	DistanceText string
}

// TripUsecase runs trip optimization end to end: precondition checks,
// request dispatch, and reconciliation of the result into the stop list.
type TripUsecase interface {
	// Optimize is re-entrancy guarded per plan: a second call while one is
	// in flight is rejected instead of queued.
	Optimize(ctx context.Context, planID uuid.UUID, input *OptimizeInput) (*OptimizeResult, error)
}
