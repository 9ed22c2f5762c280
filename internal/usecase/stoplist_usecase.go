// Package usecase defines the application use-case interfaces and their
// input/output types. Implementations live in usecase/impl.
package usecase

import (
	"context"

	"waypoints/internal/domain/entity"

	"github.com/google/uuid"
)

// AddStopInput carries a new stop, usually built from a selected search
// candidate.
type AddStopInput struct {
	Title     string
	Longitude float64
	Latitude  float64
}

// StopListUsecase owns the canonical ordered stop list of a trip plan.
// Every mutation invalidates the plan's derived route so the client can
// never display a route that no longer matches the stop set.
type StopListUsecase interface {
	CreatePlan(ctx context.Context) (*entity.TripPlan, error)
	GetPlan(ctx context.Context, planID uuid.UUID) (*entity.TripPlan, error)
	DeletePlan(ctx context.Context, planID uuid.UUID) error

	// AppendStop adds a stop to the end of the list.
	AppendStop(ctx context.Context, planID uuid.UUID, input *AddStopInput) (*entity.TripPlan, error)

	// RemoveStop removes the stop if present; removing an absent stop is a
	// no-op, not an error.
	RemoveStop(ctx context.Context, planID, stopID uuid.UUID) (*entity.TripPlan, error)

	// ClearStops empties the stop list.
	ClearStops(ctx context.Context, planID uuid.UUID) (*entity.TripPlan, error)

	// SetOptions replaces the plan options. The route is invalidated only
	// when the effective option values change.
	SetOptions(ctx context.Context, planID uuid.UUID, options entity.TripOptions) (*entity.TripPlan, error)
}
