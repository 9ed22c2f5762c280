// Package repository defines the data-access boundaries of the domain.
package repository

import (
	"context"

	"waypoints/internal/domain/entity"
	"waypoints/internal/errors"

	"github.com/google/uuid"
)

// ErrPlanNotFound is returned when no plan exists for the given id.
var ErrPlanNotFound = errors.New("trip plan not found")

// TripPlanRepository stores session-scoped trip plans. Implementations must
// be safe for concurrent use; Update serializes mutations of a single plan.
type TripPlanRepository interface {
	// Create stores a new plan.
	Create(ctx context.Context, plan *entity.TripPlan) error

	// Find returns a copy of the plan with the given id.
	Find(ctx context.Context, id uuid.UUID) (*entity.TripPlan, error)

	// Update applies mutate to the stored plan under the repository lock and
	// returns a copy of the resulting state. mutate receives the live plan and
	// may return an error to abort without changes.
	Update(ctx context.Context, id uuid.UUID, mutate func(plan *entity.TripPlan) error) (*entity.TripPlan, error)

	// Delete removes the plan. Deleting an absent plan is a no-op.
	Delete(ctx context.Context, id uuid.UUID) error
}
