// Package memory provides in-process storage for session-scoped state.
// Trip plans intentionally do not survive a restart.
package memory

import (
	"context"
	"sync"

	"waypoints/internal/domain/entity"
	"waypoints/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

type tripPlanRepository struct {
	mu    sync.RWMutex
	plans map[uuid.UUID]*entity.TripPlan
}

// NewTripPlanRepository creates an empty in-memory plan store.
func NewTripPlanRepository() repository.TripPlanRepository {
	return &tripPlanRepository{
		plans: make(map[uuid.UUID]*entity.TripPlan),
	}
}

func (r *tripPlanRepository) Create(ctx context.Context, plan *entity.TripPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.plans[plan.ID] = clonePlan(plan)

	return nil
}

func (r *tripPlanRepository) Find(ctx context.Context, id uuid.UUID) (*entity.TripPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plan, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrPlanNotFound
	}

	return clonePlan(plan), nil
}

func (r *tripPlanRepository) Update(ctx context.Context, id uuid.UUID, mutate func(plan *entity.TripPlan) error) (*entity.TripPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrPlanNotFound
	}

	if err := mutate(plan); err != nil {
		return nil, err
	}

	return clonePlan(plan), nil
}

func (r *tripPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.plans, id)

	return nil
}

// clonePlan deep-copies a plan so callers never share slices with the store.
func clonePlan(plan *entity.TripPlan) *entity.TripPlan {
	cloned := *plan
	cloned.Stops = append([]entity.Stop(nil), plan.Stops...)

	if plan.Route != nil {
		route := *plan.Route
		route.Geometry = append(orb.LineString(nil), plan.Route.Geometry...)
		cloned.Route = &route
	}

	return &cloned
}
