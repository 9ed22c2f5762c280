// Package impl contains the use-case implementations.
package impl

import (
	"context"
	"strings"
	"time"

	"waypoints/internal/domain/entity"
	domainerrors "waypoints/internal/domain/errors"
	"waypoints/internal/domain/repository"
	"waypoints/internal/errors"
	"waypoints/internal/usecase"

	"github.com/google/uuid"
)

type stopListService struct {
	plans repository.TripPlanRepository
}

// NewStopListService creates the stop list manager backed by the given
// plan repository.
func NewStopListService(plans repository.TripPlanRepository) usecase.StopListUsecase {
	return &stopListService{plans: plans}
}

func (s *stopListService) CreatePlan(ctx context.Context) (*entity.TripPlan, error) {
	now := time.Now()
	plan := &entity.TripPlan{
		ID:        uuid.New(),
		Stops:     []entity.Stop{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, errors.Wrap(err, "create trip plan")
	}

	return plan, nil
}

func (s *stopListService) GetPlan(ctx context.Context, planID uuid.UUID) (*entity.TripPlan, error) {
	plan, err := s.plans.Find(ctx, planID)
	if err != nil {
		return nil, mapPlanError(err)
	}

	return plan, nil
}

func (s *stopListService) DeletePlan(ctx context.Context, planID uuid.UUID) error {
	if err := s.plans.Delete(ctx, planID); err != nil {
		return errors.Wrap(err, "delete trip plan")
	}

	return nil
}

func (s *stopListService) AppendStop(ctx context.Context, planID uuid.UUID, input *usecase.AddStopInput) (*entity.TripPlan, error) {
	if !entity.ValidCoordinate(input.Longitude, input.Latitude) {
		return nil, domainerrors.ErrInvalidCoordinate
	}

	stop := entity.Stop{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(input.Title),
		Longitude: input.Longitude,
		Latitude:  input.Latitude,
	}

	plan, err := s.plans.Update(ctx, planID, func(plan *entity.TripPlan) error {
		plan.Stops = append(plan.Stops, stop)
		invalidateRoute(plan)

		return nil
	})
	if err != nil {
		return nil, mapPlanError(err)
	}

	return plan, nil
}

func (s *stopListService) RemoveStop(ctx context.Context, planID, stopID uuid.UUID) (*entity.TripPlan, error) {
	plan, err := s.plans.Update(ctx, planID, func(plan *entity.TripPlan) error {
		idx := plan.StopIndex(stopID)
		if idx < 0 {
			// Removing twice equals removing once.
			return nil
		}

		plan.Stops = append(plan.Stops[:idx], plan.Stops[idx+1:]...)
		invalidateRoute(plan)

		return nil
	})
	if err != nil {
		return nil, mapPlanError(err)
	}

	return plan, nil
}

func (s *stopListService) ClearStops(ctx context.Context, planID uuid.UUID) (*entity.TripPlan, error) {
	plan, err := s.plans.Update(ctx, planID, func(plan *entity.TripPlan) error {
		plan.Stops = []entity.Stop{}
		invalidateRoute(plan)

		return nil
	})
	if err != nil {
		return nil, mapPlanError(err)
	}

	return plan, nil
}

func (s *stopListService) SetOptions(ctx context.Context, planID uuid.UUID, options entity.TripOptions) (*entity.TripPlan, error) {
	plan, err := s.plans.Update(ctx, planID, func(plan *entity.TripPlan) error {
		if plan.Options == options {
			return nil
		}

		// The implied coordinate list changes with the options, so the
		// current route no longer matches.
		plan.Options = options
		invalidateRoute(plan)

		return nil
	})
	if err != nil {
		return nil, mapPlanError(err)
	}

	return plan, nil
}

// invalidateRoute drops the derived route after any stop or option mutation.
func invalidateRoute(plan *entity.TripPlan) {
	plan.Route = nil
	plan.UpdatedAt = time.Now()
}

// mapPlanError translates repository errors onto the domain taxonomy.
func mapPlanError(err error) error {
	if errors.Is(err, repository.ErrPlanNotFound) {
		return domainerrors.ErrPlanNotFound
	}

	return err
}
