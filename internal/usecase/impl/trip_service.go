package impl

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"waypoints/internal/domain/entity"
	domainerrors "waypoints/internal/domain/errors"
	"waypoints/internal/domain/repository"
	"waypoints/internal/domain/service"
	"waypoints/internal/usecase"
	"waypoints/internal/util"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

type tripService struct {
	plans     repository.TripPlanRepository
	optimizer service.TripOptimizer
	logger    *slog.Logger

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

// NewTripService creates the optimization engine.
func NewTripService(plans repository.TripPlanRepository, optimizer service.TripOptimizer, logger *slog.Logger) usecase.TripUsecase {
	return &tripService{
		plans:     plans,
		optimizer: optimizer,
		logger:    logger,
		inFlight:  make(map[uuid.UUID]struct{}),
	}
}

func (s *tripService) Optimize(ctx context.Context, planID uuid.UUID, input *usecase.OptimizeInput) (*usecase.OptimizeResult, error) {
	if input == nil {
		input = &usecase.OptimizeInput{}
	}

	if !s.acquire(planID) {
		return nil, domainerrors.ErrOptimizeInFlight
	}
	defer s.release(planID)

	plan, err := s.plans.Find(ctx, planID)
	if err != nil {
		return nil, mapPlanError(err)
	}

	// Snapshot: concurrent edits apply to the live list and are reconciled
	// against it after the call; this request works from the state at
	// dispatch time only.
	snapshot := plan.Stops

	if len(snapshot) < 2 {
		return nil, domainerrors.ErrInsufficientStops
	}

	var origin *orb.Point
	if plan.Options.IncludeCurrentLocation {
		if input.CurrentLocation == nil {
			return nil, domainerrors.ErrLocationUnavailable
		}
		if !entity.ValidCoordinate(input.CurrentLocation.Longitude, input.CurrentLocation.Latitude) {
			return nil, domainerrors.ErrInvalidCoordinate
		}
		origin = &orb.Point{input.CurrentLocation.Longitude, input.CurrentLocation.Latitude}
	}

	// The prepended origin consumes one coordinate slot.
	waypointOffset := 0
	if origin != nil {
		waypointOffset = 1
	}

	if len(snapshot)+waypointOffset > s.optimizer.MaxCoordinates() {
		return nil, domainerrors.ErrTooManyStops
	}

	coords := make([]orb.Point, 0, len(snapshot)+waypointOffset)
	if origin != nil {
		coords = append(coords, *origin)
	}
	for _, stop := range snapshot {
		coords = append(coords, stop.Point())
	}

	// Whatever the outcome, the previous route no longer matches the
	// attempt that replaced it.
	if _, err := s.plans.Update(ctx, planID, func(plan *entity.TripPlan) error {
		plan.Route = nil

		return nil
	}); err != nil {
		return nil, mapPlanError(err)
	}

	trip, err := s.optimizer.Optimize(ctx, coords)
	if err != nil {
		return nil, err
	}

	order, reordered := reconcileOrder(snapshot, trip.Waypoints, waypointOffset)
	if !reordered {
		s.logger.Warn("waypoint mapping unusable, keeping stop order",
			slog.String("plan_id", planID.String()),
			slog.Int("stops", len(snapshot)),
			slog.Int("waypoints", len(trip.Waypoints)),
			slog.Int("offset", waypointOffset),
		)
	}

	route := &entity.Route{
		Geometry:       trip.Geometry,
		DistanceMeters: trip.DistanceMeters,
		DurationSecs:   trip.DurationSecs,
		ComputedAt:     time.Now(),
	}

	updated, err := s.plans.Update(ctx, planID, func(plan *entity.TripPlan) error {
		if reordered {
			applyOrder(plan, order)
		}
		plan.Route = route
		plan.UpdatedAt = time.Now()

		return nil
	})
	if err != nil {
		return nil, mapPlanError(err)
	}

	return &usecase.OptimizeResult{
		Plan:         updated,
		Reordered:    reordered,
		DurationText: util.FormatTripDuration(&route.DurationSecs),
		DistanceText: util.FormatTripDistance(&route.DistanceMeters),
	}, nil
}

// reconcileOrder maps the returned waypoint indexes back onto the snapshot
// and produces the stop ids in optimized visiting order. It refuses the
// mapping (ok=false) when the response is too short to cover every snapshot
// stop or any index is missing; the caller then keeps the current order but
// still uses the route geometry.
func reconcileOrder(snapshot []entity.Stop, waypoints []service.Waypoint, waypointOffset int) (order []uuid.UUID, ok bool) {
	if len(waypoints) < len(snapshot)+waypointOffset {
		return nil, false
	}

	type placed struct {
		id    uuid.UUID
		index int
	}

	placements := make([]placed, 0, len(snapshot))
	for i, stop := range snapshot {
		idx := waypoints[i+waypointOffset].WaypointIndex
		if idx == nil {
			return nil, false
		}

		placements = append(placements, placed{id: stop.ID, index: *idx})
	}

	// Indexes are a permutation; the stable sort only matters if the
	// service ever returns duplicates, in which case original relative
	// order is preserved.
	sort.SliceStable(placements, func(i, j int) bool {
		return placements[i].index < placements[j].index
	})

	order = make([]uuid.UUID, 0, len(placements))
	for _, p := range placements {
		order = append(order, p.id)
	}

	return order, true
}

// applyOrder rewrites the live stop list to follow the optimized order.
// Stops appended while the request was in flight are kept after the ordered
// ones; stops removed in the meantime simply drop out of the order.
func applyOrder(plan *entity.TripPlan, order []uuid.UUID) {
	byID := make(map[uuid.UUID]entity.Stop, len(plan.Stops))
	for _, stop := range plan.Stops {
		byID[stop.ID] = stop
	}

	next := make([]entity.Stop, 0, len(plan.Stops))
	seen := make(map[uuid.UUID]struct{}, len(order))
	for _, id := range order {
		if stop, okStop := byID[id]; okStop {
			next = append(next, stop)
			seen[id] = struct{}{}
		}
	}

	for _, stop := range plan.Stops {
		if _, done := seen[stop.ID]; !done {
			next = append(next, stop)
		}
	}

	plan.Stops = next
}

func (s *tripService) acquire(planID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[planID]; busy {
		return false
	}
	s.inFlight[planID] = struct{}{}

	return true
}

func (s *tripService) release(planID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inFlight, planID)
}
