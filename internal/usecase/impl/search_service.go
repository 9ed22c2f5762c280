package impl

import (
	"context"
	"log/slog"
	"sync"
	"unicode"

	"waypoints/config"
	"waypoints/internal/domain/entity"
	"waypoints/internal/domain/service"
	"waypoints/internal/errors"
	"waypoints/internal/usecase"

	"github.com/google/uuid"
)

const defaultMinQueryLength = 3

// inFlightSearch tracks the newest query of a plan. Any older query holds a
// smaller generation and is discarded when it completes.
type inFlightSearch struct {
	generation uint64
	cancel     context.CancelFunc
}

type searchService struct {
	geocoder       service.Geocoder
	minQueryLength int
	logger         *slog.Logger

	mu       sync.Mutex
	inFlight map[uuid.UUID]*inFlightSearch
}

// NewSearchService creates the address search use case.
func NewSearchService(geocoder service.Geocoder, cfg *config.Config, logger *slog.Logger) usecase.SearchUsecase {
	minLen := defaultMinQueryLength
	if cfg != nil && cfg.Search != nil && cfg.Search.MinQueryLength > 0 {
		minLen = cfg.Search.MinQueryLength
	}

	return &searchService{
		geocoder:       geocoder,
		minQueryLength: minLen,
		logger:         logger,
		inFlight:       make(map[uuid.UUID]*inFlightSearch),
	}
}

func (s *searchService) Search(ctx context.Context, planID uuid.UUID, query string) ([]entity.Place, error) {
	if countNonSpace(query) < s.minQueryLength {
		return []entity.Place{}, nil
	}

	queryCtx, generation := s.begin(ctx, planID)

	places, err := s.geocoder.Forward(queryCtx, query)

	if s.superseded(planID, generation) {
		// A newer query took over while this one was in flight; its
		// outcome, success or error, must not surface.
		return nil, usecase.ErrSearchSuperseded
	}
	s.finish(planID, generation)

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, usecase.ErrSearchSuperseded
		}

		return nil, err
	}

	return places, nil
}

func (s *searchService) CancelSearches(planID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.inFlight[planID]; ok {
		current.cancel()
		delete(s.inFlight, planID)
	}
}

// begin registers a new query generation for the plan, cancelling the
// previous in-flight query if any.
func (s *searchService) begin(ctx context.Context, planID uuid.UUID) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	queryCtx, cancel := context.WithCancel(ctx)

	next := uint64(1)
	if current, ok := s.inFlight[planID]; ok {
		current.cancel()
		next = current.generation + 1
	}

	s.inFlight[planID] = &inFlightSearch{generation: next, cancel: cancel}

	return queryCtx, next
}

// superseded reports whether a newer generation replaced the given one.
func (s *searchService) superseded(planID uuid.UUID, generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.inFlight[planID]

	return ok && current.generation != generation
}

// finish releases the slot if it still belongs to the given generation.
func (s *searchService) finish(planID uuid.UUID, generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.inFlight[planID]; ok && current.generation == generation {
		current.cancel()
		delete(s.inFlight, planID)
	}
}

func countNonSpace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}

	return n
}
