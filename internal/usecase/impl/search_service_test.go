package impl

import (
	"context"
	"sync"
	"testing"

	"waypoints/config"
	"waypoints/internal/domain/entity"
	"waypoints/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGeocoder struct {
	mu      sync.Mutex
	calls   int
	queries []string

	places []entity.Place
	err    error

	// When set, the first call blocks until its context is cancelled.
	firstBlocks bool
	started     chan struct{}
}

func (f *fakeGeocoder) Forward(ctx context.Context, query string) ([]entity.Place, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.queries = append(f.queries, query)
	f.mu.Unlock()

	if f.firstBlocks && call == 1 {
		if f.started != nil {
			close(f.started)
		}
		<-ctx.Done()

		return nil, ctx.Err()
	}

	if f.err != nil {
		return nil, f.err
	}

	return f.places, nil
}

func (f *fakeGeocoder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls
}

func searchConfig(minLen int) *config.Config {
	cfg := &config.Config{}
	cfg.Search = &config.SearchConfig{MinQueryLength: minLen}

	return cfg
}

func TestSearchService_ShortQuerySkipsCall(t *testing.T) {
	geocoder := &fakeGeocoder{}
	svc := NewSearchService(geocoder, searchConfig(3), testLogger())

	places, err := svc.Search(context.Background(), uuid.New(), "ab")
	require.NoError(t, err)
	assert.Empty(t, places)
	assert.Equal(t, 0, geocoder.callCount())
}

func TestSearchService_WhitespaceDoesNotCount(t *testing.T) {
	geocoder := &fakeGeocoder{}
	svc := NewSearchService(geocoder, searchConfig(3), testLogger())

	places, err := svc.Search(context.Background(), uuid.New(), "  a b  ")
	require.NoError(t, err)
	assert.Empty(t, places)
	assert.Equal(t, 0, geocoder.callCount())
}

func TestSearchService_ReturnsPlaces(t *testing.T) {
	expected := []entity.Place{
		{ID: "poi.1", Title: "Main Station", Longitude: 121.51, Latitude: 25.04},
	}
	geocoder := &fakeGeocoder{places: expected}
	svc := NewSearchService(geocoder, searchConfig(3), testLogger())

	places, err := svc.Search(context.Background(), uuid.New(), "main station")
	require.NoError(t, err)
	assert.Equal(t, expected, places)
	assert.Equal(t, 1, geocoder.callCount())
}

func TestSearchService_NewerQuerySupersedesOlder(t *testing.T) {
	expected := []entity.Place{
		{ID: "poi.2", Title: "Market", Longitude: 121.52, Latitude: 25.05},
	}
	geocoder := &fakeGeocoder{
		places:      expected,
		firstBlocks: true,
		started:     make(chan struct{}),
	}
	svc := NewSearchService(geocoder, searchConfig(3), testLogger())
	planID := uuid.New()

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Search(context.Background(), planID, "mark")
		firstDone <- err
	}()

	<-geocoder.started

	places, err := svc.Search(context.Background(), planID, "market")
	require.NoError(t, err)
	assert.Equal(t, expected, places)

	assert.ErrorIs(t, <-firstDone, usecase.ErrSearchSuperseded)
	assert.Equal(t, 2, geocoder.callCount())
}

func TestSearchService_CancelSearchesDropsInFlightQuery(t *testing.T) {
	geocoder := &fakeGeocoder{
		firstBlocks: true,
		started:     make(chan struct{}),
	}
	svc := NewSearchService(geocoder, searchConfig(3), testLogger())
	planID := uuid.New()

	done := make(chan error, 1)
	go func() {
		_, err := svc.Search(context.Background(), planID, "market")
		done <- err
	}()

	<-geocoder.started
	svc.CancelSearches(planID)

	assert.ErrorIs(t, <-done, usecase.ErrSearchSuperseded)
}

func TestSearchService_GeocoderErrorSurfaces(t *testing.T) {
	geocoder := &fakeGeocoder{err: assert.AnError}
	svc := NewSearchService(geocoder, searchConfig(3), testLogger())

	_, err := svc.Search(context.Background(), uuid.New(), "market")
	assert.ErrorIs(t, err, assert.AnError)
}
