package mapbox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"waypoints/config"
	domainerrors "waypoints/internal/domain/errors"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const optimizationOKBody = `{
	"code": "Ok",
	"trips": [
		{
			"distance": 5000.5,
			"duration": 600.2,
			"geometry": {"type": "LineString", "coordinates": [[121.5, 25.0], [121.55, 25.05], [121.6, 25.1]]}
		}
	],
	"waypoints": [
		{"waypoint_index": 0},
		{"waypoint_index": 2},
		{"waypoint_index": 1}
	]
}`

func optimizationServer(t *testing.T, body string, status int) (*httptest.Server, *http.Request) {
	t.Helper()

	captured := &http.Request{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = *r

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server, captured
}

func TestTripOptimizer_Optimize_BuildsRequestAndDecodes(t *testing.T) {
	server, captured := optimizationServer(t, optimizationOKBody, http.StatusOK)

	optimizer := NewTripOptimizer(testClient(server.URL))

	trip, err := optimizer.Optimize(context.Background(), []orb.Point{
		{121.5, 25.0},
		{121.55, 25.05},
		{121.6, 25.1},
	})
	require.NoError(t, err)

	assert.Equal(t,
		"/optimized-trips/v1/mapbox/driving/121.500000,25.000000;121.550000,25.050000;121.600000,25.100000",
		captured.URL.Path,
	)

	query := captured.URL.Query()
	assert.Equal(t, "geojson", query.Get("geometries"))
	assert.Equal(t, "full", query.Get("overview"))
	assert.Equal(t, "first", query.Get("source"))
	assert.Equal(t, "last", query.Get("destination"))
	assert.Equal(t, "false", query.Get("roundtrip"))
	assert.Equal(t, "test-token", query.Get("access_token"))

	assert.Equal(t, 5000.5, trip.DistanceMeters)
	assert.Equal(t, 600.2, trip.DurationSecs)
	assert.Len(t, trip.Geometry, 3)

	require.Len(t, trip.Waypoints, 3)
	require.NotNil(t, trip.Waypoints[1].WaypointIndex)
	assert.Equal(t, 2, *trip.Waypoints[1].WaypointIndex)
}

func TestTripOptimizer_Optimize_TooFewCoordinates(t *testing.T) {
	optimizer := NewTripOptimizer(testClient("http://unused"))

	_, err := optimizer.Optimize(context.Background(), []orb.Point{{121.5, 25.0}})
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStops)
}

func TestTripOptimizer_Optimize_TooManyCoordinatesRefusedLocally(t *testing.T) {
	hit := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))
	defer server.Close()

	optimizer := NewTripOptimizer(NewClient(&config.MapboxConfig{
		AccessToken:  "test-token",
		BaseURL:      server.URL,
		MaxWaypoints: 12,
	}))

	coords := make([]orb.Point, 13)
	for i := range coords {
		coords[i] = orb.Point{121.5 + float64(i)*0.01, 25.0}
	}

	_, err := optimizer.Optimize(context.Background(), coords)
	assert.ErrorIs(t, err, domainerrors.ErrTooManyStops)
	assert.False(t, hit)
}

func TestTripOptimizer_Optimize_RejectedCode(t *testing.T) {
	server, _ := optimizationServer(t, `{"code": "InvalidInput", "message": "Coordinate is invalid"}`, http.StatusOK)

	optimizer := NewTripOptimizer(testClient(server.URL))

	_, err := optimizer.Optimize(context.Background(), []orb.Point{{121.5, 25.0}, {121.6, 25.1}})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "OPTIMIZATION_REJECTED", appErr.ErrorCode())
	assert.Equal(t, "Coordinate is invalid", appErr.Details())
}

func TestTripOptimizer_Optimize_NoTrips(t *testing.T) {
	server, _ := optimizationServer(t, `{"code": "Ok", "trips": [], "waypoints": []}`, http.StatusOK)

	optimizer := NewTripOptimizer(testClient(server.URL))

	_, err := optimizer.Optimize(context.Background(), []orb.Point{{121.5, 25.0}, {121.6, 25.1}})
	assert.ErrorIs(t, err, domainerrors.ErrEmptyRoute)
}

func TestTripOptimizer_Optimize_DegenerateGeometry(t *testing.T) {
	body := `{
		"code": "Ok",
		"trips": [{"distance": 0, "duration": 0, "geometry": {"type": "LineString", "coordinates": [[121.5, 25.0]]}}],
		"waypoints": [{"waypoint_index": 0}, {"waypoint_index": 1}]
	}`
	server, _ := optimizationServer(t, body, http.StatusOK)

	optimizer := NewTripOptimizer(testClient(server.URL))

	_, err := optimizer.Optimize(context.Background(), []orb.Point{{121.5, 25.0}, {121.6, 25.1}})
	assert.ErrorIs(t, err, domainerrors.ErrEmptyRoute)
}

func TestTripOptimizer_MaxCoordinates(t *testing.T) {
	optimizer := NewTripOptimizer(NewClient(&config.MapboxConfig{MaxWaypoints: 9}))
	assert.Equal(t, 9, optimizer.MaxCoordinates())
}
