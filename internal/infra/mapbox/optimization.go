package mapbox

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	domainerrors "waypoints/internal/domain/errors"
	"waypoints/internal/domain/service"
	"waypoints/internal/errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// codeOK is the success token of the optimized-trips response.
const codeOK = "Ok"

type optimizationResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Trips   []struct {
		Distance float64           `json:"distance"`
		Duration float64           `json:"duration"`
		Geometry *geojson.Geometry `json:"geometry"`
	} `json:"trips"`
	Waypoints []struct {
		WaypointIndex *int `json:"waypoint_index"`
	} `json:"waypoints"`
}

// optimizationClient implements service.TripOptimizer using the Mapbox
// Optimization API (optimized-trips).
type optimizationClient struct {
	client *Client
}

// NewTripOptimizer wraps the shared client as a TripOptimizer.
func NewTripOptimizer(client *Client) service.TripOptimizer {
	return &optimizationClient{client: client}
}

func (o *optimizationClient) MaxCoordinates() int {
	return o.client.maxWaypoints
}

func (o *optimizationClient) Optimize(ctx context.Context, coords []orb.Point) (*service.OptimizedTrip, error) {
	if len(coords) < 2 {
		return nil, domainerrors.ErrInsufficientStops
	}

	// Refuse locally instead of issuing a request the service will reject.
	if len(coords) > o.client.maxWaypoints {
		return nil, domainerrors.ErrTooManyStops
	}

	// Point-to-point trip: keep the first coordinate as source and the last
	// as destination, never loop back to the start.
	q := url.Values{}
	q.Set("geometries", "geojson")
	q.Set("overview", "full")
	q.Set("source", "first")
	q.Set("destination", "last")
	q.Set("roundtrip", "false")

	path := "/optimized-trips/v1/mapbox/" + o.client.profile + "/" + coordinatePath(coords)

	body, err := o.client.get(ctx, path, q)
	if err != nil {
		return nil, err
	}

	var decoded optimizationResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, errors.Wrap(err, "decode optimization response")
	}

	if decoded.Code != codeOK {
		return nil, domainerrors.ErrOptimizationRejected.WithDetails(decoded.Message)
	}

	if len(decoded.Trips) == 0 {
		return nil, domainerrors.ErrEmptyRoute
	}

	trip := decoded.Trips[0]
	geometry := decodeLineString(trip.Geometry)
	if len(geometry) < 2 {
		return nil, domainerrors.ErrEmptyRoute
	}

	waypoints := make([]service.Waypoint, 0, len(decoded.Waypoints))
	for _, w := range decoded.Waypoints {
		waypoints = append(waypoints, service.Waypoint{WaypointIndex: w.WaypointIndex})
	}

	return &service.OptimizedTrip{
		Geometry:       geometry,
		DistanceMeters: trip.Distance,
		DurationSecs:   trip.Duration,
		Waypoints:      waypoints,
	}, nil
}

// coordinatePath renders coordinates as the lon,lat;lon,lat path segment.
func coordinatePath(coords []orb.Point) string {
	parts := make([]string, 0, len(coords))
	for _, c := range coords {
		parts = append(parts,
			strconv.FormatFloat(c.Lon(), 'f', 6, 64)+","+strconv.FormatFloat(c.Lat(), 'f', 6, 64))
	}

	return strings.Join(parts, ";")
}

func decodeLineString(g *geojson.Geometry) orb.LineString {
	if g == nil {
		return nil
	}

	line, ok := g.Geometry().(orb.LineString)
	if !ok {
		return nil
	}

	return line
}
