package handler

import (
	"time"

	"waypoints/internal/domain/entity"
	"waypoints/internal/util"

	"github.com/paulmach/orb/geojson"
)

// StopView is the wire form of a stop
type StopView struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// RouteView is the wire form of a computed route
type RouteView struct {
	Geometry       *geojson.Geometry `json:"geometry"`
	Bounds         [4]float64        `json:"bounds"` // [minLon, minLat, maxLon, maxLat]
	DistanceMeters float64           `json:"distance_meters"`
	DurationSecs   float64           `json:"duration_seconds"`
	DurationText   string            `json:"duration_text"`
	DistanceText   string            `json:"distance_text"`
	ComputedAt     time.Time         `json:"computed_at"`
}

// OptionsView is the wire form of plan options
type OptionsView struct {
	IncludeCurrentLocation bool `json:"include_current_location"`
}

// PlanView is the wire form of a trip plan
type PlanView struct {
	ID        string      `json:"id"`
	Stops     []StopView  `json:"stops"`
	Options   OptionsView `json:"options"`
	Route     *RouteView  `json:"route"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// PlaceView is the wire form of a search candidate
type PlaceView struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

func planView(plan *entity.TripPlan) *PlanView {
	stops := make([]StopView, 0, len(plan.Stops))
	for _, s := range plan.Stops {
		stops = append(stops, StopView{
			ID:        s.ID.String(),
			Title:     s.Title,
			Longitude: s.Longitude,
			Latitude:  s.Latitude,
		})
	}

	return &PlanView{
		ID:        plan.ID.String(),
		Stops:     stops,
		Options:   OptionsView{IncludeCurrentLocation: plan.Options.IncludeCurrentLocation},
		Route:     routeView(plan.Route),
		CreatedAt: plan.CreatedAt,
		UpdatedAt: plan.UpdatedAt,
	}
}

func routeView(route *entity.Route) *RouteView {
	if route == nil {
		return nil
	}

	bound := route.Bound()

	return &RouteView{
		Geometry:       geojson.NewGeometry(route.Geometry),
		Bounds:         [4]float64{bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1]},
		DistanceMeters: route.DistanceMeters,
		DurationSecs:   route.DurationSecs,
		DurationText:   util.FormatTripDuration(&route.DurationSecs),
		DistanceText:   util.FormatTripDistance(&route.DistanceMeters),
		ComputedAt:     route.ComputedAt,
	}
}

func placeViews(places []entity.Place) []PlaceView {
	views := make([]PlaceView, 0, len(places))
	for _, p := range places {
		views = append(views, PlaceView{
			ID:        p.ID,
			Title:     p.Title,
			Longitude: p.Longitude,
			Latitude:  p.Latitude,
		})
	}

	return views
}

func optionsFromRequest(req OptionsRequest) entity.TripOptions {
	return entity.TripOptions{
		IncludeCurrentLocation: req.IncludeCurrentLocation,
	}
}
