// Package entity contains the core business objects of the project.
package entity

import (
	"math"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Stop is a user-chosen waypoint on a trip plan.
type Stop struct {
	ID        uuid.UUID // Unique within the plan that owns the stop.
	Title     string    // Display title, usually the resolved address.
	Longitude float64
	Latitude  float64
}

// Point returns the stop coordinate as an orb point (lon, lat order).
func (s Stop) Point() orb.Point {
	return orb.Point{s.Longitude, s.Latitude}
}

// ValidCoordinate reports whether lon/lat form a real coordinate pair.
func ValidCoordinate(lon, lat float64) bool {
	if math.IsNaN(lon) || math.IsNaN(lat) || math.IsInf(lon, 0) || math.IsInf(lat, 0) {
		return false
	}

	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}
