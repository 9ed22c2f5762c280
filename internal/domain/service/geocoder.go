// Package service defines external collaborator contracts consumed by the
// use cases. Implementations live under internal/infra.
package service

import (
	"context"

	"waypoints/internal/domain/entity"
)

// Geocoder resolves free-text queries into ranked place candidates.
type Geocoder interface {
	// Forward performs an autocomplete forward-geocoding lookup.
	Forward(ctx context.Context, query string) ([]entity.Place, error)
}
