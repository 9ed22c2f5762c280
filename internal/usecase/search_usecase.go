package usecase

import (
	"context"

	"waypoints/internal/domain/entity"
	"waypoints/internal/errors"

	"github.com/google/uuid"
)

// ErrSearchSuperseded is returned for a query that was overtaken by a newer
// one before completing; its result must be discarded by the caller.
var ErrSearchSuperseded = errors.New("search query superseded by a newer one")

// SearchUsecase performs address search with last-query-wins semantics per
// plan: issuing a new query cancels the previous in-flight one, and a stale
// completion never reaches the caller as a regular result.
type SearchUsecase interface {
	// Search returns ranked place candidates for the query. Queries shorter
	// than the configured minimum return an empty slice without a network
	// call.
	Search(ctx context.Context, planID uuid.UUID, query string) ([]entity.Place, error)

	// CancelSearches cancels any in-flight query for the plan and drops its
	// search state. Used when a plan is deleted.
	CancelSearches(planID uuid.UUID)
}
