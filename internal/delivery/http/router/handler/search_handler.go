package handler

import (
	"log/slog"
	"net/http"

	"waypoints/internal/delivery/http/response"
	"waypoints/internal/errors"
	"waypoints/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SearchHandlerParams holds dependencies for SearchHandler, injected by Fx.
type SearchHandlerParams struct {
	fx.In

	SearchUC usecase.SearchUsecase
	Logger   *slog.Logger
}

// SearchHandler holds dependencies for the address search handler
type SearchHandler struct {
	searchUC usecase.SearchUsecase
	logger   *slog.Logger
}

// NewSearchHandler is the constructor for SearchHandler
func NewSearchHandler(params SearchHandlerParams) *SearchHandler {
	return &SearchHandler{
		searchUC: params.SearchUC,
		logger:   params.Logger,
	}
}

// SearchResponse represents the result of an address search
type SearchResponse struct {
	Query  string      `json:"query"`
	Places []PlaceView `json:"places"`
}

// Search handles forward-geocoding address search for a plan
func (h *SearchHandler) Search(c echo.Context) error {
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid plan ID")
	}

	query := c.QueryParam("q")

	places, err := h.searchUC.Search(c.Request().Context(), planID, query)
	if err != nil {
		// A superseded query has no result worth returning; the newer
		// query's response is the one the client acts on.
		if errors.Is(err, usecase.ErrSearchSuperseded) {
			return response.Success(c, http.StatusOK, SearchResponse{
				Query:  query,
				Places: []PlaceView{},
			}, "Search superseded")
		}

		return err
	}

	return response.Success(c, http.StatusOK, SearchResponse{
		Query:  query,
		Places: placeViews(places),
	}, "Search completed")
}
