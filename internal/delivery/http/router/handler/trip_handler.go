package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "waypoints/internal/delivery/context"
	"waypoints/internal/delivery/http/response"
	"waypoints/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TripHandlerParams holds dependencies for TripHandler, injected by Fx.
type TripHandlerParams struct {
	fx.In

	TripUC usecase.TripUsecase
	Logger *slog.Logger
}

// TripHandler holds dependencies for the optimization handler
type TripHandler struct {
	tripUC usecase.TripUsecase
	logger *slog.Logger
}

// NewTripHandler is the constructor for TripHandler
func NewTripHandler(params TripHandlerParams) *TripHandler {
	return &TripHandler{
		tripUC: params.TripUC,
		logger: params.Logger,
	}
}

// OptimizeRequest represents the request body for an optimization run
type OptimizeRequest struct {
	CurrentLocation *CoordinateRequest `json:"current_location"`
}

// CoordinateRequest represents a lon/lat pair in a request body
type CoordinateRequest struct {
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
}

// OptimizeResponse represents the outcome of an optimization run
type OptimizeResponse struct {
	Plan         *PlanView `json:"plan"`
	Reordered    bool      `json:"reordered"`
	DurationText string    `json:"duration_text"`
	DistanceText string    `json:"distance_text"`
}

// Optimize handles running trip optimization for a plan
func (h *TripHandler) Optimize(c echo.Context) error {
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid plan ID")
	}

	// The body is optional; an empty one means no device location.
	var req OptimizeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid optimize input")
	}

	input := &usecase.OptimizeInput{}
	if req.CurrentLocation != nil {
		if err := c.Validate(req.CurrentLocation); err != nil {
			return response.BadRequest(c, "VALIDATION_ERROR", "Invalid current location")
		}

		input.CurrentLocation = &usecase.Coordinate{
			Longitude: req.CurrentLocation.Longitude,
			Latitude:  req.CurrentLocation.Latitude,
		}
	}

	result, err := h.tripUC.Optimize(c.Request().Context(), planID, input)
	if err != nil {
		return err
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)
	logger.Info("Trip optimized",
		slog.String("plan_id", planID.String()),
		slog.Bool("reordered", result.Reordered),
		slog.String("duration", result.DurationText),
	)

	return response.Success(c, http.StatusOK, OptimizeResponse{
		Plan:         planView(result.Plan),
		Reordered:    result.Reordered,
		DurationText: result.DurationText,
		DistanceText: result.DistanceText,
	}, "Trip optimized")
}
