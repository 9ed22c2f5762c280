package handler

import (
	"log/slog"
	"net/http"

	"waypoints/internal/delivery/http/response"
	"waypoints/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PlanHandlerParams holds dependencies for PlanHandler, injected by Fx.
type PlanHandlerParams struct {
	fx.In

	StopListUC usecase.StopListUsecase
	SearchUC   usecase.SearchUsecase
	Logger     *slog.Logger
}

// PlanHandler holds dependencies for trip-plan and stop-list handlers
type PlanHandler struct {
	stopListUC usecase.StopListUsecase
	searchUC   usecase.SearchUsecase
	logger     *slog.Logger
}

// NewPlanHandler is the constructor for PlanHandler
func NewPlanHandler(params PlanHandlerParams) *PlanHandler {
	return &PlanHandler{
		stopListUC: params.StopListUC,
		searchUC:   params.SearchUC,
		logger:     params.Logger,
	}
}

// AddStopRequest represents the request body for appending a stop
type AddStopRequest struct {
	Title     string  `json:"title" validate:"required"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
}

// OptionsRequest represents the request body for replacing plan options
type OptionsRequest struct {
	IncludeCurrentLocation bool `json:"include_current_location"`
}

// CreatePlan handles creating a new trip plan
func (h *PlanHandler) CreatePlan(c echo.Context) error {
	plan, err := h.stopListUC.CreatePlan(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, planView(plan), "Trip plan created")
}

// GetPlan handles retrieving a trip plan with its stops and route
func (h *PlanHandler) GetPlan(c echo.Context) error {
	planID, err := h.planID(c)
	if err != nil {
		return err
	}

	plan, err := h.stopListUC.GetPlan(c.Request().Context(), planID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, planView(plan), "Trip plan retrieved")
}

// DeletePlan handles deleting a trip plan
func (h *PlanHandler) DeletePlan(c echo.Context) error {
	planID, err := h.planID(c)
	if err != nil {
		return err
	}

	if err := h.stopListUC.DeletePlan(c.Request().Context(), planID); err != nil {
		return err
	}

	// Drop any in-flight search owned by the plan.
	h.searchUC.CancelSearches(planID)

	return response.Success(c, http.StatusOK, map[string]string{"message": "Trip plan deleted"}, "Trip plan deleted")
}

// AddStop handles appending a stop to the plan
func (h *PlanHandler) AddStop(c echo.Context) error {
	planID, err := h.planID(c)
	if err != nil {
		return err
	}

	var req AddStopRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid stop input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "Invalid stop input")
	}

	plan, err := h.stopListUC.AppendStop(c.Request().Context(), planID, &usecase.AddStopInput{
		Title:     req.Title,
		Longitude: req.Longitude,
		Latitude:  req.Latitude,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, planView(plan), "Stop added")
}

// RemoveStop handles removing a stop; removing an absent stop succeeds
func (h *PlanHandler) RemoveStop(c echo.Context) error {
	planID, err := h.planID(c)
	if err != nil {
		return err
	}

	stopID, err := uuid.Parse(c.Param("stopID"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid stop ID")
	}

	plan, err := h.stopListUC.RemoveStop(c.Request().Context(), planID, stopID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, planView(plan), "Stop removed")
}

// ClearStops handles emptying the stop list
func (h *PlanHandler) ClearStops(c echo.Context) error {
	planID, err := h.planID(c)
	if err != nil {
		return err
	}

	plan, err := h.stopListUC.ClearStops(c.Request().Context(), planID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, planView(plan), "Stops cleared")
}

// SetOptions handles replacing the plan's optimization options
func (h *PlanHandler) SetOptions(c echo.Context) error {
	planID, err := h.planID(c)
	if err != nil {
		return err
	}

	var req OptionsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid options input")
	}

	plan, err := h.stopListUC.SetOptions(c.Request().Context(), planID, optionsFromRequest(req))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, planView(plan), "Options updated")
}

func (h *PlanHandler) planID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, response.BadRequest(c, "INVALID_ID", "Invalid plan ID")
	}

	return id, nil
}
