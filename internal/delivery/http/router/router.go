// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"waypoints/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	PlanHandler   *handler.PlanHandler
	TripHandler   *handler.TripHandler
	SearchHandler *handler.SearchHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	planHandler   *handler.PlanHandler
	tripHandler   *handler.TripHandler
	searchHandler *handler.SearchHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		planHandler:   params.PlanHandler,
		tripHandler:   params.TripHandler,
		searchHandler: params.SearchHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	planGroup := e.Group("/plans")
	{
		planGroup.POST("", r.planHandler.CreatePlan)
		planGroup.GET("/:id", r.planHandler.GetPlan)
		planGroup.DELETE("/:id", r.planHandler.DeletePlan)

		planGroup.POST("/:id/stops", r.planHandler.AddStop)
		planGroup.DELETE("/:id/stops/:stopID", r.planHandler.RemoveStop)
		planGroup.DELETE("/:id/stops", r.planHandler.ClearStops)
		planGroup.PUT("/:id/options", r.planHandler.SetOptions)

		planGroup.POST("/:id/optimize", r.tripHandler.Optimize)
		planGroup.GET("/:id/search", r.searchHandler.Search)
	}
}
