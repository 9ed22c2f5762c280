package main

import (
	"context"
	"log/slog"
	"os"

	"waypoints/config"
	"waypoints/internal/delivery"
	"waypoints/internal/delivery/http"
	httpmiddleware "waypoints/internal/delivery/http/middleware"
	"waypoints/internal/delivery/http/router/handler"
	deliverymiddleware "waypoints/internal/delivery/middleware"
	logs "waypoints/internal/infra/log"
	"waypoints/internal/infra/mapbox"
	"waypoints/internal/infra/memory"
	"waypoints/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		newMapboxClient,
	)
}

// newMapboxClient creates the shared Mapbox API client from configuration
func newMapboxClient(cfg *config.Config) *mapbox.Client {
	return mapbox.NewClient(cfg.Mapbox)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			memory.NewTripPlanRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			mapbox.NewGeocoder,
			mapbox.NewTripOptimizer,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewStopListService,
			impl.NewTripService,
			impl.NewSearchService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			deliverymiddleware.NewRequestIDMiddleware,
			httpmiddleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPlanHandler,
			handler.NewTripHandler,
			handler.NewSearchHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
