//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/skycast/internal/bootstrap"
	"github.com/yanqian/skycast/internal/domain/forecast"
	"github.com/yanqian/skycast/internal/domain/location"
	"github.com/yanqian/skycast/internal/domain/presenter"
	"github.com/yanqian/skycast/internal/domain/widget"
	"github.com/yanqian/skycast/internal/infra/config"
	"github.com/yanqian/skycast/internal/infra/openmeteo"
	httpiface "github.com/yanqian/skycast/internal/interface/http"
	"github.com/yanqian/skycast/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideForecastConfig,
		providePresenterConfig,
		provideWidgetConfig,
		provideOpenMeteoClient,
		provideSessionStore,
		location.NewService,
		forecast.NewService,
		presenter.NewFormatter,
		widget.NewHub,
		widget.NewService,
		wire.Bind(new(location.Geocoder), new(*openmeteo.Client)),
		wire.Bind(new(forecast.Provider), new(*openmeteo.Client)),
		wire.Bind(new(widget.Formatter), new(*presenter.Formatter)),
		wire.Bind(new(widget.Notifier), new(*widget.Hub)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
