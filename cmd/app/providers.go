package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/skycast/internal/domain/forecast"
	"github.com/yanqian/skycast/internal/domain/presenter"
	"github.com/yanqian/skycast/internal/domain/widget"
	"github.com/yanqian/skycast/internal/infra/config"
	"github.com/yanqian/skycast/internal/infra/openmeteo"
	"github.com/yanqian/skycast/internal/infra/sessionstore"
)

func provideForecastConfig(cfg *config.Config) forecast.Config {
	return forecast.Config{Days: cfg.Weather.ForecastDays}
}

func providePresenterConfig(cfg *config.Config) presenter.Config {
	return presenter.Config{IconBaseURL: cfg.Weather.IconBaseURL}
}

func provideWidgetConfig(cfg *config.Config) widget.Config {
	return widget.Config{DefaultCity: cfg.Weather.DefaultCity}
}

func provideOpenMeteoClient(cfg *config.Config) *openmeteo.Client {
	return openmeteo.NewClient(openmeteo.Options{
		ForecastBaseURL: cfg.Weather.ForecastBaseURL,
		GeocodingURL:    cfg.Weather.GeocodingURL,
		Language:        cfg.Weather.Language,
		Timeout:         cfg.Weather.RequestTimeout,
	})
}

func provideSessionStore(cfg *config.Config, logger *slog.Logger) widget.Store {
	if cfg.Session.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return sessionstore.NewMemoryStore(cfg.Session.TTL)
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return sessionstore.NewMemoryStore(cfg.Session.TTL)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
		} else {
			logger.Info("session valkey store enabled", "addr", cfg.Session.Valkey.Addr)
			return sessionstore.NewValkeyStore(client, cfg.Session.Valkey.Prefix, cfg.Session.TTL)
		}
	}
	return sessionstore.NewMemoryStore(cfg.Session.TTL)
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Session.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Session.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Session.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
