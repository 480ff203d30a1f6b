package forecast

import (
	"context"
	"log/slog"

	"github.com/yanqian/skycast/internal/domain/conditions"
	apperrors "github.com/yanqian/skycast/pkg/errors"
)

// Fetcher retrieves current conditions and the daily forecast for coordinates.
type Fetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (Weather, error)
}

// Provider is the upstream weather data source.
type Provider interface {
	Forecast(ctx context.Context, lat, lon float64, days int) (Weather, error)
}

type service struct {
	cfg      Config
	provider Provider
	logger   *slog.Logger
}

// NewService wires the weather fetcher.
func NewService(cfg Config, provider Provider, logger *slog.Logger) Fetcher {
	if cfg.Days <= 0 {
		cfg.Days = DefaultDays
	}
	return &service{
		cfg:      cfg,
		provider: provider,
		logger:   logger.With("component", "forecast.service"),
	}
}

func (s *service) Fetch(ctx context.Context, lat, lon float64) (Weather, error) {
	weather, err := s.provider.Forecast(ctx, lat, lon, s.cfg.Days)
	if err != nil {
		s.logger.Warn("weather fetch failed", "lat", lat, "lon", lon, "error", err)
		return Weather{}, apperrors.Wrap(apperrors.CodeServiceError, MsgWeatherError, err)
	}
	if !conditions.Known(weather.Current.Code) {
		s.logger.Warn("unknown weather code", "code", weather.Current.Code)
	}
	s.logger.Debug("weather fetched", "lat", lat, "lon", lon, "days", len(weather.Daily), "timezone", weather.Timezone)
	return weather, nil
}
