package forecast

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/skycast/pkg/errors"
)

func TestFetchPassesConfiguredHorizon(t *testing.T) {
	provider := &stubProvider{weather: Weather{Timezone: "Europe/London"}}
	svc := NewService(Config{Days: 3}, provider, newTestLogger())

	got, err := svc.Fetch(context.Background(), 51.5, -0.12)
	require.NoError(t, err)
	require.Equal(t, "Europe/London", got.Timezone)
	require.Equal(t, 3, provider.lastDays)
	require.Equal(t, 51.5, provider.lastLat)
	require.Equal(t, -0.12, provider.lastLon)
}

func TestFetchDefaultsHorizon(t *testing.T) {
	provider := &stubProvider{}
	svc := NewService(Config{}, provider, newTestLogger())

	_, err := svc.Fetch(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Equal(t, DefaultDays, provider.lastDays)
}

func TestFetchWrapsProviderFailure(t *testing.T) {
	cause := errors.New("forecast request error: status=500")
	svc := NewService(Config{}, &stubProvider{err: cause}, newTestLogger())

	_, err := svc.Fetch(context.Background(), 1, 2)
	require.True(t, apperrors.IsCode(err, apperrors.CodeServiceError))
	require.Equal(t, MsgWeatherError, apperrors.MessageOf(err))
	require.ErrorIs(t, err, cause)
}

type stubProvider struct {
	weather  Weather
	err      error
	lastLat  float64
	lastLon  float64
	lastDays int
}

func (s *stubProvider) Forecast(ctx context.Context, lat, lon float64, days int) (Weather, error) {
	s.lastLat, s.lastLon, s.lastDays = lat, lon, days
	if s.err != nil {
		return Weather{}, s.err
	}
	return s.weather, nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
