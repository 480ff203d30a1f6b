package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const forecastPayload = `{
  "latitude": 51.5,
  "longitude": -0.12,
  "timezone": "Europe/London",
  "utc_offset_seconds": 3600,
  "current": {
    "time": "2024-07-01T12:00",
    "temperature_2m": 17.6,
    "relative_humidity_2m": 72,
    "apparent_temperature": 16.4,
    "weather_code": 61,
    "pressure_msl": 1013.7,
    "wind_speed_10m": 12.6,
    "visibility": 10000
  },
  "daily": {
    "time": ["2024-07-01", "2024-07-02", "2024-07-03", "2024-07-04", "2024-07-05"],
    "weather_code": [61, 3, 2, 0, 95],
    "temperature_2m_max": [20.5, 19.1, 18.0, 25.4, 22.2],
    "temperature_2m_min": [11.6, 10.2, 9.0, 14.4, 13.3],
    "wind_speed_10m_max": [22.5, 15.1, 10.0, 8.8, 30.2]
  }
}`

func TestSearchSendsTopMatchQuery(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":2643743,"name":"London","latitude":51.5,"longitude":-0.12,"country":"United Kingdom"}]}`))
	}))
	defer srv.Close()

	client := NewClient(Options{GeocodingURL: srv.URL})
	results, err := client.Search(context.Background(), "London", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "London", results[0].Name)
	require.Equal(t, "United Kingdom", results[0].Country)
	require.Equal(t, 51.5, results[0].Latitude)
	require.Equal(t, -0.12, results[0].Longitude)

	require.Equal(t, "London", got.Get("name"))
	require.Equal(t, "1", got.Get("count"))
	require.Equal(t, "en", got.Get("language"))
	require.Equal(t, "json", got.Get("format"))
}

func TestSearchWithoutResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"generationtime_ms":0.5}`))
	}))
	defer srv.Close()

	results, err := NewClient(Options{GeocodingURL: srv.URL}).Search(context.Background(), "Nonexistent City", 1)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestSearchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(Options{GeocodingURL: srv.URL}).Search(context.Background(), "London", 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=503")
}

func TestForecastRequestAndDecode(t *testing.T) {
	var (
		got  url.Values
		path string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		path = r.URL.Path
		_, _ = w.Write([]byte(forecastPayload))
	}))
	defer srv.Close()

	client := NewClient(Options{ForecastBaseURL: srv.URL + "/v1/"})
	weather, err := client.Forecast(context.Background(), 51.5, -0.12, 5)
	require.NoError(t, err)

	require.Equal(t, "/v1/forecast", path)
	require.Equal(t, "51.5", got.Get("latitude"))
	require.Equal(t, "-0.12", got.Get("longitude"))
	require.Equal(t, "temperature_2m,relative_humidity_2m,apparent_temperature,weather_code,pressure_msl,wind_speed_10m,visibility", got.Get("current"))
	require.Equal(t, "weather_code,temperature_2m_max,temperature_2m_min,wind_speed_10m_max", got.Get("daily"))
	require.Equal(t, "auto", got.Get("timezone"))
	require.Equal(t, "5", got.Get("forecast_days"))

	require.Equal(t, 17.6, weather.Current.Temperature)
	require.Equal(t, 16.4, weather.Current.FeelsLike)
	require.Equal(t, 72, weather.Current.Humidity)
	require.Equal(t, 61, weather.Current.Code)
	require.NotNil(t, weather.Current.Visibility)
	require.Equal(t, 10000.0, *weather.Current.Visibility)
	require.Equal(t, "Europe/London", weather.Timezone)
	require.Equal(t, 3600, weather.UTCOffsetSeconds)

	require.Len(t, weather.Daily, 5)
	require.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), weather.Daily[0].Date)
	require.Equal(t, time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC), weather.Daily[4].Date)
	require.Equal(t, 95, weather.Daily[4].Code)
	require.Equal(t, 25.4, weather.Daily[3].TempMax)
	require.Equal(t, 13.3, weather.Daily[4].TempMin)
}

func TestForecastToleratesMissingVisibility(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"current":{"temperature_2m":5,"weather_code":3},"daily":{"time":["2024-01-01"],"weather_code":[3],"temperature_2m_max":[6],"temperature_2m_min":[1],"wind_speed_10m_max":[9]}}`))
	}))
	defer srv.Close()

	weather, err := NewClient(Options{ForecastBaseURL: srv.URL}).Forecast(context.Background(), 1, 2, 5)
	require.NoError(t, err)
	require.Nil(t, weather.Current.Visibility)
	require.Len(t, weather.Daily, 1)
}

func TestForecastTruncatesRaggedColumns(t *testing.T) {
	daily, err := normalizeDaily(dailyBlock{
		Time:           []string{"2024-01-01", "2024-01-02", "2024-01-03"},
		WeatherCode:    []int{1, 2},
		TemperatureMax: []float64{1, 2, 3},
		TemperatureMin: []float64{0, 0, 0},
		WindSpeedMax:   []float64{5, 5, 5},
	})
	require.NoError(t, err)
	require.Len(t, daily, 2)
}

func TestForecastRejectsBadDates(t *testing.T) {
	_, err := normalizeDaily(dailyBlock{
		Time:           []string{"01/02/2024"},
		WeatherCode:    []int{1},
		TemperatureMax: []float64{1},
		TemperatureMin: []float64{0},
		WindSpeedMax:   []float64{5},
	})
	require.Error(t, err)
}

func TestForecastNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":true,"reason":"Latitude must be in range of -90 to 90°."}`))
	}))
	defer srv.Close()

	_, err := NewClient(Options{ForecastBaseURL: srv.URL}).Forecast(context.Background(), 100, 0, 5)
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=400")
}

func TestForecastRequiresCurrentAndDailyBlocks(t *testing.T) {
	cases := map[string]string{
		"no blocks":     `{"timezone":"UTC"}`,
		"no current":    `{"daily":{"time":["2024-01-01"],"weather_code":[3],"temperature_2m_max":[6],"temperature_2m_min":[1],"wind_speed_10m_max":[9]}}`,
		"no daily":      `{"current":{"temperature_2m":5,"weather_code":3}}`,
		"no daily time": `{"current":{"temperature_2m":5,"weather_code":3},"daily":{"weather_code":[3]}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			_, err := NewClient(Options{ForecastBaseURL: srv.URL}).Forecast(context.Background(), 1, 2, 5)
			require.Error(t, err)
		})
	}
}
