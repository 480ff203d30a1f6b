package presenter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/skycast/internal/domain/forecast"
	"github.com/yanqian/skycast/internal/domain/location"
)

func TestFormatCurrentPanel(t *testing.T) {
	f := NewFormatter(Config{})
	loc := &location.Location{Name: "London", Country: "United Kingdom", Latitude: 51.5, Longitude: -0.12}
	vis := 10000.0

	got := f.Format(loc, sampleWeather(&vis), time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC))

	require.Equal(t, "London, United Kingdom", got.DisplayName)
	require.Equal(t, "Monday, July 1, 2024 at 01:00 PM", got.Timestamp)
	require.Equal(t, "18°C", got.Temperature)
	require.Equal(t, "Feels like 17°C", got.FeelsLike)
	require.Equal(t, "Slight rain", got.Description)
	require.Equal(t, "10d", got.Icon)
	require.Equal(t, "https://openweathermap.org/img/wn/10d@4x.png", got.IconURL)
	require.Equal(t, "72%", got.Humidity)
	require.Equal(t, "12.6 km/h", got.WindSpeed)
	require.Equal(t, "1014 hPa", got.Pressure)
	require.Equal(t, "10.0 km", got.Visibility)
}

func TestFormatVisibilityAbsent(t *testing.T) {
	got := NewFormatter(Config{}).Format(nil, sampleWeather(nil), time.Now())
	require.Equal(t, "N/A", got.Visibility)
}

func TestFormatVisibilityZero(t *testing.T) {
	zero := 0.0
	got := NewFormatter(Config{}).Format(nil, sampleWeather(&zero), time.Now())
	require.Equal(t, "N/A", got.Visibility)

	short := 400.0
	got = NewFormatter(Config{}).Format(nil, sampleWeather(&short), time.Now())
	require.Equal(t, "0.4 km", got.Visibility)
}

func TestFormatDisplayNameVariants(t *testing.T) {
	f := NewFormatter(Config{})
	w := sampleWeather(nil)
	now := time.Now()

	require.Equal(t, "Current Location", f.Format(nil, w, now).DisplayName)
	require.Equal(t, "Your Location", f.Format(&location.Location{Name: location.CurrentLocationName}, w, now).DisplayName)
	require.Equal(t, "Paris, France", f.Format(&location.Location{Name: "Paris", Country: "France"}, w, now).DisplayName)
}

func TestFormatForecastPreservesOrder(t *testing.T) {
	f := NewFormatter(Config{IconBaseURL: "https://icons.example.com/"})

	got := f.Format(nil, sampleWeather(nil), time.Now())

	require.Len(t, got.Forecast, 5)
	require.Equal(t, []string{"Mon, Jul 1", "Tue, Jul 2", "Wed, Jul 3", "Thu, Jul 4", "Fri, Jul 5"}, cardDates(got.Forecast))
	require.Equal(t, "21° / 12°", got.Forecast[0].Temperature)
	require.Equal(t, "-2° / -8°", got.Forecast[4].Temperature)
	require.Equal(t, "Slight rain", got.Forecast[0].Description)
	require.Equal(t, "https://icons.example.com/10d.png", got.Forecast[0].IconURL)
	require.Equal(t, "Unknown", got.Forecast[2].Description)
	require.Equal(t, "01d", got.Forecast[2].Icon)
	require.Equal(t, "23 km/h", got.Forecast[0].Wind)
}

func TestFormatUnknownCurrentCode(t *testing.T) {
	w := sampleWeather(nil)
	w.Current.Code = 42

	got := NewFormatter(Config{}).Format(nil, w, time.Now())
	require.Equal(t, "Unknown", got.Description)
	require.Equal(t, "01d", got.Icon)
}

func TestFormatIsIdempotentApartFromTimestamp(t *testing.T) {
	f := NewFormatter(Config{})
	loc := &location.Location{Name: "London", Country: "United Kingdom"}
	w := sampleWeather(nil)

	first := f.Format(loc, w, time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC))
	second := f.Format(loc, w, time.Date(2024, 7, 2, 9, 30, 0, 0, time.UTC))

	require.NotEqual(t, first.Timestamp, second.Timestamp)
	first.Timestamp, second.Timestamp = "", ""
	require.Equal(t, first, second)
}

func TestRoundHalfTowardPositiveInfinity(t *testing.T) {
	cases := map[float64]int64{
		2.5:   3,
		2.49:  2,
		-2.5:  -2,
		-2.51: -3,
		-0.4:  0,
		0:     0,

		// Largest double below 0.5; adding 0.5 to it rounds up to 1.
		0.49999999999999994: 0,
		-0.5:                0,
		4503599627370495.5:  4503599627370496,
	}
	for in, want := range cases {
		require.Equal(t, want, round(in), "round(%v)", in)
	}
}

func sampleWeather(visibility *float64) forecast.Weather {
	day := func(d int) time.Time { return time.Date(2024, 7, d, 0, 0, 0, 0, time.UTC) }
	return forecast.Weather{
		Current: forecast.CurrentConditions{
			Temperature: 17.6,
			FeelsLike:   16.5,
			Humidity:    72,
			WindSpeed:   12.6,
			Pressure:    1013.7,
			Visibility:  visibility,
			Code:        61,
		},
		Daily: []forecast.DailyEntry{
			{Date: day(1), Code: 61, TempMax: 20.5, TempMin: 11.6, MaxWindSpeed: 22.5},
			{Date: day(2), Code: 3, TempMax: 19.1, TempMin: 10.2, MaxWindSpeed: 15.1},
			{Date: day(3), Code: 42, TempMax: 18, TempMin: 9, MaxWindSpeed: 10},
			{Date: day(4), Code: 0, TempMax: 25.4, TempMin: 14.4, MaxWindSpeed: 8.8},
			{Date: day(5), Code: 71, TempMax: -2.5, TempMin: -8.2, MaxWindSpeed: 30.2},
		},
		UTCOffsetSeconds: 3600,
	}
}

func cardDates(cards []ForecastCard) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Date)
	}
	return out
}
