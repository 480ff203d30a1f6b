package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/skycast/internal/domain/forecast"
)

var (
	currentFields = []string{
		"temperature_2m",
		"relative_humidity_2m",
		"apparent_temperature",
		"weather_code",
		"pressure_msl",
		"wind_speed_10m",
		"visibility",
	}
	dailyFields = []string{
		"weather_code",
		"temperature_2m_max",
		"temperature_2m_min",
		"wind_speed_10m_max",
	}
)

type forecastResponse struct {
	Timezone         string        `json:"timezone"`
	UTCOffsetSeconds int           `json:"utc_offset_seconds"`
	Current          *currentBlock `json:"current"`
	Daily            *dailyBlock   `json:"daily"`
}

type currentBlock struct {
	Temperature         float64  `json:"temperature_2m"`
	RelativeHumidity    float64  `json:"relative_humidity_2m"`
	ApparentTemperature float64  `json:"apparent_temperature"`
	WeatherCode         int      `json:"weather_code"`
	PressureMSL         float64  `json:"pressure_msl"`
	WindSpeed           float64  `json:"wind_speed_10m"`
	Visibility          *float64 `json:"visibility"`
}

type dailyBlock struct {
	Time           []string  `json:"time"`
	WeatherCode    []int     `json:"weather_code"`
	TemperatureMax []float64 `json:"temperature_2m_max"`
	TemperatureMin []float64 `json:"temperature_2m_min"`
	WindSpeedMax   []float64 `json:"wind_speed_10m_max"`
}

// Forecast implements forecast.Provider with one request for current
// conditions and the daily forecast.
func (c *Client) Forecast(ctx context.Context, lat, lon float64, days int) (forecast.Weather, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("current", strings.Join(currentFields, ","))
	query.Set("daily", strings.Join(dailyFields, ","))
	query.Set("timezone", "auto")
	query.Set("forecast_days", strconv.Itoa(days))

	var raw forecastResponse
	if err := c.getJSON(ctx, "forecast", c.forecastURL, query, &raw); err != nil {
		return forecast.Weather{}, err
	}

	if raw.Current == nil {
		return forecast.Weather{}, errors.New("decode forecast: response has no current block")
	}
	if raw.Daily == nil || raw.Daily.Time == nil {
		return forecast.Weather{}, errors.New("decode forecast: response has no daily block")
	}

	daily, err := normalizeDaily(*raw.Daily)
	if err != nil {
		return forecast.Weather{}, err
	}

	return forecast.Weather{
		Current: forecast.CurrentConditions{
			Temperature: raw.Current.Temperature,
			FeelsLike:   raw.Current.ApparentTemperature,
			Humidity:    int(math.Round(raw.Current.RelativeHumidity)),
			WindSpeed:   raw.Current.WindSpeed,
			Pressure:    raw.Current.PressureMSL,
			Visibility:  raw.Current.Visibility,
			Code:        raw.Current.WeatherCode,
		},
		Daily:            daily,
		Timezone:         raw.Timezone,
		UTCOffsetSeconds: raw.UTCOffsetSeconds,
	}, nil
}

// normalizeDaily zips the column arrays into entries, stopping at the
// shortest column.
func normalizeDaily(d dailyBlock) ([]forecast.DailyEntry, error) {
	n := minLen(len(d.Time), len(d.WeatherCode), len(d.TemperatureMax), len(d.TemperatureMin), len(d.WindSpeedMax))
	out := make([]forecast.DailyEntry, 0, n)
	for i := 0; i < n; i++ {
		date, err := time.Parse(time.DateOnly, d.Time[i])
		if err != nil {
			return nil, fmt.Errorf("decode forecast date %q: %w", d.Time[i], err)
		}
		out = append(out, forecast.DailyEntry{
			Date:         date,
			Code:         d.WeatherCode[i],
			TempMax:      d.TemperatureMax[i],
			TempMin:      d.TemperatureMin[i],
			MaxWindSpeed: d.WindSpeedMax[i],
		})
	}
	return out, nil
}

func minLen(lengths ...int) int {
	if len(lengths) == 0 {
		return 0
	}
	m := lengths[0]
	for _, l := range lengths[1:] {
		if l < m {
			m = l
		}
	}
	return m
}

var _ forecast.Provider = (*Client)(nil)
