package forecast

import "time"

// DefaultDays is the forecast horizon requested when none is configured.
const DefaultDays = 5

// MsgWeatherError is shown when the weather provider fails.
const MsgWeatherError = "Weather service error"

// CurrentConditions is the "now" block of a forecast response.
type CurrentConditions struct {
	Temperature float64  `json:"temperature"`
	FeelsLike   float64  `json:"feelsLike"`
	Humidity    int      `json:"humidity"`
	WindSpeed   float64  `json:"windSpeed"`
	Pressure    float64  `json:"pressure"`
	Visibility  *float64 `json:"visibility,omitempty"` // meters
	Code        int      `json:"code"`
}

// DailyEntry is one day of the forecast. Date is midnight UTC of the civil date.
type DailyEntry struct {
	Date         time.Time `json:"date"`
	Code         int       `json:"code"`
	TempMax      float64   `json:"tempMax"`
	TempMin      float64   `json:"tempMin"`
	MaxWindSpeed float64   `json:"maxWindSpeed"`
}

// Weather is everything fetched for one pair of coordinates.
type Weather struct {
	Current          CurrentConditions `json:"current"`
	Daily            []DailyEntry      `json:"daily"`
	Timezone         string            `json:"timezone"`
	UTCOffsetSeconds int               `json:"utcOffsetSeconds"`
}

// Config wires runtime knobs for the fetcher.
type Config struct {
	Days int
}
