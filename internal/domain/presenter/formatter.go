package presenter

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/yanqian/skycast/internal/domain/conditions"
	"github.com/yanqian/skycast/internal/domain/forecast"
	"github.com/yanqian/skycast/internal/domain/location"
	"github.com/yanqian/skycast/pkg/util"
)

// Formatter turns fetched weather into display fields. It performs no I/O.
type Formatter struct {
	iconBase string
}

// NewFormatter builds a formatter.
func NewFormatter(cfg Config) *Formatter {
	return &Formatter{iconBase: cfg.IconBaseURL}
}

// Format renders the current panel and forecast cards. loc may be nil when no
// location identity is known. now is only used for the Timestamp field.
func (f *Formatter) Format(loc *location.Location, w forecast.Weather, now time.Time) Display {
	cur := w.Current
	cond := conditions.Lookup(cur.Code)

	return Display{
		DisplayName: displayName(loc),
		Timestamp:   now.In(util.ZoneFor(w.Timezone, w.UTCOffsetSeconds)).Format(timestampLayout),
		Temperature: fmt.Sprintf("%d°C", round(cur.Temperature)),
		FeelsLike:   fmt.Sprintf("Feels like %d°C", round(cur.FeelsLike)),
		Description: cond.Description,
		Icon:        cond.Icon,
		IconURL:     conditions.IconURL(f.iconBase, cond.Icon, conditions.IconLarge),
		Humidity:    fmt.Sprintf("%d%%", cur.Humidity),
		WindSpeed:   strconv.FormatFloat(cur.WindSpeed, 'f', -1, 64) + " km/h",
		Pressure:    fmt.Sprintf("%d hPa", round(cur.Pressure)),
		Visibility:  visibility(cur.Visibility),
		Forecast:    f.cards(w.Daily),
	}
}

func (f *Formatter) cards(days []forecast.DailyEntry) []ForecastCard {
	cards := make([]ForecastCard, 0, len(days))
	for _, day := range days {
		cond := conditions.Lookup(day.Code)
		cards = append(cards, ForecastCard{
			Date:        day.Date.Format(cardDateLayout),
			Temperature: fmt.Sprintf("%d° / %d°", round(day.TempMax), round(day.TempMin)),
			Description: cond.Description,
			Icon:        cond.Icon,
			IconURL:     conditions.IconURL(f.iconBase, cond.Icon, conditions.IconSmall),
			Wind:        fmt.Sprintf("%d km/h", round(day.MaxWindSpeed)),
		})
	}
	return cards
}

func displayName(loc *location.Location) string {
	switch {
	case loc == nil:
		return FallbackDisplayName
	case loc.Country != "":
		return loc.Name + ", " + loc.Country
	default:
		return loc.Name
	}
}

// visibility treats a reported zero like an absent reading.
func visibility(meters *float64) string {
	if meters == nil || *meters == 0 || math.IsNaN(*meters) {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f km", *meters/1000)
}

// round rounds half toward positive infinity, so -2.5 becomes -2.
func round(v float64) int64 {
	f := math.Floor(v)
	if v-f >= 0.5 {
		return int64(f) + 1
	}
	return int64(f)
}
