package conditions

import "strings"

// DefaultIconBaseURL hosts the icon set referenced by the table.
const DefaultIconBaseURL = "https://openweathermap.org/img/wn"

// Condition is the human readable form of a WMO weather code.
type Condition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Unknown is returned for codes outside the table.
var Unknown = Condition{Description: "Unknown", Icon: "01d"}

var table = map[int]Condition{
	0:  {"Clear sky", "01d"},
	1:  {"Mainly clear", "02d"},
	2:  {"Partly cloudy", "03d"},
	3:  {"Overcast", "04d"},
	45: {"Fog", "50d"},
	48: {"Depositing rime fog", "50d"},
	51: {"Light drizzle", "09d"},
	53: {"Moderate drizzle", "09d"},
	55: {"Dense drizzle", "09d"},
	56: {"Light freezing drizzle", "09d"},
	57: {"Dense freezing drizzle", "09d"},
	61: {"Slight rain", "10d"},
	63: {"Moderate rain", "10d"},
	65: {"Heavy rain", "10d"},
	66: {"Light freezing rain", "13d"},
	67: {"Heavy freezing rain", "13d"},
	71: {"Slight snow fall", "13d"},
	73: {"Moderate snow fall", "13d"},
	75: {"Heavy snow fall", "13d"},
	77: {"Snow grains", "13d"},
	80: {"Slight rain showers", "09d"},
	81: {"Moderate rain showers", "09d"},
	82: {"Violent rain showers", "09d"},
	85: {"Slight snow showers", "13d"},
	86: {"Heavy snow showers", "13d"},
	95: {"Thunderstorm", "11d"},
	96: {"Thunderstorm with slight hail", "11d"},
	99: {"Thunderstorm with heavy hail", "11d"},
}

// Lookup resolves a code, falling back to Unknown.
func Lookup(code int) Condition {
	if c, ok := table[code]; ok {
		return c
	}
	return Unknown
}

// Known reports whether the code has its own table entry.
func Known(code int) bool {
	_, ok := table[code]
	return ok
}

// IconSize selects the rendition of an icon.
type IconSize string

const (
	// IconLarge is used for the current conditions panel.
	IconLarge IconSize = "@4x"
	// IconSmall is used for forecast cards.
	IconSmall IconSize = ""
)

// IconURL builds the asset URL for an icon id. The asset is never fetched here.
func IconURL(base, icon string, size IconSize) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = DefaultIconBaseURL
	}
	return base + "/" + icon + string(size) + ".png"
}
