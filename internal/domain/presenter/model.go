package presenter

// FallbackDisplayName is used when no location identity is available.
const FallbackDisplayName = "Current Location"

// NotAvailable is rendered for optional fields the provider omitted.
const NotAvailable = "N/A"

const (
	timestampLayout = "Monday, January 2, 2006 at 03:04 PM"
	cardDateLayout  = "Mon, Jan 2"
)

// Display holds the display-ready fields of the current weather panel.
type Display struct {
	DisplayName string         `json:"displayName"`
	Timestamp   string         `json:"timestamp"`
	Temperature string         `json:"temperature"`
	FeelsLike   string         `json:"feelsLike"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	IconURL     string         `json:"iconUrl"`
	Humidity    string         `json:"humidity"`
	WindSpeed   string         `json:"windSpeed"`
	Pressure    string         `json:"pressure"`
	Visibility  string         `json:"visibility"`
	Forecast    []ForecastCard `json:"forecast"`
}

// ForecastCard is one day of the forecast panel.
type ForecastCard struct {
	Date        string `json:"date"`
	Temperature string `json:"temperature"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IconURL     string `json:"iconUrl"`
	Wind        string `json:"wind"`
}

// Config controls asset URLs embedded in the output.
type Config struct {
	IconBaseURL string
}
