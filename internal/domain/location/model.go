package location

// CurrentLocationName labels coordinates reported by the browser, since no
// reverse geocoding is performed.
const CurrentLocationName = "Your Location"

// Location is the resolved identity and coordinates of one query.
type Location struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coordinates is a position reported by the host geolocation capability.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PositionFailure classifies a failed geolocation request.
type PositionFailure string

const (
	FailurePermissionDenied    PositionFailure = "permission_denied"
	FailurePositionUnavailable PositionFailure = "position_unavailable"
	FailureTimeout             PositionFailure = "timeout"
	FailureUnknown             PositionFailure = "unknown"
)

// PositionReport is what the browser tells us about its geolocation attempt.
// Exactly one of Coords or Failure is expected when Supported is true.
type PositionReport struct {
	Supported bool
	Coords    *Coordinates
	Failure   PositionFailure
}

// User facing messages.
const (
	MsgEmptyCity           = "Please enter a city name"
	MsgGeocodingError      = "Geocoding service error"
	MsgPermissionDenied    = "Please allow location access to use this feature"
	MsgPositionUnavailable = "Location information is unavailable"
	MsgTimeout             = "Location request timed out"
	MsgUnknownLocation     = "An unknown error occurred"
	MsgUnsupported         = "Geolocation is not supported by your browser"
)
