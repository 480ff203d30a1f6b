package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ZoneFor returns a location for the given IANA name, falling back to a fixed
// zone built from the UTC offset when the name is unknown to the host.
func ZoneFor(name string, offsetSeconds int) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if offsetSeconds == 0 && name == "" {
		return time.UTC
	}
	return time.FixedZone(name, offsetSeconds)
}
