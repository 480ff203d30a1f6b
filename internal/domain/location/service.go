package location

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	apperrors "github.com/yanqian/skycast/pkg/errors"
)

// Resolver turns a city name or a browser position into a Location.
type Resolver interface {
	ResolveByName(ctx context.Context, city string) (Location, error)
	ResolveByGeolocation(ctx context.Context, report PositionReport) (Location, error)
}

// Geocoder looks up places matching a free text name.
type Geocoder interface {
	Search(ctx context.Context, name string, count int) ([]Location, error)
}

type service struct {
	geocoder Geocoder
	logger   *slog.Logger
}

// NewService wires the location resolver.
func NewService(geocoder Geocoder, logger *slog.Logger) Resolver {
	return &service{
		geocoder: geocoder,
		logger:   logger.With("component", "location.service"),
	}
}

func (s *service) ResolveByName(ctx context.Context, city string) (Location, error) {
	name := strings.TrimSpace(city)
	if name == "" {
		return Location{}, apperrors.Wrap(apperrors.CodeEmptyInput, MsgEmptyCity, nil)
	}

	results, err := s.geocoder.Search(ctx, name, 1)
	if err != nil {
		s.logger.Warn("geocoding failed", "city", name, "error", err)
		return Location{}, apperrors.Wrap(apperrors.CodeServiceError, MsgGeocodingError, err)
	}
	if len(results) == 0 {
		return Location{}, apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("City %q not found", name), nil)
	}

	top := results[0]
	s.logger.Debug("city resolved", "city", name, "name", top.Name, "country", top.Country)
	return top, nil
}

func (s *service) ResolveByGeolocation(_ context.Context, report PositionReport) (Location, error) {
	if !report.Supported {
		return Location{}, apperrors.Wrap(apperrors.CodeUnsupported, MsgUnsupported, nil)
	}
	if report.Coords == nil {
		return Location{}, positionError(report.Failure)
	}
	lat, lon := report.Coords.Latitude, report.Coords.Longitude
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Location{}, apperrors.Wrap(apperrors.CodePositionUnavailable, MsgPositionUnavailable,
			fmt.Errorf("coordinates out of range: %f,%f", lat, lon))
	}
	return Location{
		Name:      CurrentLocationName,
		Latitude:  lat,
		Longitude: lon,
	}, nil
}

func positionError(failure PositionFailure) error {
	switch failure {
	case FailurePermissionDenied:
		return apperrors.Wrap(apperrors.CodePermissionDenied, MsgPermissionDenied, nil)
	case FailurePositionUnavailable:
		return apperrors.Wrap(apperrors.CodePositionUnavailable, MsgPositionUnavailable, nil)
	case FailureTimeout:
		return apperrors.Wrap(apperrors.CodeTimeout, MsgTimeout, nil)
	default:
		return apperrors.Wrap(apperrors.CodeUnknownLocation, MsgUnknownLocation, nil)
	}
}
