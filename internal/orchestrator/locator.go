package orchestrator

import (
	"context"
	"errors"
)

var (
	ErrPermissionDenied    = errors.New("geolocation permission denied")
	ErrPositionUnavailable = errors.New("geolocation position unavailable")
	ErrTimeout             = errors.New("geolocation timed out")
)

// Locator is the geolocation capability.
type Locator interface {
	Locate(ctx context.Context) (lat, lon float64, err error)
}

// StaticLocator reports a position (or failure) obtained elsewhere, such as
// the browser's geolocation result posted with a request.
type StaticLocator struct {
	Lat float64
	Lon float64
	Err error
}

func (l StaticLocator) Locate(ctx context.Context) (float64, float64, error) {
	if l.Err != nil {
		return 0, 0, l.Err
	}
	return l.Lat, l.Lon, nil
}

// LocatorError maps a browser GeolocationPositionError name to an error.
func LocatorError(name string) error {
	switch name {
	case "":
		return nil
	case "denied":
		return ErrPermissionDenied
	case "timeout":
		return ErrTimeout
	default:
		return ErrPositionUnavailable
	}
}
