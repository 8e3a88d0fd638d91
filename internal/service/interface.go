package service

import (
	"context"
	"errors"

	"github.com/vzahanych/weather-widget/internal/forecast"
)

// ErrNoResults is returned when a geocoding lookup matched nothing.
var ErrNoResults = errors.New("no results")

type WeatherService interface {
	// Geocode resolves a city name to its best matching coordinate.
	Geocode(ctx context.Context, city string) (forecast.Coordinate, error)
	// ReverseGeocode names the city at lat/lon; the returned coordinate keeps
	// the input lat/lon.
	ReverseGeocode(ctx context.Context, lat, lon float64) (forecast.Coordinate, error)
	// Forecast returns the raw sub-daily series for a coordinate.
	Forecast(ctx context.Context, coord forecast.Coordinate) ([]forecast.Entry, error)
	Name() string
}

// MetricsRecorder receives one call per upstream request.
type MetricsRecorder interface {
	RecordWeatherServiceCall(ctx context.Context, endpoint string, success bool)
}
