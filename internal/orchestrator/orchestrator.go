package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/vzahanych/weather-widget/internal/forecast"
	"github.com/vzahanych/weather-widget/internal/history"
	"github.com/vzahanych/weather-widget/internal/service"
	apperrors "github.com/vzahanych/weather-widget/pkg/errors"
	"github.com/vzahanych/weather-widget/pkg/telemetry"
)

// Messages shown to the user.
const (
	MsgGeocodeFailed        = "An error occurred while fetching the coordinates!"
	MsgReverseGeocodeFailed = "An error occurred while fetching the city name!"
	MsgForecastFailed       = "An error occurred while fetching the weather forecast!"
	MsgGeoPermissionDenied  = "Geolocation request denied. Please reset location permission to grant access again."
	MsgGeoUnavailable       = "Geolocation request error. Please reset location permission."
)

const (
	PathCity     = "city"
	PathLocation = "location"
)

// NoCoordinatesMessage is the alert for a city the geocoder does not know.
func NoCoordinatesMessage(city string) string {
	return fmt.Sprintf("No coordinates found for %s", city)
}

// Display is where a finished search ends up.
type Display interface {
	// ShowForecast clears the search input and both panels, then renders days.
	ShowForecast(city string, days forecast.Daily)
	Alert(message string)
}

// MetricsRecorder interface for recording pipeline outcomes
type MetricsRecorder interface {
	RecordSearch(ctx context.Context, path string, success bool)
	RecordSuperseded(ctx context.Context, path string)
}

type Orchestrator struct {
	history *history.Store
	weather service.WeatherService
	display Display
	dayKey  forecast.DayKey
	logger  *zap.Logger
	tele    *telemetry.Telemetry
	metrics MetricsRecorder

	generation atomic.Uint64
	renderMu   sync.Mutex
}

func New(store *history.Store, weather service.WeatherService, display Display, dayKey forecast.DayKey, logger *zap.Logger, tele *telemetry.Telemetry) *Orchestrator {
	if dayKey == nil {
		dayKey = forecast.ByDate
	}
	return &Orchestrator{
		history: store,
		weather: weather,
		display: display,
		dayKey:  dayKey,
		logger:  logger,
		tele:    tele,
	}
}

// SetMetricsRecorder sets the metrics recorder for the orchestrator
func (o *Orchestrator) SetMetricsRecorder(metrics MetricsRecorder) {
	o.metrics = metrics
}

// NormalizeQuery trims surrounding whitespace.
func NormalizeQuery(raw string) string {
	return strings.TrimSpace(raw)
}

// SearchCity runs the text search: record the query, geocode it, fetch and
// reduce the forecast, then render. An empty query returns an EMPTY_QUERY
// error without any side effect.
func (o *Orchestrator) SearchCity(ctx context.Context, raw string) error {
	city := NormalizeQuery(raw)
	if city == "" {
		return apperrors.Wrap(apperrors.CodeEmptyQuery, "empty query", nil)
	}

	gen := o.generation.Add(1)

	ctx, span := o.tele.GetTracer().Start(ctx, "orchestrator.SearchCity")
	defer span.End()
	span.SetAttributes(
		attribute.String("city", city),
		attribute.Int64("generation", int64(gen)),
	)

	logger := o.requestLogger(ctx).With(zap.String("city", city), zap.Uint64("generation", gen))

	if o.history.Save(ctx, city) {
		logger.Debug("City added to search history")
	}

	coord, err := o.weather.Geocode(ctx, city)
	if err != nil {
		if errors.Is(err, service.ErrNoResults) {
			return o.fail(ctx, logger, gen, PathCity, apperrors.CodeNoCoordinates, NoCoordinatesMessage(city), nil)
		}
		return o.fail(ctx, logger, gen, PathCity, apperrors.CodeGeocodeFailed, MsgGeocodeFailed, err)
	}

	return o.showForecast(ctx, logger, gen, PathCity, coord)
}

// SearchLocation runs the geolocation search. It never touches the history.
func (o *Orchestrator) SearchLocation(ctx context.Context, loc Locator) error {
	gen := o.generation.Add(1)

	ctx, span := o.tele.GetTracer().Start(ctx, "orchestrator.SearchLocation")
	defer span.End()
	span.SetAttributes(attribute.Int64("generation", int64(gen)))

	logger := o.requestLogger(ctx).With(zap.Uint64("generation", gen))

	lat, lon, err := loc.Locate(ctx)
	if err != nil {
		if errors.Is(err, ErrPermissionDenied) {
			return o.fail(ctx, logger, gen, PathLocation, apperrors.CodeGeoPermissionDenied, MsgGeoPermissionDenied, err)
		}
		return o.fail(ctx, logger, gen, PathLocation, apperrors.CodeGeoUnavailable, MsgGeoUnavailable, err)
	}

	span.SetAttributes(
		attribute.Float64("lat", lat),
		attribute.Float64("lon", lon),
	)

	coord, err := o.weather.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		return o.fail(ctx, logger, gen, PathLocation, apperrors.CodeReverseGeocodeFailed, MsgReverseGeocodeFailed, err)
	}

	return o.showForecast(ctx, logger.With(zap.String("city", coord.Name)), gen, PathLocation, coord)
}

func (o *Orchestrator) showForecast(ctx context.Context, logger *zap.Logger, gen uint64, path string, coord forecast.Coordinate) error {
	entries, err := o.weather.Forecast(ctx, coord)
	if err != nil {
		// Panels stay as they were.
		return o.fail(ctx, logger, gen, path, apperrors.CodeForecastFailed, MsgForecastFailed, err)
	}

	days := forecast.Reduce(entries, o.dayKey)

	o.renderMu.Lock()
	defer o.renderMu.Unlock()

	if !o.isLatest(gen) {
		return o.superseded(ctx, logger, path)
	}

	o.display.ShowForecast(coord.Name, days)

	if o.metrics != nil {
		o.metrics.RecordSearch(ctx, path, true)
	}
	logger.Info("Forecast rendered",
		zap.String("path", path),
		zap.Int("entries", len(entries)),
		zap.Int("days", len(days)))

	return nil
}

func (o *Orchestrator) fail(ctx context.Context, logger *zap.Logger, gen uint64, path, code, message string, cause error) error {
	o.renderMu.Lock()
	defer o.renderMu.Unlock()

	if !o.isLatest(gen) {
		return o.superseded(ctx, logger, path)
	}

	o.display.Alert(message)

	if o.metrics != nil {
		o.metrics.RecordSearch(ctx, path, false)
	}

	fields := []zap.Field{zap.String("path", path), zap.String("code", code)}
	if cause != nil {
		fields = append(fields, zap.Error(cause))
		o.tele.RecordError(ctx, cause, map[string]interface{}{"code": code})
	}
	logger.Warn("Search failed", fields...)

	return apperrors.Wrap(code, message, cause)
}

func (o *Orchestrator) superseded(ctx context.Context, logger *zap.Logger, path string) error {
	if o.metrics != nil {
		o.metrics.RecordSuperseded(ctx, path)
	}
	logger.Debug("Discarding result of superseded search", zap.String("path", path))
	return apperrors.Wrap(apperrors.CodeSuperseded, "superseded by a newer search", nil)
}

func (o *Orchestrator) isLatest(gen uint64) bool {
	return o.generation.Load() == gen
}

func (o *Orchestrator) requestLogger(ctx context.Context) *zap.Logger {
	if id, ok := ctx.Value(RequestIDKey{}).(string); ok && id != "" {
		return o.logger.With(zap.String("request_id", id))
	}
	return o.logger
}

// RequestIDKey carries the HTTP request id into pipeline logs.
type RequestIDKey struct{}
