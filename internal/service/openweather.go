package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vzahanych/weather-widget/internal/config"
	"github.com/vzahanych/weather-widget/internal/forecast"
	"github.com/vzahanych/weather-widget/pkg/telemetry"
	"go.uber.org/zap"
)

const (
	endpointGeocode  = "geocode"
	endpointReverse  = "reverse"
	endpointForecast = "forecast"
)

type OpenWeatherService struct {
	geoBaseURL  string
	dataBaseURL string
	apiKey      string
	client      *http.Client
	logger      *zap.Logger
	tele        *telemetry.Telemetry
	metrics     MetricsRecorder
}

type geoResult struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type forecastResponse struct {
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []struct {
			Icon        string `json:"icon"`
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

func NewOpenWeatherServiceWithConfig(cfg config.OpenWeatherConfig, logger *zap.Logger, tele *telemetry.Telemetry) *OpenWeatherService {
	return &OpenWeatherService{
		geoBaseURL:  strings.TrimRight(cfg.GeoBaseURL, "/"),
		dataBaseURL: strings.TrimRight(cfg.DataBaseURL, "/"),
		apiKey:      cfg.APIKey,
		client: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		logger: logger,
		tele:   tele,
	}
}

func (s *OpenWeatherService) Name() string {
	return "openweather"
}

// SetMetricsRecorder sets the recorder notified after every upstream call.
func (s *OpenWeatherService) SetMetricsRecorder(metrics MetricsRecorder) {
	s.metrics = metrics
}

func (s *OpenWeatherService) Geocode(ctx context.Context, city string) (forecast.Coordinate, error) {
	ctx, span := s.tele.GetTracer().Start(ctx, "openweather.Geocode")
	defer span.End()
	span.SetAttributes(attribute.String("city", city))

	q := url.Values{}
	q.Set("q", city)
	q.Set("limit", "1")

	var results []geoResult
	if err := s.get(ctx, endpointGeocode, s.geoBaseURL+"/direct", q, &results); err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return forecast.Coordinate{}, err
	}

	span.SetAttributes(attribute.Int("results", len(results)))
	if len(results) == 0 {
		s.logger.Debug("Geocoding returned no results", zap.String("city", city))
		return forecast.Coordinate{}, fmt.Errorf("geocode %q: %w", city, ErrNoResults)
	}

	first := results[0]
	s.logger.Debug("Geocoded city",
		zap.String("city", city),
		zap.String("name", first.Name),
		zap.Float64("lat", first.Lat),
		zap.Float64("lon", first.Lon))

	return forecast.Coordinate{Lat: first.Lat, Lon: first.Lon, Name: first.Name}, nil
}

func (s *OpenWeatherService) ReverseGeocode(ctx context.Context, lat, lon float64) (forecast.Coordinate, error) {
	ctx, span := s.tele.GetTracer().Start(ctx, "openweather.ReverseGeocode")
	defer span.End()
	span.SetAttributes(
		attribute.Float64("lat", lat),
		attribute.Float64("lon", lon),
	)

	q := url.Values{}
	q.Set("lat", formatCoord(lat))
	q.Set("lon", formatCoord(lon))
	q.Set("limit", "1")

	var results []geoResult
	if err := s.get(ctx, endpointReverse, s.geoBaseURL+"/reverse", q, &results); err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return forecast.Coordinate{}, err
	}

	if len(results) == 0 {
		span.SetAttributes(attribute.Bool("success", false))
		return forecast.Coordinate{}, fmt.Errorf("reverse geocode %s,%s: %w", formatCoord(lat), formatCoord(lon), ErrNoResults)
	}

	return forecast.Coordinate{Lat: lat, Lon: lon, Name: results[0].Name}, nil
}

func (s *OpenWeatherService) Forecast(ctx context.Context, coord forecast.Coordinate) ([]forecast.Entry, error) {
	ctx, span := s.tele.GetTracer().Start(ctx, "openweather.Forecast")
	defer span.End()
	span.SetAttributes(
		attribute.Float64("lat", coord.Lat),
		attribute.Float64("lon", coord.Lon),
		attribute.String("city", coord.Name),
	)

	q := url.Values{}
	q.Set("lat", formatCoord(coord.Lat))
	q.Set("lon", formatCoord(coord.Lon))

	var resp forecastResponse
	if err := s.get(ctx, endpointForecast, s.dataBaseURL+"/forecast", q, &resp); err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, err
	}

	entries := make([]forecast.Entry, 0, len(resp.List))
	for _, item := range resp.List {
		// Every entry carries at least one weather condition.
		if len(item.Weather) == 0 {
			return nil, fmt.Errorf("failed to decode forecast: entry %q has no weather", item.DtTxt)
		}
		entries = append(entries, forecast.NewEntry(
			item.DtTxt,
			item.Main.Temp,
			item.Main.Humidity,
			item.Wind.Speed,
			item.Weather[0].Icon,
			item.Weather[0].Description,
		))
	}

	span.SetAttributes(attribute.Int("entries", len(entries)))
	s.logger.Debug("Fetched forecast",
		zap.String("city", coord.Name),
		zap.Int("entries", len(entries)))

	return entries, nil
}

func (s *OpenWeatherService) get(ctx context.Context, endpoint, base string, q url.Values, out interface{}) (err error) {
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordWeatherServiceCall(ctx, endpoint, err == nil)
		}
		if err != nil {
			s.tele.RecordError(ctx, err, map[string]interface{}{"endpoint": endpoint})
			s.logger.Warn("OpenWeather request failed",
				zap.String("endpoint", endpoint),
				zap.Error(err))
		}
	}()

	q.Set("appid", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
