package service

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/vzahanych/weather-widget/internal/forecast"
)

// RateLimited wraps a WeatherService so that every upstream request first
// waits for a token. Requests are delayed, never retried or dropped.
type RateLimited struct {
	next    WeatherService
	limiter *rate.Limiter
}

// NewRateLimited returns next unchanged when rps is not positive.
func NewRateLimited(next WeatherService, rps float64, burst int) WeatherService {
	if rps <= 0 {
		return next
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimited) Name() string {
	return fmt.Sprintf("%s [rate limited]", r.next.Name())
}

func (r *RateLimited) Geocode(ctx context.Context, city string) (forecast.Coordinate, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return forecast.Coordinate{}, fmt.Errorf("rate limit wait: %w", err)
	}
	return r.next.Geocode(ctx, city)
}

func (r *RateLimited) ReverseGeocode(ctx context.Context, lat, lon float64) (forecast.Coordinate, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return forecast.Coordinate{}, fmt.Errorf("rate limit wait: %w", err)
	}
	return r.next.ReverseGeocode(ctx, lat, lon)
}

func (r *RateLimited) Forecast(ctx context.Context, coord forecast.Coordinate) ([]forecast.Entry, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return r.next.Forecast(ctx, coord)
}
