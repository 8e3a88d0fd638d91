package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vzahanych/weather-widget/internal/config"
	"github.com/vzahanych/weather-widget/internal/forecast"
	"github.com/vzahanych/weather-widget/internal/history"
	"github.com/vzahanych/weather-widget/internal/orchestrator"
	"github.com/vzahanych/weather-widget/internal/render"
	"github.com/vzahanych/weather-widget/internal/server/handlers"
	"github.com/vzahanych/weather-widget/internal/service"
)

// app is the wiring shared by every command that searches or reads history.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    *history.Store
	weather  service.WeatherService
	renderer *render.Renderer
	dayKey   forecast.DayKey
	metrics  *handlers.MetricsHandler
}

func buildApp(ctx context.Context) (*app, error) {
	cfg := config.GetConfig()
	zlog := log.Zap()

	dayKey, err := forecast.ParseDayKey(cfg.Forecast.DayKey)
	if err != nil {
		return nil, err
	}

	gateway, err := history.OpenGateway(ctx, cfg.History, zlog)
	if err != nil {
		return nil, fmt.Errorf("failed to open search history: %w", err)
	}
	store := history.Load(ctx, gateway, cfg.History.Key, zlog)

	if cfg.OpenWeather.APIKey == "" {
		zlog.Warn("No OpenWeather API key configured, requests will be rejected")
	}

	metrics := handlers.NewMetricsHandler(zlog)

	ow := service.NewOpenWeatherServiceWithConfig(cfg.OpenWeather, zlog, tele)
	ow.SetMetricsRecorder(metrics)

	return &app{
		cfg:      cfg,
		logger:   zlog,
		store:    store,
		weather:  service.NewRateLimited(ow, cfg.OpenWeather.RateLimit, cfg.OpenWeather.Burst),
		renderer: render.New(cfg.OpenWeather.IconBaseURL),
		dayKey:   dayKey,
		metrics:  metrics,
	}, nil
}

func (a *app) orchestrator(display orchestrator.Display) *orchestrator.Orchestrator {
	orch := orchestrator.New(a.store, a.weather, display, a.dayKey, a.logger, tele)
	orch.SetMetricsRecorder(a.metrics)
	return orch
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("Failed to close search history", zap.Error(err))
	}
}
