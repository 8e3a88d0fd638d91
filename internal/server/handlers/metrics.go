package handlers

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsHandler counts OpenWeather calls and search outcomes. It owns the
// registry that the HTTP middleware registers its collectors with too.
type MetricsHandler struct {
	logger   *zap.Logger
	registry *prometheus.Registry

	weatherServiceCalls  *prometheus.CounterVec
	weatherServiceErrors *prometheus.CounterVec
	searches             *prometheus.CounterVec
	searchErrors         *prometheus.CounterVec
	superseded           *prometheus.CounterVec
}

func NewMetricsHandler(logger *zap.Logger) *MetricsHandler {
	h := &MetricsHandler{
		logger:   logger,
		registry: prometheus.NewRegistry(),
		weatherServiceCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "openweather_calls_total",
			Help: "Total OpenWeather API calls",
		}, []string{"endpoint"}),
		weatherServiceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "openweather_errors_total",
			Help: "Total failed OpenWeather API calls",
		}, []string{"endpoint"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "searches_total",
			Help: "Searches that reached the display",
		}, []string{"path"}),
		searchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "search_errors_total",
			Help: "Searches that ended in an alert",
		}, []string{"path"}),
		superseded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "searches_superseded_total",
			Help: "Search results discarded for a newer search",
		}, []string{"path"}),
	}

	h.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		h.weatherServiceCalls,
		h.weatherServiceErrors,
		h.searches,
		h.searchErrors,
		h.superseded,
	)

	return h
}

// Registerer is where other components add their collectors.
func (h *MetricsHandler) Registerer() prometheus.Registerer {
	return h.registry
}

// RecordWeatherServiceCall records an OpenWeather API call
func (h *MetricsHandler) RecordWeatherServiceCall(ctx context.Context, endpoint string, success bool) {
	h.weatherServiceCalls.WithLabelValues(endpoint).Inc()
	if !success {
		h.weatherServiceErrors.WithLabelValues(endpoint).Inc()
	}
}

// RecordSearch records a search that reached the display
func (h *MetricsHandler) RecordSearch(ctx context.Context, path string, success bool) {
	h.searches.WithLabelValues(path).Inc()
	if !success {
		h.searchErrors.WithLabelValues(path).Inc()
	}
}

// RecordSuperseded records a search whose result was discarded
func (h *MetricsHandler) RecordSuperseded(ctx context.Context, path string) {
	h.superseded.WithLabelValues(path).Inc()
}

// HTTPHandler exposes the registry in Prometheus text format.
func (h *MetricsHandler) HTTPHandler() http.Handler {
	return promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{
		ErrorLog: zap.NewStdLog(h.logger),
	})
}
