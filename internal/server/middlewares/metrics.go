package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/vzahanych/weather-widget/pkg/telemetry"
)

type MetricsMiddleware struct {
	logger *zap.Logger
	tele   *telemetry.Telemetry

	requestsTotal    *prometheus.CounterVec
	requestDurations *prometheus.HistogramVec
	activeRequests   prometheus.Gauge
}

// NewMetricsMiddleware registers the HTTP collectors with reg.
func NewMetricsMiddleware(logger *zap.Logger, tele *telemetry.Telemetry, reg prometheus.Registerer) *MetricsMiddleware {
	m := &MetricsMiddleware{
		logger: logger,
		tele:   tele,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Number of active HTTP requests",
		}),
	}

	reg.MustRegister(m.requestsTotal, m.requestDurations, m.activeRequests)

	return m
}

func (m *MetricsMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		m.activeRequests.Inc()
		defer m.activeRequests.Dec()

		c.Next()

		duration := time.Since(start).Seconds()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		status := c.Writer.Status()

		m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.requestDurations.WithLabelValues(method, route).Observe(duration)

		if m.tele.IsEnabled() {
			m.logger.Debug("HTTP metrics recorded",
				zap.String("method", method),
				zap.String("route", route),
				zap.Int("status", status),
				zap.Float64("duration", duration))
		}
	}
}
