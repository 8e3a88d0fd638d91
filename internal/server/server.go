package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vzahanych/weather-widget/internal/config"
	"github.com/vzahanych/weather-widget/internal/history"
	"github.com/vzahanych/weather-widget/internal/orchestrator"
	"github.com/vzahanych/weather-widget/internal/render"
	"github.com/vzahanych/weather-widget/internal/server/handlers"
	"github.com/vzahanych/weather-widget/internal/server/middlewares"
	"github.com/vzahanych/weather-widget/internal/widget"
	"github.com/vzahanych/weather-widget/pkg/telemetry"
)

// Deps are the application parts the HTTP surface is built on.
type Deps struct {
	Orchestrator *orchestrator.Orchestrator
	Widget       *widget.Widget
	History      *history.Store
	Metrics      *handlers.MetricsHandler
}

type Server struct {
	engine *gin.Engine
	server *http.Server
	deps   Deps
	logger *zap.Logger
	tele   *telemetry.Telemetry
}

func NewServer(cfg config.ServerConfig, deps Deps, logger *zap.Logger, tele *telemetry.Telemetry) *Server {
	if deps.Metrics == nil {
		deps.Metrics = handlers.NewMetricsHandler(logger)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middlewares.RequestIDMiddleware(logger))
	engine.Use(middlewares.LoggingMiddleware(logger, true, "/health", "/metrics"))
	engine.Use(middlewares.RecoveryMiddleware(logger, true))
	engine.Use(middlewares.TelemetryMiddleware(logger, tele))
	engine.Use(middlewares.NewMetricsMiddleware(logger, tele, deps.Metrics.Registerer()).Handler())

	engine.SetHTMLTemplate(render.PageTemplate())

	s := &Server{
		engine: engine,
		deps:   deps,
		logger: logger,
		tele:   tele,
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}

	return s
}

func (s *Server) setupRoutes() {
	widgetHandler := handlers.NewWidgetHandler(s.deps.Orchestrator, s.deps.Widget, s.deps.History, s.logger)

	// Widget page and form posts
	s.engine.GET("/", widgetHandler.Page)
	s.engine.POST("/search", widgetHandler.Search)
	s.engine.POST("/locate", widgetHandler.Locate)
	s.engine.POST("/history/select", widgetHandler.Select)
	s.engine.POST("/history/focus", widgetHandler.Focus)
	s.engine.POST("/history/blur", widgetHandler.Blur)

	api := s.engine.Group("/api")
	api.GET("/history", widgetHandler.History)
	api.GET("/widget", widgetHandler.State)

	// Health endpoints (Kubernetes friendly)
	healthHandler := handlers.NewHealthHandler(s.logger, s.deps.History)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/health/live", healthHandler.Liveness)
	s.engine.GET("/health/ready", healthHandler.Readiness)

	// Monitoring endpoints
	s.engine.GET("/metrics", gin.WrapH(s.deps.Metrics.HTTPHandler()))
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Start() error {
	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
