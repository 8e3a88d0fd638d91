package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/vzahanych/weather-widget/internal/history"
	"github.com/vzahanych/weather-widget/internal/orchestrator"
	"github.com/vzahanych/weather-widget/internal/render"
	"github.com/vzahanych/weather-widget/internal/server/utils"
	"github.com/vzahanych/weather-widget/internal/widget"
	apperrors "github.com/vzahanych/weather-widget/pkg/errors"
)

// WidgetHandler serves the weather page and the form posts behind it. Every
// post redirects back to the page, which shows the outcome.
type WidgetHandler struct {
	orchestrator *orchestrator.Orchestrator
	widget       *widget.Widget
	history      *history.Store
	logger       *zap.Logger
}

func NewWidgetHandler(orch *orchestrator.Orchestrator, w *widget.Widget, store *history.Store, logger *zap.Logger) *WidgetHandler {
	return &WidgetHandler{
		orchestrator: orch,
		widget:       w,
		history:      store,
		logger:       logger,
	}
}

// Page renders the widget and consumes the pending alert.
func (h *WidgetHandler) Page(c *gin.Context) {
	snap := h.widget.TakeSnapshot()
	c.HTML(http.StatusOK, render.PageTemplateName, snap.PageView())
}

func (h *WidgetHandler) Search(c *gin.Context) {
	reqLogger := h.logger.With(zap.String("request_id", utils.GetRequestIDFromGinContext(c)))

	var req SearchRequest
	if !h.bind(c, reqLogger, &req) {
		return
	}

	h.widget.SetInput(req.City)

	err := h.orchestrator.SearchCity(utils.PipelineContext(c), req.City)
	h.recordOutcome(c, reqLogger, orchestrator.PathCity, err)

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *WidgetHandler) Locate(c *gin.Context) {
	reqLogger := h.logger.With(zap.String("request_id", utils.GetRequestIDFromGinContext(c)))

	var req LocateRequest
	if !h.bind(c, reqLogger, &req) {
		return
	}

	loc := orchestrator.StaticLocator{Err: orchestrator.LocatorError(req.Error)}
	if loc.Err == nil {
		loc.Lat, loc.Lon = *req.Lat, *req.Lon
	}

	err := h.orchestrator.SearchLocation(utils.PipelineContext(c), loc)
	h.recordOutcome(c, reqLogger, orchestrator.PathLocation, err)

	c.Redirect(http.StatusSeeOther, "/")
}

// Select copies a history entry into the search input. It never searches.
func (h *WidgetHandler) Select(c *gin.Context) {
	reqLogger := h.logger.With(zap.String("request_id", utils.GetRequestIDFromGinContext(c)))

	var req SelectRequest
	if !h.bind(c, reqLogger, &req) {
		return
	}

	h.widget.Select(req.City)
	c.Redirect(http.StatusSeeOther, "/")
}

// Focus opens the history dropdown when there is history to show.
func (h *WidgetHandler) Focus(c *gin.Context) {
	h.widget.Focus()
	c.Redirect(http.StatusSeeOther, "/")
}

// Blur closes the history dropdown.
func (h *WidgetHandler) Blur(c *gin.Context) {
	h.widget.ClickOutside()
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *WidgetHandler) History(c *gin.Context) {
	c.JSON(http.StatusOK, h.history.Cities())
}

func (h *WidgetHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.widget.Snapshot())
}

func (h *WidgetHandler) bind(c *gin.Context, reqLogger *zap.Logger, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		reqLogger.Warn("Invalid request parameters", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    "INVALID_PARAMS",
			Details: err.Error(),
		})
		return false
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		reqLogger.Warn("Request validation failed", zap.Any("errors", errs))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    "VALIDATION_FAILED",
			Details: errs,
		})
		return false
	}

	return true
}

// recordOutcome logs the search result and tags the request span with it.
func (h *WidgetHandler) recordOutcome(c *gin.Context, reqLogger *zap.Logger, path string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = apperrors.Code(err)
	}
	utils.GetSpanFromGinContext(c).SetAttributes(
		attribute.String("search.path", path),
		attribute.String("search.outcome", outcome),
	)

	switch {
	case err == nil:
		reqLogger.Info("Search completed", zap.String("path", path))
	case apperrors.IsCode(err, apperrors.CodeEmptyQuery), apperrors.IsCode(err, apperrors.CodeSuperseded):
		reqLogger.Debug("Search produced no output", zap.String("path", path), zap.Error(err))
	default:
		reqLogger.Info("Search ended with an alert", zap.String("path", path), zap.Error(err))
	}
}
