package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vzahanych/weather-widget/internal/config"
	"github.com/vzahanych/weather-widget/internal/forecast"
	"github.com/vzahanych/weather-widget/internal/history"
	"github.com/vzahanych/weather-widget/internal/orchestrator"
	"github.com/vzahanych/weather-widget/internal/render"
	"github.com/vzahanych/weather-widget/internal/server/handlers"
	"github.com/vzahanych/weather-widget/internal/service"
	"github.com/vzahanych/weather-widget/internal/widget"
	"github.com/vzahanych/weather-widget/pkg/telemetry"
)

type stubWeather struct {
	known map[string]forecast.Coordinate
}

func (s stubWeather) Name() string { return "stub" }

func (s stubWeather) Geocode(_ context.Context, city string) (forecast.Coordinate, error) {
	coord, ok := s.known[city]
	if !ok {
		return forecast.Coordinate{}, fmt.Errorf("geocode %q: %w", city, service.ErrNoResults)
	}
	return coord, nil
}

func (s stubWeather) ReverseGeocode(_ context.Context, lat, lon float64) (forecast.Coordinate, error) {
	return forecast.Coordinate{Lat: lat, Lon: lon, Name: "London"}, nil
}

func (s stubWeather) Forecast(context.Context, forecast.Coordinate) ([]forecast.Entry, error) {
	return []forecast.Entry{
		forecast.NewEntry("2024-07-01 12:00:00", 300, 65, 5.2, "04d", "broken clouds"),
		forecast.NewEntry("2024-07-01 15:00:00", 301, 60, 5.0, "04d", "broken clouds"),
		forecast.NewEntry("2024-07-02 12:00:00", 295, 55, 3.3, "01d", "clear sky"),
	}, nil
}

type pingGateway struct {
	*history.MemoryGateway
	err error
}

func (p pingGateway) Ping(context.Context) error { return p.err }

func newTestServer(t *testing.T, pingErr error) *Server {
	t.Helper()

	logger := zaptest.NewLogger(t)
	tele := &telemetry.Telemetry{}

	store := history.Load(context.Background(), pingGateway{history.NewMemoryGateway(), pingErr}, "", logger)
	w := widget.New(render.New(""), store)
	weather := stubWeather{known: map[string]forecast.Coordinate{
		"Paris": {Lat: 48.85, Lon: 2.35, Name: "Paris"},
	}}

	metrics := handlers.NewMetricsHandler(logger)
	orch := orchestrator.New(store, weather, w, forecast.ByDate, logger, tele)
	orch.SetMetricsRecorder(metrics)

	return NewServer(config.NewDefaultConfig().Server, Deps{
		Orchestrator: orch,
		Widget:       w,
		History:      store,
		Metrics:      metrics,
	}, logger, tele)
}

func do(s *Server, method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServer_PageRenders(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(s, http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="city-search"`)
	assert.Contains(t, rec.Body.String(), `id="drop_list"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_SearchShowsForecastAndRecordsHistory(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(s, http.MethodPost, "/search", url.Values{"city": {" Paris "}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	page := do(s, http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, page, "Paris (2024-07-01)")
	assert.Contains(t, page, "(2024-07-02)")
	assert.Contains(t, page, `data-city="Paris"`)

	var cities []string
	rec = do(s, http.MethodGet, "/api/history", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cities))
	assert.Equal(t, []string{"Paris"}, cities)
}

func TestServer_SearchUnknownCityAlertsOnce(t *testing.T) {
	s := newTestServer(t, nil)

	do(s, http.MethodPost, "/search", url.Values{"city": {"Atlantis"}})

	first := do(s, http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, first, "No coordinates found for Atlantis")

	second := do(s, http.MethodGet, "/", nil).Body.String()
	assert.NotContains(t, second, "No coordinates found for Atlantis")
}

func TestServer_SearchOnlyTrimsTheQuery(t *testing.T) {
	s := newTestServer(t, nil)

	padded := strings.Repeat(" ", 300) + "Paris" + strings.Repeat("\t", 300)
	rec := do(s, http.MethodPost, "/search", url.Values{"city": {padded}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var snap widget.Snapshot
	require.NoError(t, json.Unmarshal(do(s, http.MethodGet, "/api/widget", nil).Body.Bytes(), &snap))
	assert.Equal(t, "Paris", snap.City)
	assert.Equal(t, []string{"Paris"}, snap.History)

	long := strings.Repeat("x", 500)
	do(s, http.MethodPost, "/search", url.Values{"city": {long}})
	require.NoError(t, json.Unmarshal(do(s, http.MethodGet, "/api/history", nil).Body.Bytes(), &snap.History))
	assert.Equal(t, []string{"Paris", long}, snap.History)
}

func TestServer_EmptySearchDoesNothing(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(s, http.MethodPost, "/search", url.Values{"city": {"   "}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var snap widget.Snapshot
	require.NoError(t, json.Unmarshal(do(s, http.MethodGet, "/api/widget", nil).Body.Bytes(), &snap))
	assert.Empty(t, snap.Alert)
	assert.Empty(t, snap.Current)
	assert.Empty(t, snap.History)
}

func TestServer_Locate(t *testing.T) {
	t.Run("position", func(t *testing.T) {
		s := newTestServer(t, nil)

		rec := do(s, http.MethodPost, "/locate", url.Values{"lat": {"51.5"}, "lon": {"-0.12"}})
		require.Equal(t, http.StatusSeeOther, rec.Code)

		var snap widget.Snapshot
		require.NoError(t, json.Unmarshal(do(s, http.MethodGet, "/api/widget", nil).Body.Bytes(), &snap))
		assert.Equal(t, "London", snap.City)
		assert.Empty(t, snap.History)
	})

	t.Run("equator is a valid position", func(t *testing.T) {
		s := newTestServer(t, nil)
		rec := do(s, http.MethodPost, "/locate", url.Values{"lat": {"0"}, "lon": {"0"}})
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})

	t.Run("denied", func(t *testing.T) {
		s := newTestServer(t, nil)

		rec := do(s, http.MethodPost, "/locate", url.Values{"lat": {""}, "lon": {""}, "error": {"denied"}})
		require.Equal(t, http.StatusSeeOther, rec.Code)

		var snap widget.Snapshot
		require.NoError(t, json.Unmarshal(do(s, http.MethodGet, "/api/widget", nil).Body.Bytes(), &snap))
		assert.Equal(t, orchestrator.MsgGeoPermissionDenied, snap.Alert)
	})

	t.Run("invalid", func(t *testing.T) {
		s := newTestServer(t, nil)

		for _, form := range []url.Values{
			{},
			{"lat": {"200"}, "lon": {"0"}},
			{"lat": {"0"}, "lon": {"-181"}},
			{"error": {"exploded"}},
		} {
			rec := do(s, http.MethodPost, "/locate", form)
			assert.Equal(t, http.StatusBadRequest, rec.Code, form.Encode())
		}
	})
}

func TestServer_SelectFillsInputWithoutSearching(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(s, http.MethodPost, "/history/select", url.Values{"city": {"Paris"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var snap widget.Snapshot
	require.NoError(t, json.Unmarshal(do(s, http.MethodGet, "/api/widget", nil).Body.Bytes(), &snap))
	assert.Equal(t, "Paris", snap.Input)
	assert.Empty(t, snap.Current)

	assert.Equal(t, http.StatusBadRequest, do(s, http.MethodPost, "/history/select", url.Values{}).Code)
}

func TestServer_DropdownFocusAndBlur(t *testing.T) {
	s := newTestServer(t, nil)
	state := func() widget.Snapshot {
		var snap widget.Snapshot
		require.NoError(t, json.Unmarshal(do(s, http.MethodGet, "/api/widget", nil).Body.Bytes(), &snap))
		return snap
	}

	// nothing to show yet
	require.Equal(t, http.StatusSeeOther, do(s, http.MethodPost, "/history/focus", nil).Code)
	assert.False(t, state().DropdownOpen)

	do(s, http.MethodPost, "/search", url.Values{"city": {"Paris"}})

	do(s, http.MethodPost, "/history/focus", nil)
	assert.True(t, state().DropdownOpen)
	assert.Contains(t, do(s, http.MethodGet, "/", nil).Body.String(), `id="drop_list" class="dropdown"`)

	require.Equal(t, http.StatusSeeOther, do(s, http.MethodPost, "/history/blur", nil).Code)
	assert.False(t, state().DropdownOpen)

	do(s, http.MethodPost, "/history/focus", nil)
	do(s, http.MethodPost, "/history/select", url.Values{"city": {"Paris"}})
	snap := state()
	assert.False(t, snap.DropdownOpen)
	assert.Equal(t, "Paris", snap.Input)
}

// One widget serves every client: an alert raised by one request is shown on
// whichever page render comes next.
func TestServer_WidgetStateIsShared(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(url.Values{"city": {"Atlantis"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = "10.0.0.1:1234"
	s.Handler().ServeHTTP(httptest.NewRecorder(), req)

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, other)

	assert.Contains(t, rec.Body.String(), "No coordinates found for Atlantis")
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t, nil)
	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/health/live", nil).Code)
	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/health/ready", nil).Code)

	down := newTestServer(t, errors.New("connection refused"))
	rec := do(down, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestServer_Metrics(t *testing.T) {
	s := newTestServer(t, nil)

	do(s, http.MethodPost, "/search", url.Values{"city": {"Paris"}})
	do(s, http.MethodPost, "/search", url.Values{"city": {"Atlantis"}})

	rec := do(s, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `http_requests_total{method="POST",route="/search",status="303"} 2`)
	assert.Contains(t, body, `searches_total{path="city"} 2`)
	assert.Contains(t, body, `search_errors_total{path="city"} 1`)
	assert.Contains(t, body, "http_active_requests 1")
	assert.Contains(t, body, `http_request_duration_seconds_count{method="POST",route="/search"} 2`)
	assert.Contains(t, body, "go_goroutines")
}

func TestServer_RequestIDIsPropagated(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}
