package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vzahanych/weather-widget/internal/forecast"
	"github.com/vzahanych/weather-widget/internal/render"
)

type staticHistory []string

func (h staticHistory) Cities() []string {
	return []string(h)
}

func days() forecast.Daily {
	return forecast.Daily{
		forecast.NewEntry("2024-07-01 12:00:00", 300, 65, 5.2, "04d", "broken clouds"),
		forecast.NewEntry("2024-07-02 12:00:00", 290.15, 60, 3, "01d", "clear sky"),
	}
}

func TestWidget_ShowForecastClearsInput(t *testing.T) {
	w := New(render.New(""), staticHistory{})
	w.SetInput("Paris")

	w.ShowForecast("Paris", days())

	snap := w.Snapshot()
	assert.Empty(t, snap.Input)
	assert.Equal(t, "Paris", snap.City)
	assert.Contains(t, string(snap.Current), "Paris (2024-07-01)")
	assert.Contains(t, string(snap.Cards), "(2024-07-02)")
}

func TestWidget_ShowForecastReplacesPanels(t *testing.T) {
	w := New(render.New(""), staticHistory{})
	w.ShowForecast("Paris", days())
	w.ShowForecast("Tokyo", days()[:1])

	snap := w.Snapshot()
	assert.Contains(t, string(snap.Current), "Tokyo")
	assert.NotContains(t, string(snap.Current), "Paris")
	assert.Empty(t, snap.Cards)
}

func TestWidget_AlertKeepsPanelsAndInput(t *testing.T) {
	w := New(render.New(""), staticHistory{})
	w.ShowForecast("Paris", days())
	w.SetInput("Atlantis")

	w.Alert("No coordinates found for Atlantis")

	snap := w.TakeSnapshot()
	assert.Equal(t, "No coordinates found for Atlantis", snap.Alert)
	assert.Equal(t, "Atlantis", snap.Input)
	assert.Contains(t, string(snap.Current), "Paris")

	// shown once
	assert.Empty(t, w.TakeSnapshot().Alert)
}

func TestWidget_Dropdown(t *testing.T) {
	t.Run("focus without history stays closed", func(t *testing.T) {
		w := New(render.New(""), staticHistory{})
		w.Focus()
		assert.False(t, w.Snapshot().DropdownOpen)
	})

	t.Run("focus, select", func(t *testing.T) {
		w := New(render.New(""), staticHistory{"Paris", "Tokyo"})

		w.Focus()
		require.True(t, w.Snapshot().DropdownOpen)

		w.Select("Tokyo")

		snap := w.Snapshot()
		assert.False(t, snap.DropdownOpen)
		assert.Equal(t, "Tokyo", snap.Input)
		assert.Equal(t, []string{"Paris", "Tokyo"}, snap.History)
		// selecting never renders a forecast
		assert.Empty(t, snap.Current)
	})

	t.Run("click outside hides", func(t *testing.T) {
		w := New(render.New(""), staticHistory{"Paris"})
		w.Focus()
		w.ClickOutside()
		assert.False(t, w.Snapshot().DropdownOpen)
	})
}

func TestSnapshot_PageView(t *testing.T) {
	snap := Snapshot{Input: "Par", History: []string{"Paris"}, DropdownOpen: true, Alert: "x"}

	view := snap.PageView()

	assert.Equal(t, "Par", view.Input)
	assert.Equal(t, []string{"Paris"}, view.Cities)
	assert.True(t, view.DropdownOpen)
	assert.Equal(t, "x", view.Alert)
}
