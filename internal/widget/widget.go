package widget

import (
	"html/template"
	"sync"

	"github.com/vzahanych/weather-widget/internal/forecast"
	"github.com/vzahanych/weather-widget/internal/render"
)

// HistorySource lists the cities shown in the dropdown.
type HistorySource interface {
	Cities() []string
}

// Widget is the server side state of the weather page: the search input,
// the two forecast panels, a pending alert and the history dropdown.
type Widget struct {
	mu       sync.Mutex
	renderer *render.Renderer
	history  HistorySource

	input    string
	city     string
	current  template.HTML
	cards    template.HTML
	alert    string
	dropdown Dropdown
}

// Snapshot is a copy of the widget state at one instant.
type Snapshot struct {
	Input        string        `json:"input"`
	City         string        `json:"city,omitempty"`
	Current      template.HTML `json:"current"`
	Cards        template.HTML `json:"cards"`
	Alert        string        `json:"alert,omitempty"`
	History      []string      `json:"history"`
	DropdownOpen bool          `json:"dropdown_open"`
}

func New(renderer *render.Renderer, history HistorySource) *Widget {
	return &Widget{
		renderer: renderer,
		history:  history,
	}
}

// SetInput records the text typed into the search box.
func (w *Widget) SetInput(value string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.input = value
}

// ShowForecast clears the input and both panels, then renders days.
func (w *Widget) ShowForecast(city string, days forecast.Daily) {
	current, cards := w.renderer.Panels(city, days)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.input = ""
	w.city = city
	w.current = current
	w.cards = cards
}

// Alert queues a message for the next page render.
func (w *Widget) Alert(message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.alert = message
}

// Focus opens the dropdown when there is history to show.
func (w *Widget) Focus() {
	n := len(w.history.Cities())

	w.mu.Lock()
	defer w.mu.Unlock()
	w.dropdown.Focus(n)
}

func (w *Widget) ClickOutside() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dropdown.ClickOutside()
}

// Select copies a history entry into the input without searching.
func (w *Widget) Select(city string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.input = w.dropdown.Select(city)
}

// Snapshot returns the current state without consuming the alert.
func (w *Widget) Snapshot() Snapshot {
	cities := w.history.Cities()

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked(cities)
}

// TakeSnapshot returns the current state and clears the pending alert, so an
// alert is shown exactly once.
func (w *Widget) TakeSnapshot() Snapshot {
	cities := w.history.Cities()

	w.mu.Lock()
	defer w.mu.Unlock()
	snap := w.snapshotLocked(cities)
	w.alert = ""
	return snap
}

func (w *Widget) snapshotLocked(cities []string) Snapshot {
	return Snapshot{
		Input:        w.input,
		City:         w.city,
		Current:      w.current,
		Cards:        w.cards,
		Alert:        w.alert,
		History:      cities,
		DropdownOpen: w.dropdown.Visible(len(cities)),
	}
}

// PageView adapts a snapshot to the page template.
func (s Snapshot) PageView() render.PageView {
	return render.PageView{
		Input:        s.Input,
		Cities:       s.History,
		DropdownOpen: s.DropdownOpen,
		Current:      s.Current,
		Cards:        s.Cards,
		Alert:        s.Alert,
	}
}
