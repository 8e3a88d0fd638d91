package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/vzahanych/weather-widget/internal/forecast"
)

const DefaultIconBaseURL = "https://openweathermap.org/img/wn"

var currentTmpl = template.Must(template.New("current").Parse(
	`<div class="details current-weather">
    <p class="city">{{.City}} ({{.Date}})</p>
    <p>Temperature: {{.Temp}}°C</p>
    <p>Wind: {{.Wind}} M/S</p>
    <p>Humidity: {{.Humidity}}%</p>
    <div>
        <img src="{{.IconURL}}" alt="{{.Description}}">
        <p class="description">{{.Description}}</p>
    </div>
</div>`))

var cardTmpl = template.Must(template.New("card").Parse(
	`<li class="card">
    <h3>({{.Date}})</h3>
    <img src="{{.IconURL}}" alt="weather-icon">
    <h6>Temp: {{.Temp}}°C</h6>
    <h6>Wind: {{.Wind}} M/S</h6>
    <h6>Humidity: {{.Humidity}}%</h6>
</li>`))

// CardView holds the display strings of one forecast entry.
type CardView struct {
	City        string
	Date        string
	Temp        string
	Wind        string
	Humidity    int
	IconURL     string
	Description string
}

// Renderer turns forecast entries into markup. It holds no mutable state.
type Renderer struct {
	iconBaseURL string
}

func New(iconBaseURL string) *Renderer {
	if iconBaseURL == "" {
		iconBaseURL = DefaultIconBaseURL
	}
	return &Renderer{iconBaseURL: strings.TrimRight(iconBaseURL, "/")}
}

// FormatCelsius converts Kelvin and keeps exactly two decimals.
func FormatCelsius(kelvin float64) string {
	return strconv.FormatFloat(kelvin-forecast.KelvinOffset, 'f', 2, 64)
}

func formatWind(speed float64) string {
	return strconv.FormatFloat(speed, 'f', -1, 64)
}

func (r *Renderer) IconURL(icon string) string {
	return fmt.Sprintf("%s/%s@4x.png", r.iconBaseURL, icon)
}

func (r *Renderer) View(city string, e forecast.Entry) CardView {
	return CardView{
		City:        city,
		Date:        e.Date(),
		Temp:        FormatCelsius(e.TempK),
		Wind:        formatWind(e.WindSpeed),
		Humidity:    e.Humidity,
		IconURL:     r.IconURL(e.Icon),
		Description: e.Description,
	}
}

// Card renders the current conditions panel for index 0 and a compact
// forecast card otherwise.
func (r *Renderer) Card(city string, e forecast.Entry, index int) template.HTML {
	tmpl := cardTmpl
	if index == 0 {
		tmpl = currentTmpl
	}

	var buf bytes.Buffer
	// Both templates only reference CardView fields, so Execute cannot fail.
	_ = tmpl.Execute(&buf, r.View(city, e))
	return template.HTML(buf.String())
}

// Panels renders a reduced forecast into the two page regions.
func (r *Renderer) Panels(city string, days forecast.Daily) (current template.HTML, cards template.HTML) {
	var b strings.Builder
	for i, e := range days {
		html := r.Card(city, e, i)
		if i == 0 {
			current = html
			continue
		}
		b.WriteString(string(html))
	}
	return current, template.HTML(b.String())
}
