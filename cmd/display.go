package cmd

import (
	"fmt"
	"io"

	"github.com/vzahanych/weather-widget/internal/forecast"
	"github.com/vzahanych/weather-widget/internal/render"
)

// textDisplay prints forecasts to out and alerts to errOut.
type textDisplay struct {
	renderer *render.Renderer
	out      io.Writer
	errOut   io.Writer
}

func (d textDisplay) ShowForecast(city string, days forecast.Daily) {
	if err := d.renderer.Text(d.out, city, days); err != nil {
		fmt.Fprintln(d.errOut, err)
	}
}

func (d textDisplay) Alert(message string) {
	fmt.Fprintln(d.errOut, message)
}
