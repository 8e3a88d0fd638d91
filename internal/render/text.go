package render

import (
	"fmt"
	"io"

	"github.com/vzahanych/weather-widget/internal/forecast"
)

// Text writes the same two card shapes as plain text for terminals.
func (r *Renderer) Text(w io.Writer, city string, days forecast.Daily) error {
	for i, e := range days {
		v := r.View(city, e)

		var err error
		if i == 0 {
			_, err = fmt.Fprintf(w, "%s (%s)\n  Temperature: %s°C\n  Wind: %s M/S\n  Humidity: %d%%\n  %s\n\n",
				v.City, v.Date, v.Temp, v.Wind, v.Humidity, v.Description)
		} else {
			_, err = fmt.Fprintf(w, "(%s)  Temp: %s°C  Wind: %s M/S  Humidity: %d%%\n",
				v.Date, v.Temp, v.Wind, v.Humidity)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
