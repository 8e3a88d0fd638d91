package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vzahanych/weather-widget/internal/config"
	"github.com/vzahanych/weather-widget/internal/forecast"
	"github.com/vzahanych/weather-widget/internal/render"
)

func TestConfigCmd_MasksSecrets(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.OpenWeather.APIKey = "secret-key"
	cfg.History.Password = "hunter2"
	config.SetConfig(cfg)

	var out bytes.Buffer
	cmd := configCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "api_key: "+masked)
	assert.Contains(t, out.String(), "day_key: date")
	assert.NotContains(t, out.String(), "secret-key")
	assert.NotContains(t, out.String(), "hunter2")
	// the stored config is untouched
	assert.Equal(t, "secret-key", config.GetConfig().OpenWeather.APIKey)
}

func TestTextDisplay(t *testing.T) {
	var out, errOut bytes.Buffer
	d := textDisplay{renderer: render.New(""), out: &out, errOut: &errOut}

	d.ShowForecast("Paris", forecast.Daily{
		forecast.NewEntry("2024-07-01 12:00:00", 300, 65, 5.2, "04d", "broken clouds"),
	})
	d.Alert("No coordinates found for Atlantis")

	assert.Contains(t, out.String(), "Paris (2024-07-01)")
	assert.Equal(t, "No coordinates found for Atlantis\n", errOut.String())
}
