package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://api.openweathermap.org/geo/1.0", cfg.OpenWeather.GeoBaseURL)
	assert.Equal(t, "date", cfg.Forecast.DayKey)
	assert.Equal(t, "citySearchHistory", cfg.History.Key)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 9090
forecast:
  day_key: day-of-month
history:
  driver: sqlite
  path: /var/lib/weather
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("WW_OPENWEATHER_API_KEY", "secret")
	t.Setenv("WW_LOGGING_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "day-of-month", cfg.Forecast.DayKey)
	assert.Equal(t, "sqlite", cfg.History.Driver)
	assert.Equal(t, "/var/lib/weather", cfg.History.Path)
	assert.Equal(t, "secret", cfg.OpenWeather.APIKey)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched keys keep their defaults
	assert.Equal(t, "citySearchHistory", cfg.History.Key)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad day key", mutate: func(c *Config) { c.Forecast.DayKey = "week" }, wantErr: "forecast.day_key"},
		{name: "bad driver", mutate: func(c *Config) { c.History.Driver = "etcd" }, wantErr: "history.driver"},
		{name: "empty key", mutate: func(c *Config) { c.History.Key = "" }, wantErr: "history.key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
