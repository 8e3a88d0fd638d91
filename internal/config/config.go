package config

import (
	"sync/atomic"
)

var configValue atomic.Value

func GetConfig() *Config {
	return configValue.Load().(*Config)
}

func SetConfig(cfg *Config) {
	configValue.Store(cfg)
}

type Config struct {
	Version     string            `mapstructure:"version" yaml:"version"`
	Environment string            `mapstructure:"environment" yaml:"environment"`
	Server      ServerConfig      `mapstructure:"server" yaml:"server"`
	OpenWeather OpenWeatherConfig `mapstructure:"openweather" yaml:"openweather"`
	Forecast    ForecastConfig    `mapstructure:"forecast" yaml:"forecast"`
	History     HistoryConfig     `mapstructure:"history" yaml:"history"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry" yaml:"telemetry"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port" yaml:"port"`
	Host         string `mapstructure:"host" yaml:"host"`
	ReadTimeout  int    `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout" yaml:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout" yaml:"idle_timeout"`
}

// OpenWeatherConfig points the geocoding and forecast clients at the API.
// Timeout is in seconds; 0 leaves requests unbounded.
type OpenWeatherConfig struct {
	APIKey      string  `mapstructure:"api_key" yaml:"api_key"`
	GeoBaseURL  string  `mapstructure:"geo_base_url" yaml:"geo_base_url"`
	DataBaseURL string  `mapstructure:"data_base_url" yaml:"data_base_url"`
	IconBaseURL string  `mapstructure:"icon_base_url" yaml:"icon_base_url"`
	Timeout     int     `mapstructure:"timeout" yaml:"timeout"`
	RateLimit   float64 `mapstructure:"rate_limit" yaml:"rate_limit"`
	Burst       int     `mapstructure:"burst" yaml:"burst"`
}

type ForecastConfig struct {
	// DayKey is "date" or "day-of-month".
	DayKey string `mapstructure:"day_key" yaml:"day_key"`
}

// HistoryConfig selects the storage backing the search history.
// Driver is one of memory, file, sqlite, valkey, redis, postgres.
type HistoryConfig struct {
	Driver   string `mapstructure:"driver" yaml:"driver"`
	Key      string `mapstructure:"key" yaml:"key"`
	Path     string `mapstructure:"path" yaml:"path"`
	DSN      string `mapstructure:"dsn" yaml:"dsn"`
	Address  string `mapstructure:"address" yaml:"address"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
	Prefix   string `mapstructure:"prefix" yaml:"prefix"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`
}

type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled" yaml:"enabled"`
	Endpoint    string `mapstructure:"endpoint" yaml:"endpoint"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Version:     "1.0.0",
		Environment: "development",
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  60,
		},
		OpenWeather: OpenWeatherConfig{
			APIKey:      "",
			GeoBaseURL:  "https://api.openweathermap.org/geo/1.0",
			DataBaseURL: "https://api.openweathermap.org/data/2.5",
			IconBaseURL: "https://openweathermap.org/img/wn",
			Timeout:     0,
			RateLimit:   0,
			Burst:       1,
		},
		Forecast: ForecastConfig{
			DayKey: "date",
		},
		History: HistoryConfig{
			Driver:  "file",
			Key:     "citySearchHistory",
			Path:    "./data",
			DSN:     "",
			Address: "localhost:6379",
			DB:      0,
			Prefix:  "weather-widget",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			Endpoint:    "tempo:4317",
			ServiceName: "weather-widget",
		},
	}
}
