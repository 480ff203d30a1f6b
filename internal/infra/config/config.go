package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Weather WeatherConfig `yaml:"weather"`
	Session SessionConfig `yaml:"session"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
}

// WeatherConfig points the widget at its upstream providers.
type WeatherConfig struct {
	ForecastBaseURL string        `yaml:"forecastBaseUrl"`
	GeocodingURL    string        `yaml:"geocodingUrl"`
	IconBaseURL     string        `yaml:"iconBaseUrl"`
	Language        string        `yaml:"language"`
	ForecastDays    int           `yaml:"forecastDays"`
	DefaultCity     string        `yaml:"defaultCity"`
	RequestTimeout  time.Duration `yaml:"requestTimeout"`
}

// SessionConfig controls where widget session state lives.
type SessionConfig struct {
	TTL    time.Duration `yaml:"ttl"`
	Valkey ValkeyConfig  `yaml:"valkey"`
}

// ValkeyConfig contains connection information for the shared session store.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// Load reads configuration from a YAML file, an optional .env file and
// environment variables, in that order of precedence (last wins).
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// loadDotEnv never overrides variables already set in the environment.
func loadDotEnv() error {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("WEATHER_FORECAST_BASE_URL"); v != "" {
		cfg.Weather.ForecastBaseURL = v
	}
	if v := os.Getenv("WEATHER_GEOCODING_URL"); v != "" {
		cfg.Weather.GeocodingURL = v
	}
	if v := os.Getenv("WEATHER_ICON_BASE_URL"); v != "" {
		cfg.Weather.IconBaseURL = v
	}
	if v := os.Getenv("WEATHER_LANGUAGE"); v != "" {
		cfg.Weather.Language = v
	}
	if v := os.Getenv("WEATHER_FORECAST_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Weather.ForecastDays = parsed
		}
	}
	if v := os.Getenv("WEATHER_DEFAULT_CITY"); v != "" {
		cfg.Weather.DefaultCity = v
	}
	if v := os.Getenv("WEATHER_REQUEST_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Weather.RequestTimeout = parsed
		}
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Session.TTL = parsed
		}
	}
	if v := os.Getenv("SESSION_VALKEY_ENABLED"); v != "" {
		cfg.Session.Valkey.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("SESSION_VALKEY_ADDR"); v != "" {
		cfg.Session.Valkey.Addr = v
	}
	if v := os.Getenv("SESSION_VALKEY_PREFIX"); v != "" {
		cfg.Session.Valkey.Prefix = v
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Weather: WeatherConfig{
			ForecastBaseURL: "https://api.open-meteo.com/v1",
			GeocodingURL:    "https://geocoding-api.open-meteo.com/v1/search",
			IconBaseURL:     "https://openweathermap.org/img/wn",
			Language:        "en",
			ForecastDays:    5,
			DefaultCity:     "London",
		},
		Session: SessionConfig{
			TTL: 30 * time.Minute,
			Valkey: ValkeyConfig{
				Enabled: false,
				Prefix:  "skycast",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.Weather.ForecastBaseURL) == "" {
		return errors.New("weather.forecastBaseUrl cannot be empty")
	}
	if strings.TrimSpace(c.Weather.GeocodingURL) == "" {
		return errors.New("weather.geocodingUrl cannot be empty")
	}
	if c.Weather.ForecastDays <= 0 || c.Weather.ForecastDays > 16 {
		return errors.New("weather.forecastDays must be between 1 and 16")
	}
	if strings.TrimSpace(c.Weather.DefaultCity) == "" {
		return errors.New("weather.defaultCity cannot be empty")
	}
	if c.Weather.RequestTimeout < 0 {
		return errors.New("weather.requestTimeout cannot be negative")
	}
	if c.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}
	if c.Session.Valkey.Enabled && strings.TrimSpace(c.Session.Valkey.Addr) == "" {
		return errors.New("session.valkey.addr cannot be empty when valkey is enabled")
	}
	return nil
}
