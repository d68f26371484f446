// config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type OpenSkyConfig struct {
	BaseURL     string `yaml:"base_url"`
	TimeoutStr  string `yaml:"timeout"`
	CacheTTLStr string `yaml:"cache_ttl"`

	// Parsed durations
	Timeout  time.Duration `yaml:"-"`
	CacheTTL time.Duration `yaml:"-"`
}

type AnalysisConfig struct {
	DefaultPriceMin   float64 `yaml:"default_price_min"`
	DefaultPriceMax   float64 `yaml:"default_price_max"`
	DefaultMinFlights int     `yaml:"default_min_flights"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	OpenSky  OpenSkyConfig  `yaml:"opensky"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

// Load reads configuration from a yaml file, with environment variables
// (optionally via .env) overriding the server port and OpenSky base URL.
// A missing config file is not an error; defaults apply.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Server: ServerConfig{Port: "8080"},
		OpenSky: OpenSkyConfig{
			BaseURL:     "https://opensky-network.org/api",
			TimeoutStr:  "15s",
			CacheTTLStr: "1h",
		},
		Analysis: AnalysisConfig{
			DefaultPriceMin:   100,
			DefaultPriceMax:   500,
			DefaultMinFlights: 3,
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if base := os.Getenv("OPENSKY_BASE_URL"); base != "" {
		cfg.OpenSky.BaseURL = base
	}

	var err error
	cfg.OpenSky.Timeout, err = time.ParseDuration(cfg.OpenSky.TimeoutStr)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse opensky timeout: %w", err)
	}
	cfg.OpenSky.CacheTTL, err = time.ParseDuration(cfg.OpenSky.CacheTTLStr)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse opensky cache_ttl: %w", err)
	}

	if cfg.Analysis.DefaultPriceMin < 0 || cfg.Analysis.DefaultPriceMin > cfg.Analysis.DefaultPriceMax {
		return Config{}, fmt.Errorf("invalid default price range [%v, %v]",
			cfg.Analysis.DefaultPriceMin, cfg.Analysis.DefaultPriceMax)
	}
	if cfg.Analysis.DefaultMinFlights < 1 {
		return Config{}, fmt.Errorf("default_min_flights must be positive, got %d",
			cfg.Analysis.DefaultMinFlights)
	}

	return cfg, nil
}
