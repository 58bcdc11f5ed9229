package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Modes
const (
	ModeServer  = "server"
	ModeRequest = "request"
)

// Load loads configuration from a YAML file and environment variables.
// A .env file in the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cleanPath := filepath.Clean(path)
	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}

	data, err := os.ReadFile(absPath) // #nosec G304 -- Path sanitized with filepath.Clean and filepath.Abs
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse expands environment variables in data, decodes it and applies defaults.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// DefaultDataSources returns the four registered data sources with their public endpoints.
// Credentials are read from the environment.
func DefaultDataSources() []DataSourceConfig {
	oneInch := func(id, chain int64) DataSourceConfig {
		return DataSourceConfig{
			ID:      id,
			Type:    "1inch",
			Enabled: true,
			Config: map[string]interface{}{
				"chain_id": chain,
				"api_key":  os.Getenv("ONEINCH_API_KEY"),
			},
		}
	}
	arken := func(id, chain int64) DataSourceConfig {
		return DataSourceConfig{
			ID:      id,
			Type:    "arken",
			Enabled: true,
			Config: map[string]interface{}{
				"chain_id": chain,
				"username": os.Getenv("ARKEN_USERNAME"),
				"token":    os.Getenv("ARKEN_TOKEN"),
			},
		}
	}
	return []DataSourceConfig{
		oneInch(715, 1),
		arken(716, 1),
		oneInch(717, 56),
		arken(718, 56),
	}
}

// applyDefaults sets default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Mode == "" {
		cfg.Mode = ModeServer
	}

	// Server defaults
	if cfg.Server.HTTP.Addr == "" {
		cfg.Server.HTTP.Addr = ":8080"
	}
	if cfg.Server.WebSocket.Enabled && cfg.Server.WebSocket.Addr == "" {
		cfg.Server.WebSocket.Addr = ":8081"
	}
	if cfg.Server.RequestTimeout.ToDuration() == 0 {
		cfg.Server.RequestTimeout = Duration(30 * time.Second)
	}

	// Script defaults: a small validator set with a strict majority
	if cfg.Script.AskCount == 0 {
		cfg.Script.AskCount = 4
	}
	if cfg.Script.MinCount == 0 {
		cfg.Script.MinCount = 3
	}

	if len(cfg.DataSources) == 0 {
		cfg.DataSources = DefaultDataSources()
	}

	// Metrics defaults
	if cfg.Metrics.Enabled && cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = ":9091"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// EnabledDataSources returns the enabled data source configurations.
func (c *Config) EnabledDataSources() []DataSourceConfig {
	enabled := make([]DataSourceConfig, 0, len(c.DataSources))
	for _, ds := range c.DataSources {
		if ds.Enabled {
			enabled = append(enabled, ds)
		}
	}
	return enabled
}

// NormalizeMode converts mode string to lowercase.
func (c *Config) NormalizeMode() string {
	return strings.ToLower(c.Mode)
}

// IsServerMode returns true if the API server should run.
func (c *Config) IsServerMode() bool {
	return c.NormalizeMode() == ModeServer
}
