package config

import "time"

// Config is the root configuration structure
type Config struct {
	Mode        string             `yaml:"mode"`
	Server      ServerConfig       `yaml:"server"`
	Script      ScriptConfig       `yaml:"script"`
	DataSources []DataSourceConfig `yaml:"data_sources"`
	Metrics     MetricsConfig      `yaml:"metrics"`
	Logging     LoggingConfig      `yaml:"logging"`
}

// ServerConfig configures the API server
type ServerConfig struct {
	HTTP           HTTPConfig `yaml:"http"`
	WebSocket      WSConfig   `yaml:"websocket"`
	RequestTimeout Duration   `yaml:"request_timeout"`
}

// HTTPConfig configures the HTTP server
type HTTPConfig struct {
	Addr string    `yaml:"addr"`
	TLS  TLSConfig `yaml:"tls"`
}

// WSConfig configures the WebSocket server
type WSConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// TLSConfig holds TLS certificate configuration
type TLSConfig struct {
	Enabled bool   `yaml:"enabled"`
	Cert    string `yaml:"cert"`
	Key     string `yaml:"key"`
}

// ScriptConfig configures the simulated validator set used for local requests
type ScriptConfig struct {
	AskCount int `yaml:"ask_count"` // validators asked per request
	MinCount int `yaml:"min_count"` // validators required to respond
}

// DataSourceConfig configures one data source
type DataSourceConfig struct {
	ID      int64                  `yaml:"id"`
	Type    string                 `yaml:"type"`
	Enabled bool                   `yaml:"enabled"`
	Config  map[string]interface{} `yaml:"config"`
}

// MetricsConfig configures Prometheus metrics
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Path    string `yaml:"path"`
}

// LoggingConfig configures logging
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Duration is a wrapper around time.Duration for YAML parsing
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	td, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(td)
	return nil
}

// ToDuration converts Duration to time.Duration
func (d Duration) ToDuration() time.Duration {
	return time.Duration(d)
}
