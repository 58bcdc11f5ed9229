package config

import (
	"fmt"
	"os"
	"strings"
)

// Validate checks configuration for errors
func Validate(cfg *Config) error {
	mode := cfg.NormalizeMode()
	if mode != ModeServer && mode != ModeRequest {
		return fmt.Errorf("%w: %s (must be 'server' or 'request')", ErrInvalidMode, cfg.Mode)
	}

	if cfg.IsServerMode() {
		if err := validateServerConfig(&cfg.Server); err != nil {
			return fmt.Errorf("server config: %w", err)
		}
	}

	if cfg.Script.MinCount < 1 || cfg.Script.AskCount < cfg.Script.MinCount {
		return fmt.Errorf("script config: %w (ask_count=%d, min_count=%d)",
			ErrInvalidCounts, cfg.Script.AskCount, cfg.Script.MinCount)
	}

	seen := make(map[int64]bool, len(cfg.DataSources))
	for i, ds := range cfg.DataSources {
		if err := validateDataSourceConfig(&ds); err != nil {
			return fmt.Errorf("data source %d (%s.%d): %w", i, ds.Type, ds.ID, err)
		}
		if seen[ds.ID] {
			return fmt.Errorf("data source %d: %w: %d", i, ErrDuplicateSourceID, ds.ID)
		}
		seen[ds.ID] = true
	}
	if len(cfg.EnabledDataSources()) == 0 {
		return ErrNoSourcesEnabled
	}

	if err := validateLoggingConfig(&cfg.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

func validateServerConfig(cfg *ServerConfig) error {
	if cfg.HTTP.TLS.Enabled {
		if cfg.HTTP.TLS.Cert == "" || cfg.HTTP.TLS.Key == "" {
			return ErrTLSConfigIncomplete
		}
		if _, err := os.Stat(cfg.HTTP.TLS.Cert); err != nil {
			return fmt.Errorf("%w: %s", ErrTLSCertNotFound, cfg.HTTP.TLS.Cert)
		}
		if _, err := os.Stat(cfg.HTTP.TLS.Key); err != nil {
			return fmt.Errorf("%w: %s", ErrTLSKeyNotFound, cfg.HTTP.TLS.Key)
		}
	}

	return nil
}

func validateDataSourceConfig(cfg *DataSourceConfig) error {
	if cfg.ID <= 0 {
		return ErrInvalidSourceID
	}

	validTypes := []string{"1inch", "arken"}
	for _, t := range validTypes {
		if strings.ToLower(cfg.Type) == t {
			return nil
		}
	}
	return fmt.Errorf("%w: %s (must be one of: %s)", ErrUnknownSourceType, cfg.Type, strings.Join(validTypes, ", "))
}

func validateLoggingConfig(cfg *LoggingConfig) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	levelValid := false
	for _, l := range validLevels {
		if strings.ToLower(cfg.Level) == l {
			levelValid = true
			break
		}
	}
	if !levelValid {
		return fmt.Errorf("%w: %s (must be one of: %s)", ErrInvalidLogLevel, cfg.Level, strings.Join(validLevels, ", "))
	}

	formatValid := strings.ToLower(cfg.Format) == "json" || strings.ToLower(cfg.Format) == "text"
	if !formatValid {
		return fmt.Errorf("%w: %s (must be 'json' or 'text')", ErrInvalidLogFormat, cfg.Format)
	}

	return nil
}
