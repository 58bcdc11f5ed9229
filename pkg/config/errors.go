// Package config provides configuration loading and validation for the oracle script tooling.
package config

import "errors"

var (
	// ErrInvalidMode indicates that the mode is invalid.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrTLSConfigIncomplete indicates that TLS config is incomplete.
	ErrTLSConfigIncomplete = errors.New("TLS cert and key must be specified when TLS is enabled")
	// ErrTLSCertNotFound indicates that the TLS cert file was not found.
	ErrTLSCertNotFound = errors.New("TLS cert file not found")
	// ErrTLSKeyNotFound indicates that the TLS key file was not found.
	ErrTLSKeyNotFound = errors.New("TLS key file not found")
	// ErrInvalidCounts indicates that ask_count and min_count do not form a valid request.
	ErrInvalidCounts = errors.New("min_count must be >= 1 and <= ask_count")
	// ErrNoSourcesEnabled indicates that no data sources are enabled.
	ErrNoSourcesEnabled = errors.New("no data sources enabled")
	// ErrInvalidSourceID indicates that a data source id is missing or invalid.
	ErrInvalidSourceID = errors.New("data source id must be > 0")
	// ErrDuplicateSourceID indicates that a data source id is configured twice.
	ErrDuplicateSourceID = errors.New("duplicate data source id")
	// ErrUnknownSourceType indicates that the source type is unknown.
	ErrUnknownSourceType = errors.New("unknown source type")
	// ErrInvalidLogLevel indicates that the log level is invalid.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidLogFormat indicates that the log format is invalid.
	ErrInvalidLogFormat = errors.New("invalid log format")
)
