// Package datasource implements the external data sources the oracle script asks for
// price reports. Each one turns a symbol list into a single comma-separated report line.
package datasource

import "errors"

var (
	// ErrUnknownType indicates that no factory is registered for a data source type.
	ErrUnknownType = errors.New("unknown data source type")
	// ErrInvalidConfig indicates that the data source configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrUnsupportedChain indicates a chain id without a token table.
	ErrUnsupportedChain = errors.New("unsupported chain")
	// ErrUnexpectedStatus indicates an unexpected HTTP status code.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status code")
	// ErrInvalidResponse indicates an undecodable API response.
	ErrInvalidResponse = errors.New("invalid response")
	// ErrNegativePrice indicates an API returned a negative price.
	ErrNegativePrice = errors.New("negative number returned")
)
