// Package report parses the comma-separated price lines data sources return.
package report

import "errors"

var (
	// ErrFormat indicates a report that cannot be used: bad number, negative value or wrong field count.
	ErrFormat = errors.New("invalid report format")
)
