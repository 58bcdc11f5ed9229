// Package aggregator turns parsed validator reports into final fixed-point prices.
package aggregator

import "errors"

// ErrRateOutOfRange indicates a scaled price that does not fit an unsigned 64-bit rate.
var ErrRateOutOfRange = errors.New("rate out of range")
