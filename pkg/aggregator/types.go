package aggregator

import "fmt"

// Multiplier scales a price into its fixed-point rate.
const Multiplier uint64 = 1_000_000_000

// ResponseCode explains why a symbol does or does not carry a rate.
type ResponseCode uint8

// Response codes. Numeric values are part of the encoded output and must not change.
const (
	Success            ResponseCode = 0
	SymbolNotSupported ResponseCode = 1
	NotEnoughSources   ResponseCode = 2
	ConversionError    ResponseCode = 3
	// Unknown signals an internal inconsistency; seeing it means a bug, not a market condition.
	Unknown ResponseCode = 127
)

// String returns the code name used in logs, metrics and JSON.
func (c ResponseCode) String() string {
	switch c {
	case Success:
		return "success"
	case SymbolNotSupported:
		return "symbol_not_supported"
	case NotEnoughSources:
		return "not_enough_sources"
	case ConversionError:
		return "conversion_error"
	case Unknown:
		return "unknown"
	default:
		return fmt.Sprintf("code_%d", uint8(c))
	}
}

// Optional is a per-source value that may be absent when quorum was not reached.
type Optional struct {
	Value float64
	Valid bool
}
