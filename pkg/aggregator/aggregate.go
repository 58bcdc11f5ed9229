package aggregator

import (
	"fmt"
	"math"
)

// maxRate is 2^64, the first value a uint64 cannot hold.
const maxRate = float64(1<<63) * 2

// ToRate scales price by Multiplier and truncates toward zero.
// It fails when the result is not finite or does not fit a uint64.
func ToRate(price float64) (uint64, error) {
	scaled := price * float64(Multiplier)
	if math.IsNaN(scaled) || math.IsInf(scaled, 0) {
		return 0, fmt.Errorf("%w: %v", ErrRateOutOfRange, scaled)
	}
	truncated := math.Trunc(scaled)
	if truncated < 0 || truncated >= maxRate {
		return 0, fmt.Errorf("%w: %v", ErrRateOutOfRange, scaled)
	}
	return uint64(truncated), nil
}

// Aggregate reduces the per-source values of one symbol to its final rate.
// values holds one entry per data source that reached quorum.
func Aggregate(values []float64, minimumSourceCount int) (uint64, ResponseCode) {
	if len(values) < minimumSourceCount {
		return 0, NotEnoughSources
	}

	median, ok := Median(values)
	if !ok {
		return 0, Unknown
	}

	rate, err := ToRate(median)
	if err != nil {
		return 0, ConversionError
	}

	return rate, Success
}
