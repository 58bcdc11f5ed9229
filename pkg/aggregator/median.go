package aggregator

import (
	"math"
	"sort"
)

// compare is a total order over float64: numbers ascending, NaN above every number and
// equal to any other NaN. Every median in the script goes through it so all validators
// sort identically.
func compare(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Median returns the median of values. An even count averages the two middle values.
// The input slice is not modified. ok is false for an empty input.
func Median(values []float64) (median float64, ok bool) {
	n := len(values)
	if n == 0 {
		return 0, false
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compare(sorted[i], sorted[j]) < 0
	})

	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2, true
	}
	return sorted[n/2], true
}
