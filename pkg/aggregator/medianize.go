package aggregator

import (
	"github.com/StrathCole/oracle-script/pkg/report"
)

// Medianize collapses the parsed reports of one data source into one value per symbol.
// Only reports that parsed successfully may be passed in; each must hold symbolCount values.
// A symbol with fewer than minResponses present values is left absent.
func Medianize(reports [][]report.Value, symbolCount, minResponses int) []Optional {
	result := make([]Optional, symbolCount)
	for i := 0; i < symbolCount; i++ {
		values := make([]float64, 0, len(reports))
		for _, r := range reports {
			if i >= len(r) {
				continue
			}
			if price, ok := r[i].Get(); ok {
				values = append(values, price)
			}
		}

		if len(values) < minResponses {
			continue
		}
		if median, ok := Median(values); ok {
			result[i] = Optional{Value: median, Valid: true}
		}
	}
	return result
}
