package script

import (
	"github.com/StrathCole/oracle-script/pkg/aggregator"
	"github.com/StrathCole/oracle-script/pkg/metrics"
)

// unsupportedLabel stands in for every unregistered symbol in metrics.
const unsupportedLabel = "unsupported"

// Assemble builds one response per requested symbol, in order and including duplicates.
// A symbol is unsupported only when it has no collected values and the registry does not
// know it; a registered symbol without values still goes through aggregation.
func (s *Script) Assemble(symbols []string, symbolPrices map[string][]float64, minimumSourceCount int) []Response {
	responses := make([]Response, 0, len(symbols))
	for _, symbol := range symbols {
		prices, collected := symbolPrices[symbol]
		if !collected && !s.registry.Supports(symbol) {
			responses = append(responses, NewResponse(symbol, aggregator.SymbolNotSupported, 0))
			metrics.RecordResponse(unsupportedLabel, aggregator.SymbolNotSupported.String())
			continue
		}

		rate, code := aggregator.Aggregate(prices, minimumSourceCount)
		switch code {
		case aggregator.Success:
		case aggregator.Unknown:
			s.logger.Error("Inconsistent aggregation state",
				"symbol", symbol,
				"values", len(prices),
				"minimum_source_count", minimumSourceCount)
		default:
			s.logger.Debug("Symbol not priced",
				"symbol", symbol,
				"code", code.String(),
				"values", len(prices),
				"minimum_source_count", minimumSourceCount)
		}

		responses = append(responses, NewResponse(symbol, code, rate))
		metrics.RecordResponse(s.symbolLabel(symbol), code.String())
	}
	return responses
}

// symbolLabel keeps metric label values within the registry.
func (s *Script) symbolLabel(symbol string) string {
	if s.registry.Supports(symbol) {
		return symbol
	}
	return unsupportedLabel
}
