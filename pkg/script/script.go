package script

import (
	"strings"
	"time"

	"github.com/StrathCole/oracle-script/pkg/aggregator"
	"github.com/StrathCole/oracle-script/pkg/logging"
	"github.com/StrathCole/oracle-script/pkg/metrics"
	"github.com/StrathCole/oracle-script/pkg/registry"
	"github.com/StrathCole/oracle-script/pkg/report"
)

// Script runs both phases against a symbol registry. It keeps no state between calls.
type Script struct {
	registry *registry.Registry
	logger   *logging.Logger
}

// New creates a script over reg. A nil logger discards output.
func New(reg *registry.Registry, logger *logging.Logger) *Script {
	if logger == nil {
		logger = logging.NewNoopLogger()
	}
	return &Script{
		registry: reg,
		logger:   logger,
	}
}

// Default creates a script over the built-in registry table.
func Default(logger *logging.Logger) *Script {
	return New(registry.Default(), logger)
}

// Registry returns the registry the script resolves symbols with.
func (s *Script) Registry() *registry.Registry {
	return s.registry
}

// Prepare asks every data source serving at least one requested symbol for a report.
// The external id equals the data source id; calldata is the space-joined symbol list.
func (s *Script) Prepare(input Input, env PrepareEnv) {
	assignments := s.registry.SourcesFor(input.Symbols)
	for _, id := range assignments.IDs() {
		symbols := assignments.Symbols(id)
		s.logger.Debug("Requesting data source",
			"data_source", id.String(),
			"symbols", symbols)
		env.AskExternalData(int64(id), int64(id), []byte(strings.Join(symbols, " ")))
	}
}

// Execute aggregates the reports collected for the data sources Prepare asked.
func (s *Script) Execute(input Input, env ExecuteEnv) Output {
	start := time.Now()
	defer func() {
		metrics.RecordExecute(time.Since(start))
	}()

	minResponses := aggregator.MinResponses(env.MinCount())
	symbolPrices := make(map[string][]float64, len(input.Symbols))

	assignments := s.registry.SourcesFor(input.Symbols)
	for _, id := range assignments.IDs() {
		symbols := assignments.Symbols(id)

		reports := s.parseReports(id, env.LoadInput(int64(id)), len(symbols))
		medians := aggregator.Medianize(reports, len(symbols), minResponses)

		for i, symbol := range symbols {
			if !medians[i].Valid {
				continue
			}
			symbolPrices[symbol] = append(symbolPrices[symbol], medians[i].Value)
		}
	}

	return Output{Responses: s.Assemble(input.Symbols, symbolPrices, int(input.MinimumSourceCount))}
}

// parseReports keeps the reports that parse into exactly length values.
func (s *Script) parseReports(id registry.DataSourceID, raw []string, length int) [][]report.Value {
	parsed := make([][]report.Value, 0, len(raw))
	for i, r := range raw {
		values, err := report.Parse(r, length)
		if err != nil {
			s.logger.Debug("Dropping report",
				"data_source", id.String(),
				"index", i,
				"error", err)
			metrics.RecordReport(id.String(), false)
			continue
		}
		metrics.RecordReport(id.String(), true)
		parsed = append(parsed, values)
	}
	return parsed
}
