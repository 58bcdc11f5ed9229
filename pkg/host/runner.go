package host

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/StrathCole/oracle-script/pkg/datasource"
	"github.com/StrathCole/oracle-script/pkg/logging"
	"github.com/StrathCole/oracle-script/pkg/registry"
	"github.com/StrathCole/oracle-script/pkg/script"
)

// Runner executes full requests, querying each asked data source once per validator.
type Runner struct {
	script   *script.Script
	sources  map[registry.DataSourceID]datasource.DataSource
	askCount int
	minCount int
	logger   *logging.Logger
}

// NewRunner creates a runner. askCount validators are simulated and minCount of them are required.
func NewRunner(s *script.Script, sources []datasource.DataSource, askCount, minCount int, logger *logging.Logger) (*Runner, error) {
	if minCount < 1 || askCount < minCount {
		return nil, fmt.Errorf("%w: ask_count=%d min_count=%d", ErrInvalidCounts, askCount, minCount)
	}
	if logger == nil {
		logger = logging.NewNoopLogger()
	}

	byID := make(map[registry.DataSourceID]datasource.DataSource, len(sources))
	for _, ds := range sources {
		if _, exists := byID[ds.ID()]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateSource, ds.ID())
		}
		byID[ds.ID()] = ds
	}

	return &Runner{
		script:   s,
		sources:  byID,
		askCount: askCount,
		minCount: minCount,
		logger:   logger.With("component", "host"),
	}, nil
}

// Script returns the script the runner executes.
func (r *Runner) Script() *script.Script {
	return r.script
}

// Run prepares the request, gathers reports and executes it.
func (r *Runner) Run(ctx context.Context, input script.Input) (script.Output, error) {
	session := NewSession(int64(r.minCount))
	r.script.Prepare(input, session)

	if err := r.collect(ctx, session); err != nil {
		return script.Output{}, err
	}

	return r.script.Execute(input, session), nil
}

// collect fills session with reports. A failed fetch is a validator that did not respond.
func (r *Runner) collect(ctx context.Context, session *Session) error {
	asks := session.Asks()
	results := make([][]string, len(asks))

	g, gctx := errgroup.WithContext(ctx)
	for i, ask := range asks {
		ds, ok := r.sources[registry.DataSourceID(ask.DataSourceID)]
		if !ok {
			r.logger.Warn("No data source configured", "data_source", ask.DataSourceID)
			continue
		}

		symbols := strings.Fields(string(ask.Calldata))
		results[i] = make([]string, r.askCount)
		for v := 0; v < r.askCount; v++ {
			i, v := i, v
			g.Go(func() error {
				line, err := ds.Report(gctx, symbols)
				if err != nil {
					r.logger.Warn("Validator report failed",
						"data_source", ds.Name(),
						"validator", v,
						"error", err)
					return nil
				}
				results[i][v] = line
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for i, ask := range asks {
		for _, line := range results[i] {
			if line != "" {
				session.AddReport(ask.ExternalID, line)
			}
		}
	}
	return nil
}
