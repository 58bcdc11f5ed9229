package datasource

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/StrathCole/oracle-script/pkg/logging"
	"github.com/StrathCole/oracle-script/pkg/registry"
	"github.com/StrathCole/oracle-script/pkg/report"
)

// DataSource produces report lines for one registered data source id.
type DataSource interface {
	// ID returns the registry id this data source answers for.
	ID() registry.DataSourceID

	// Name returns a short name for logs and metrics.
	Name() string

	// Report returns one field per symbol, in order, "-" where no price is known.
	Report(ctx context.Context, symbols []string) (string, error)
}

// Factory creates a data source from its free-form configuration.
type Factory func(id registry.DataSourceID, config map[string]interface{}, logger *logging.Logger) (DataSource, error)

// FormatPrice renders a price with at most nine decimals and no trailing zeros.
func FormatPrice(price decimal.Decimal) string {
	s := price.StringFixedBank(9)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// joinReport builds the report line for symbols from the formatted prices found.
func joinReport(symbols []string, prices map[string]string) string {
	fields := make([]string, len(symbols))
	for i, symbol := range symbols {
		if p, ok := prices[symbol]; ok {
			fields[i] = p
		} else {
			fields[i] = report.Missing
		}
	}
	return strings.Join(fields, ",")
}
