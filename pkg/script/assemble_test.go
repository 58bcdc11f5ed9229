package script

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StrathCole/oracle-script/pkg/aggregator"
	"github.com/StrathCole/oracle-script/pkg/metrics"
)

func TestAssemble(t *testing.T) {
	symbols := []string{"BTC", "ETH", "DNE"}
	symbolPrices := map[string][]float64{
		"BTC": {1.23, 1.24, 1.25, 1.26, 1.27},
		"ETH": {2.31, 2.32},
	}

	responses := newTestScript().Assemble(symbols, symbolPrices, 3)

	require.Len(t, responses, 3)
	assert.Equal(t, NewResponse("BTC", aggregator.Success, 1250000000), responses[0])
	assert.Equal(t, NewResponse("ETH", aggregator.NotEnoughSources, 0), responses[1])
	assert.Equal(t, NewResponse("DNE", aggregator.SymbolNotSupported, 0), responses[2])
}

func TestAssemble_PreservesOrderAndDuplicates(t *testing.T) {
	symbols := []string{"DNE", "WBTC", "DNE", "WBTC"}
	symbolPrices := map[string][]float64{"WBTC": {30000}}

	responses := newTestScript().Assemble(symbols, symbolPrices, 1)

	assert.Equal(t, []Response{
		NewResponse("DNE", aggregator.SymbolNotSupported, 0),
		NewResponse("WBTC", aggregator.Success, 30000_000_000_000),
		NewResponse("DNE", aggregator.SymbolNotSupported, 0),
		NewResponse("WBTC", aggregator.Success, 30000_000_000_000),
	}, responses)
}

func TestAssemble_RegisteredWithoutValues(t *testing.T) {
	responses := newTestScript().Assemble([]string{"MTRG"}, map[string][]float64{}, 1)
	assert.Equal(t, []Response{NewResponse("MTRG", aggregator.NotEnoughSources, 0)}, responses)
}

func TestAssemble_ConversionError(t *testing.T) {
	responses := newTestScript().Assemble([]string{"WETH"}, map[string][]float64{"WETH": {1e300}}, 1)
	assert.Equal(t, []Response{NewResponse("WETH", aggregator.ConversionError, 0)}, responses)
}

func TestAssemble_Empty(t *testing.T) {
	responses := newTestScript().Assemble(nil, nil, 1)
	assert.Empty(t, responses)
}

func TestAssemble_UnregisteredSymbolsShareOneSeries(t *testing.T) {
	symbols := make([]string, 0, 1001)
	for i := 0; i < 1000; i++ {
		symbols = append(symbols, fmt.Sprintf("JUNK%d", i))
	}
	symbols = append(symbols, "WBTC")
	unsupported := metrics.ResponsesTotal.WithLabelValues("unsupported", aggregator.SymbolNotSupported.String())

	seriesBefore := testutil.CollectAndCount(metrics.ResponsesTotal)
	countBefore := testutil.ToFloat64(unsupported)

	out := newTestScript().Execute(Input{Symbols: symbols, MinimumSourceCount: 1}, &fakeExecuteEnv{minCount: 1})

	require.Len(t, out.Responses, 1001)
	assert.Equal(t, NewResponse("JUNK999", aggregator.SymbolNotSupported, 0), out.Responses[999])
	assert.LessOrEqual(t, testutil.CollectAndCount(metrics.ResponsesTotal)-seriesBefore, 1)
	assert.Equal(t, countBefore+1000, testutil.ToFloat64(unsupported))
}
