package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourcesFor(t *testing.T) {
	reg := Default()

	tests := []struct {
		name     string
		symbols  []string
		expected map[DataSourceID][]string
	}{
		{
			name:    "eth symbols go to both eth sources",
			symbols: []string{"WBTC", "XOR"},
			expected: map[DataSourceID][]string{
				DS1InchETH: {"WBTC", "XOR"},
				DSArkenETH: {"WBTC", "XOR"},
			},
		},
		{
			name:    "mixed chains keep request order per source",
			symbols: []string{"PHB", "WETH", "VC", "BETH"},
			expected: map[DataSourceID][]string{
				DS1InchETH: {"WETH"},
				DSArkenETH: {"WETH"},
				DS1InchBSC: {"PHB", "VC", "BETH"},
				DSArkenBSC: {"PHB", "BETH"},
			},
		},
		{
			name:    "duplicates are kept",
			symbols: []string{"VC", "VC"},
			expected: map[DataSourceID][]string{
				DS1InchBSC: {"VC", "VC"},
			},
		},
		{
			name:     "unknown symbols contribute nothing",
			symbols:  []string{"DNE", "BTC"},
			expected: map[DataSourceID][]string{},
		},
		{
			name:     "empty request",
			symbols:  nil,
			expected: map[DataSourceID][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reg.SourcesFor(tt.symbols)
			require.Equal(t, len(tt.expected), got.Len())
			for id, symbols := range tt.expected {
				assert.Equal(t, symbols, got.Symbols(id), "data source %s", id)
			}
		})
	}
}

func TestSourcesFor_Deterministic(t *testing.T) {
	reg := Default()
	symbols := []string{"BETH", "WBTC", "VC", "MTRG", "PHB"}

	first := reg.SourcesFor(symbols)
	second := reg.SourcesFor(symbols)

	assert.Equal(t, []DataSourceID{DS1InchETH, DSArkenETH, DS1InchBSC, DSArkenBSC}, first.IDs())
	assert.Equal(t, first.IDs(), second.IDs())
	for _, id := range first.IDs() {
		assert.Equal(t, first.Symbols(id), second.Symbols(id))
	}
}

func TestRegistry_Lookups(t *testing.T) {
	reg := Default()

	assert.True(t, reg.Supports("stETH"))
	assert.False(t, reg.Supports("STETH"))
	assert.Equal(t, []DataSourceID{DS1InchBSC}, reg.DataSources("VC"))
	assert.Nil(t, reg.DataSources("DNE"))
	assert.Len(t, reg.Symbols(), len(DefaultTable))
	assert.Equal(t, "BETH", reg.Symbols()[0])
}

func TestNew_CopiesTable(t *testing.T) {
	table := Table{"AAA": {DS1InchETH}}
	reg := New(table)
	table["AAA"][0] = DSArkenBSC
	table["BBB"] = []DataSourceID{DSArkenETH}

	assert.Equal(t, []DataSourceID{DS1InchETH}, reg.DataSources("AAA"))
	assert.False(t, reg.Supports("BBB"))
}

func TestDataSourceID_String(t *testing.T) {
	assert.Equal(t, "1inch_eth", DS1InchETH.String())
	assert.Equal(t, "arken_bsc", DSArkenBSC.String())
	assert.Equal(t, "ds_1", DataSourceID(1).String())
}
