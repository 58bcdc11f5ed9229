// Package registry maps requested symbols to the data sources that quote them.
package registry

import "fmt"

// DataSourceID identifies an external data feed.
type DataSourceID int64

// Data sources the script knows how to request.
const (
	DS1InchETH DataSourceID = 715
	DSArkenETH DataSourceID = 716
	DS1InchBSC DataSourceID = 717
	DSArkenBSC DataSourceID = 718
)

// String returns the data source name, or its numeric id when unknown.
func (id DataSourceID) String() string {
	switch id {
	case DS1InchETH:
		return "1inch_eth"
	case DSArkenETH:
		return "arken_eth"
	case DS1InchBSC:
		return "1inch_bsc"
	case DSArkenBSC:
		return "arken_bsc"
	default:
		return fmt.Sprintf("ds_%d", int64(id))
	}
}

// Table is a static symbol -> data sources mapping.
type Table map[string][]DataSourceID

// DefaultTable lists every supported symbol and the data sources serving it.
var DefaultTable = Table{
	"WBTC":   {DS1InchETH, DSArkenETH},
	"stETH":  {DS1InchETH, DSArkenETH},
	"wstETH": {DS1InchETH, DSArkenETH},
	"WETH":   {DS1InchETH, DSArkenETH},
	"XOR":    {DS1InchETH, DSArkenETH},
	"RLB":    {DS1InchETH, DSArkenETH},
	"VAL":    {DS1InchETH, DSArkenETH},
	"PSWAP":  {DS1InchETH, DSArkenETH},
	"XST":    {DS1InchETH, DSArkenETH},
	"MUTE":   {DS1InchETH, DSArkenETH},
	"VC":     {DS1InchBSC},
	"MTRG":   {DS1InchETH, DSArkenETH},
	"PHB":    {DS1InchBSC, DSArkenBSC},
	"BETH":   {DS1InchBSC, DSArkenBSC},
}
