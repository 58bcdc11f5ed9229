package datasource

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Chain ids with token tables.
const (
	ChainEthereum int64 = 1
	ChainBSC      int64 = 56
)

// TokenTable maps symbols to their token contract on one chain.
type TokenTable struct {
	bySymbol  map[string]common.Address
	byAddress map[common.Address]string
}

// NewTokenTable validates the addresses and builds both lookup directions.
func NewTokenTable(tokens map[string]string) (TokenTable, error) {
	table := TokenTable{
		bySymbol:  make(map[string]common.Address, len(tokens)),
		byAddress: make(map[common.Address]string, len(tokens)),
	}
	for symbol, hex := range tokens {
		if !common.IsHexAddress(hex) {
			return TokenTable{}, fmt.Errorf("%w: %s has invalid address %q", ErrInvalidConfig, symbol, hex)
		}
		addr := common.HexToAddress(hex)
		table.bySymbol[symbol] = addr
		table.byAddress[addr] = symbol
	}
	return table, nil
}

func mustTokenTable(tokens map[string]string) TokenTable {
	table, err := NewTokenTable(tokens)
	if err != nil {
		panic(err)
	}
	return table
}

// Address returns the token contract for symbol.
func (t TokenTable) Address(symbol string) (common.Address, bool) {
	addr, ok := t.bySymbol[symbol]
	return addr, ok
}

// Symbol returns the symbol for an address in any hex casing.
func (t TokenTable) Symbol(hex string) (string, bool) {
	if !common.IsHexAddress(hex) {
		return "", false
	}
	symbol, ok := t.byAddress[common.HexToAddress(hex)]
	return symbol, ok
}

// Addresses returns the unique lowercase addresses for the known symbols, in first-seen order.
func (t TokenTable) Addresses(symbols []string) []string {
	seen := make(map[common.Address]bool, len(symbols))
	addrs := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		addr, ok := t.bySymbol[symbol]
		if !ok || seen[addr] {
			continue
		}
		seen[addr] = true
		addrs = append(addrs, lowerHex(addr))
	}
	return addrs
}

func lowerHex(addr common.Address) string {
	return "0x" + common.Bytes2Hex(addr.Bytes())
}

var oneInchTokens = map[int64]TokenTable{
	ChainEthereum: mustTokenTable(map[string]string{
		"WBTC":   "0x2260fac5e5542a773aa44fbcfedf7c193bc2c599",
		"ETH":    "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee",
		"stETH":  "0xae7ab96520de3a18e5e111b5eaab095312d7fe84",
		"wstETH": "0x7f39c581f595b53c5cb19bd0b3f8da6c935e2ca0",
		"WETH":   "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2",
		"XOR":    "0x40fd72257597aa14c7231a7b1aaa29fce868f677",
		"RLB":    "0x046eee2cc3188071c02bfc1745a6b17c656e3f3d",
		"VAL":    "0xe88f8313e61a97cec1871ee37fbbe2a8bf3ed1e4",
		"PSWAP":  "0x519c1001d550c0a1dae7d1fc220f7d14c2a521bb",
		"XST":    "0xC60D6662027F5797Cf873bFe80BcF048e30Fc35e",
		"MUTE":   "0xa49d7499271ae71cd8ab9ac515e6694c755d400c",
		"MTRG":   "0xBd2949F67DcdC549c6Ebe98696449Fa79D988A9F",
	}),
	ChainBSC: mustTokenTable(map[string]string{
		"BETH": "0x250632378e573c6be1ac2f97fcdf00515d0aa91b",
		"PHB":  "0x0409633A72D846fc5BBe2f98D88564D35987904D",
		"VC":   "0x2bf83d080d8bc4715984e75e5b3d149805d11751",
	}),
}

var arkenTokens = map[int64]TokenTable{
	ChainEthereum: mustTokenTable(map[string]string{
		"WBTC":   "0x2260fac5e5542a773aa44fbcfedf7c193bc2c599",
		"stETH":  "0xae7ab96520de3a18e5e111b5eaab095312d7fe84",
		"wstETH": "0x7f39c581f595b53c5cb19bd0b3f8da6c935e2ca0",
		"WETH":   "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2",
		"XOR":    "0x40fd72257597aa14c7231a7b1aaa29fce868f677",
		"RLB":    "0x046eee2cc3188071c02bfc1745a6b17c656e3f3d",
		"VAL":    "0xe88f8313e61a97cec1871ee37fbbe2a8bf3ed1e4",
		"PSWAP":  "0x519c1001d550c0a1dae7d1fc220f7d14c2a521bb",
		"XST":    "0xC60D6662027F5797Cf873bFe80BcF048e30Fc35e",
		"MUTE":   "0xa49d7499271ae71cd8ab9ac515e6694c755d400c",
		"MTRG":   "0xbd2949f67dcdc549c6ebe98696449fa79d988a9f",
	}),
	ChainBSC: mustTokenTable(map[string]string{
		"BETH": "0x250632378e573c6be1ac2f97fcdf00515d0aa91b",
		"PHB":  "0x0409633A72D846fc5BBe2f98D88564D35987904D",
	}),
}
