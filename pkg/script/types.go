// Package script implements the price oracle script: a prepare phase that asks data
// sources for reports, and an execute phase that turns the collected validator reports
// into one deterministic fixed-point rate per requested symbol.
package script

import (
	"github.com/StrathCole/oracle-script/pkg/aggregator"
)

// Input is the request decoded from the caller.
type Input struct {
	Symbols            []string `json:"symbols"`
	MinimumSourceCount uint8    `json:"minimum_source_count"`
}

// Response is the result for one requested symbol.
type Response struct {
	Symbol       string `json:"symbol"`
	ResponseCode uint8  `json:"response_code"`
	Rate         uint64 `json:"rate"`
}

// NewResponse builds a response from an aggregation outcome.
func NewResponse(symbol string, code aggregator.ResponseCode, rate uint64) Response {
	return Response{
		Symbol:       symbol,
		ResponseCode: uint8(code),
		Rate:         rate,
	}
}

// Code returns the typed response code.
func (r Response) Code() aggregator.ResponseCode {
	return aggregator.ResponseCode(r.ResponseCode)
}

// Output holds one response per requested symbol, in request order.
type Output struct {
	Responses []Response `json:"responses"`
}

// PrepareEnv is what the host offers during the prepare phase.
type PrepareEnv interface {
	// AskExternalData asks validators to run dataSourceID with calldata, under externalID.
	AskExternalData(externalID, dataSourceID int64, calldata []byte)
}

// ExecuteEnv is what the host offers during the execute phase.
type ExecuteEnv interface {
	// LoadInput returns every raw report validators submitted for externalID.
	LoadInput(externalID int64) []string
	// MinCount returns the number of validators the request required to respond.
	MinCount() int64
}
