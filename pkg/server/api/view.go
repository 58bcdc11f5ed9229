package api

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"

	"github.com/StrathCole/oracle-script/pkg/aggregator"
	"github.com/StrathCole/oracle-script/pkg/host"
	"github.com/StrathCole/oracle-script/pkg/script"
)

// ResponseView is one symbol result as served over HTTP and WebSocket.
type ResponseView struct {
	Symbol       string `json:"symbol"`
	ResponseCode uint8  `json:"response_code"`
	Code         string `json:"code"`
	Rate         uint64 `json:"rate"`
	Price        string `json:"price,omitempty"`
}

// OutputView is an execute result plus its OBI encoding.
type OutputView struct {
	Responses []ResponseView `json:"responses"`
	OBI       string         `json:"obi"`
}

// AskView is one prepare phase ask.
type AskView struct {
	ExternalID   int64  `json:"external_id"`
	DataSourceID int64  `json:"data_source_id"`
	Calldata     string `json:"calldata"`
}

// PrepareView lists the asks a request makes.
type PrepareView struct {
	Asks []AskView `json:"asks"`
}

// ratePrice renders a fixed-point rate as a decimal price string.
func ratePrice(rate uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(rate), -9).String()
}

func newResponseViews(out script.Output) []ResponseView {
	views := make([]ResponseView, len(out.Responses))
	for i, r := range out.Responses {
		views[i] = ResponseView{
			Symbol:       r.Symbol,
			ResponseCode: r.ResponseCode,
			Code:         r.Code().String(),
			Rate:         r.Rate,
		}
		if r.Code() == aggregator.Success {
			views[i].Price = ratePrice(r.Rate)
		}
	}
	return views
}

func newOutputView(out script.Output) (OutputView, error) {
	encoded, err := script.EncodeOutput(out)
	if err != nil {
		return OutputView{}, err
	}
	return OutputView{
		Responses: newResponseViews(out),
		OBI:       hexutil.Encode(encoded),
	}, nil
}

func newPrepareView(asks []host.Ask) PrepareView {
	views := make([]AskView, len(asks))
	for i, a := range asks {
		views[i] = AskView{
			ExternalID:   a.ExternalID,
			DataSourceID: a.DataSourceID,
			Calldata:     string(a.Calldata),
		}
	}
	return PrepareView{Asks: views}
}
