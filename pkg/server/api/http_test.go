package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StrathCole/oracle-script/pkg/aggregator"
	"github.com/StrathCole/oracle-script/pkg/datasource"
	"github.com/StrathCole/oracle-script/pkg/host"
	"github.com/StrathCole/oracle-script/pkg/registry"
	"github.com/StrathCole/oracle-script/pkg/script"
)

type staticSource struct {
	id     registry.DataSourceID
	prices map[string]string
}

func (s staticSource) ID() registry.DataSourceID { return s.id }
func (s staticSource) Name() string              { return s.id.String() }
func (s staticSource) Report(_ context.Context, symbols []string) (string, error) {
	fields := make([]string, len(symbols))
	for i, symbol := range symbols {
		if p, ok := s.prices[symbol]; ok {
			fields[i] = p
		} else {
			fields[i] = "-"
		}
	}
	return strings.Join(fields, ","), nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	runner, err := host.NewRunner(script.Default(nil), []datasource.DataSource{
		staticSource{id: registry.DS1InchBSC, prices: map[string]string{"PHB": "0.5", "VC": "1.25"}},
		staticSource{id: registry.DSArkenBSC, prices: map[string]string{"PHB": "0.7"}},
	}, 3, 2, nil)
	require.NoError(t, err)
	return NewServer(":0", runner, 5*time.Second, nil)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestHandleSymbols(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/v1/symbols", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []struct {
		Symbol      string   `json:"symbol"`
		DataSources []string `json:"data_sources"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, len(registry.DefaultTable))
	assert.Equal(t, "BETH", body[0].Symbol)
	assert.Equal(t, []string{"1inch_bsc", "arken_bsc"}, body[0].DataSources)

	rec = do(t, newTestServer(t), http.MethodPost, "/v1/symbols", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleSchema(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/v1/schema", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, script.Schema, body["schema"])

	rec = do(t, newTestServer(t), http.MethodPost, "/v1/schema", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandlePrepare(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/v1/prepare", `{"symbols":["PHB","VC","DNE"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var view PrepareView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, []AskView{
		{ExternalID: 717, DataSourceID: 717, Calldata: "PHB VC"},
		{ExternalID: 718, DataSourceID: 718, Calldata: "PHB"},
	}, view.Asks)
}

func TestHandleExecute(t *testing.T) {
	body := `{
		"symbols": ["PHB", "VC", "DNE"],
		"minimum_source_count": 1,
		"min_count": 3,
		"reports": {
			"717": ["0.5,1.0", "0.6,-", "0.7,-"],
			"718": ["0.8", "0.8"]
		}
	}`
	rec := do(t, newTestServer(t), http.MethodPost, "/v1/execute", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var view OutputView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Responses, 3)

	assert.Equal(t, ResponseView{
		Symbol: "PHB", ResponseCode: 0, Code: "success", Rate: 700_000_000, Price: "0.7",
	}, view.Responses[0])
	assert.Equal(t, "not_enough_sources", view.Responses[1].Code)
	assert.Empty(t, view.Responses[1].Price)
	assert.Equal(t, uint8(aggregator.SymbolNotSupported), view.Responses[2].ResponseCode)

	raw, err := hexutil.Decode(view.OBI)
	require.NoError(t, err)
	decoded, err := script.DecodeOutput(raw)
	require.NoError(t, err)
	assert.Equal(t, "PHB", decoded.Responses[0].Symbol)
	assert.Equal(t, uint64(700_000_000), decoded.Responses[0].Rate)
}

func TestHandleRequest(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/v1/request", `{"symbols":["PHB","VC"],"minimum_source_count":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var view OutputView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Responses, 2)
	assert.Equal(t, "success", view.Responses[0].Code)
	assert.Equal(t, uint64(600_000_000), view.Responses[0].Rate)
	assert.Equal(t, "not_enough_sources", view.Responses[1].Code)
}

func TestHandleRequest_OBIInput(t *testing.T) {
	encoded, err := script.EncodeInput(script.Input{Symbols: []string{"VC"}, MinimumSourceCount: 1})
	require.NoError(t, err)

	rec := do(t, newTestServer(t), http.MethodPost, "/v1/request", `{"obi":"`+hexutil.Encode(encoded)+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var view OutputView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Responses, 1)
	assert.Equal(t, "VC", view.Responses[0].Symbol)
	assert.Equal(t, "1.25", view.Responses[0].Price)
}

func TestHandlers_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{name: "prepare via GET", method: http.MethodGet, path: "/v1/prepare", status: http.StatusMethodNotAllowed},
		{name: "execute bad json", method: http.MethodPost, path: "/v1/execute", body: `{`, status: http.StatusBadRequest},
		{name: "request bad obi hex", method: http.MethodPost, path: "/v1/request", body: `{"obi":"zz"}`, status: http.StatusBadRequest},
		{name: "request truncated obi", method: http.MethodPost, path: "/v1/request", body: `{"obi":"0x0000"}`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestServer(t), tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestRatePrice(t *testing.T) {
	assert.Equal(t, "27050", ratePrice(27_050_000_000_000))
	assert.Equal(t, "0.000000001", ratePrice(1))
	assert.Equal(t, "18446744073.709551615", ratePrice(^uint64(0)))
}
