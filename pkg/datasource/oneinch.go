package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/StrathCole/oracle-script/pkg/logging"
	"github.com/StrathCole/oracle-script/pkg/metrics"
	"github.com/StrathCole/oracle-script/pkg/registry"
)

const (
	// TypeOneInch is the factory type name for the 1inch spot price API.
	TypeOneInch = "1inch"

	oneInchDefaultBaseURL = "https://api.1inch.dev"
	oneInchDefaultTimeout = 10 * time.Second
)

// OneInchSource reports USD spot prices from the 1inch price API
// https://portal.1inch.dev/documentation/spot-price
type OneInchSource struct {
	id       registry.DataSourceID
	chainID  int64
	currency string
	apiKey   string
	tokens   TokenTable
	client   *resty.Client
	logger   *logging.Logger
}

// NewOneInchSource creates a 1inch data source for the chain in config["chain_id"].
func NewOneInchSource(id registry.DataSourceID, config map[string]interface{}, logger *logging.Logger) (DataSource, error) {
	chainID := getInt64(config, "chain_id", ChainEthereum)
	tokens, ok := oneInchTokens[chainID]
	if !ok {
		return nil, fmt.Errorf("%w: 1inch chain %d", ErrUnsupportedChain, chainID)
	}

	timeout, err := getDuration(config, "timeout", oneInchDefaultTimeout)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimRight(getString(config, "base_url", oneInchDefaultBaseURL), "/"))
	client.SetTimeout(timeout)

	return &OneInchSource{
		id:       id,
		chainID:  chainID,
		currency: getString(config, "currency", "USD"),
		apiKey:   getString(config, "api_key", ""),
		tokens:   tokens,
		client:   client,
		logger:   logger.With("data_source", id.String()),
	}, nil
}

// ID returns the registry id of the data source.
func (s *OneInchSource) ID() registry.DataSourceID {
	return s.id
}

// Name returns the data source name.
func (s *OneInchSource) Name() string {
	return s.id.String()
}

// Report fetches current prices for symbols and returns the report line.
func (s *OneInchSource) Report(ctx context.Context, symbols []string) (string, error) {
	addrs := s.tokens.Addresses(symbols)
	if len(addrs) == 0 {
		return joinReport(symbols, nil), nil
	}

	start := time.Now()
	prices, err := s.fetch(ctx, addrs)
	metrics.RecordDataSourceFetch(s.Name(), err == nil, time.Since(start))
	if err != nil {
		s.logger.Warn("1inch fetch failed", "chain_id", s.chainID, "error", err)
		return "", err
	}

	found := make(map[string]string, len(prices))
	for addr, price := range prices {
		symbol, ok := s.tokens.Symbol(addr)
		if !ok {
			continue
		}
		if price.IsNegative() {
			return "", fmt.Errorf("%w: %s", ErrNegativePrice, symbol)
		}
		found[symbol] = FormatPrice(price)
	}

	return joinReport(symbols, found), nil
}

// fetch queries the price endpoint for the given token addresses.
func (s *OneInchSource) fetch(ctx context.Context, addrs []string) (map[string]decimal.Decimal, error) {
	req := s.client.R().
		SetContext(ctx).
		SetQueryParam("currency", s.currency)
	if s.apiKey != "" {
		req.SetHeader("Authorization", s.apiKey)
	}

	resp, err := req.Get(fmt.Sprintf("/price/v1.1/%d/%s", s.chainID, strings.Join(addrs, ",")))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode())
	}

	var prices map[string]decimal.Decimal
	if err := json.Unmarshal(resp.Body(), &prices); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return prices, nil
}
