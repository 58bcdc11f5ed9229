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
	// TypeArken is the factory type name for the Arken insider price API.
	TypeArken = "arken"

	arkenDefaultBaseURL = "https://public-api.arken.finance"
	arkenDefaultTimeout = 10 * time.Second
)

// Symbols Arken prices through another token.
var arkenAliases = map[string]string{
	"ETH": "WETH",
}

// ArkenSource reports USD prices from the Arken insider API.
type ArkenSource struct {
	id       registry.DataSourceID
	chainID  int64
	username string
	token    string
	tokens   TokenTable
	client   *resty.Client
	logger   *logging.Logger
}

type arkenPrice struct {
	Price decimal.Decimal `json:"price"`
}

// NewArkenSource creates an Arken data source for the chain in config["chain_id"].
func NewArkenSource(id registry.DataSourceID, config map[string]interface{}, logger *logging.Logger) (DataSource, error) {
	chainID := getInt64(config, "chain_id", ChainEthereum)
	tokens, ok := arkenTokens[chainID]
	if !ok {
		return nil, fmt.Errorf("%w: arken chain %d", ErrUnsupportedChain, chainID)
	}

	timeout, err := getDuration(config, "timeout", arkenDefaultTimeout)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimRight(getString(config, "base_url", arkenDefaultBaseURL), "/"))
	client.SetTimeout(timeout)

	return &ArkenSource{
		id:       id,
		chainID:  chainID,
		username: getString(config, "username", ""),
		token:    getString(config, "token", ""),
		tokens:   tokens,
		client:   client,
		logger:   logger.With("data_source", id.String()),
	}, nil
}

// ID returns the registry id of the data source.
func (s *ArkenSource) ID() registry.DataSourceID {
	return s.id
}

// Name returns the data source name.
func (s *ArkenSource) Name() string {
	return s.id.String()
}

// Report fetches current prices for symbols and returns the report line.
func (s *ArkenSource) Report(ctx context.Context, symbols []string) (string, error) {
	resolved := make([]string, len(symbols))
	for i, symbol := range symbols {
		if alias, ok := arkenAliases[symbol]; ok {
			resolved[i] = alias
		} else {
			resolved[i] = symbol
		}
	}

	addrs := s.tokens.Addresses(resolved)
	if len(addrs) == 0 {
		return joinReport(symbols, nil), nil
	}

	start := time.Now()
	prices, err := s.fetch(ctx, addrs)
	metrics.RecordDataSourceFetch(s.Name(), err == nil, time.Since(start))
	if err != nil {
		s.logger.Warn("arken fetch failed", "chain_id", s.chainID, "error", err)
		return "", err
	}

	byToken := make(map[string]string, len(prices))
	for addr, p := range prices {
		token, ok := s.tokens.Symbol(addr)
		if !ok {
			continue
		}
		if p.Price.IsNegative() {
			return "", fmt.Errorf("%w: %s", ErrNegativePrice, token)
		}
		byToken[token] = FormatPrice(p.Price)
	}

	found := make(map[string]string, len(symbols))
	for i, symbol := range symbols {
		if price, ok := byToken[resolved[i]]; ok {
			found[symbol] = price
		}
	}
	return joinReport(symbols, found), nil
}

// fetch queries the price endpoint for the given token addresses.
func (s *ArkenSource) fetch(ctx context.Context, addrs []string) (map[string]arkenPrice, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("X-API-Username", s.username).
		SetHeader("X-API-Token", s.token).
		SetQueryParam("addresses", strings.Join(addrs, ",")).
		Get(fmt.Sprintf("/insider/v1/%d/tokens/price", s.chainID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode())
	}

	var prices map[string]arkenPrice
	if err := json.Unmarshal(resp.Body(), &prices); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return prices, nil
}
