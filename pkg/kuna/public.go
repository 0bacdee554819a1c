package kuna

import (
	"context"
	"net/url"
	"strings"

	"kunaclient/pkg/errors"
)

// GetServerTime returns the exchange clock.
func (c *Client) GetServerTime(ctx context.Context) (*ServerTime, error) {
	var res ServerTime
	if err := c.public(ctx, "timestamp", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetCurrencies returns the assets listed on the exchange.
func (c *Client) GetCurrencies(ctx context.Context) ([]Currency, error) {
	var res []Currency
	if err := c.public(ctx, "currencies", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetMarkets returns the available trading pairs.
func (c *Client) GetMarkets(ctx context.Context) ([]Market, error) {
	var res []Market
	if err := c.public(ctx, "markets", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetTickers returns recent market data for the given symbols.
func (c *Client) GetTickers(ctx context.Context, symbols ...string) ([]Ticker, error) {
	if len(symbols) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidInput, "kuna: tickers require at least one symbol")
	}
	query := url.Values{"symbols": []string{strings.Join(symbols, ",")}}
	var res []Ticker
	if err := c.public(ctx, "tickers", query, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetOrderBook returns the aggregated order book for a market.
func (c *Client) GetOrderBook(ctx context.Context, symbol string) (*OrderBook, error) {
	if symbol == "" {
		return nil, errors.Wrap(errors.ErrInvalidSymbol, "kuna: order book requires a symbol")
	}
	var rows []bookRow
	if err := c.public(ctx, "book/"+symbol, nil, &rows); err != nil {
		return nil, err
	}
	return newOrderBook(symbol, rows), nil
}

// GetFees returns the deposit and withdrawal fee schedule.
func (c *Client) GetFees(ctx context.Context) ([]Fee, error) {
	var res []Fee
	if err := c.public(ctx, "fees", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetTradesHistory returns recent public trades for a market.
func (c *Client) GetTradesHistory(ctx context.Context, symbol string) ([]PublicTrade, error) {
	if symbol == "" {
		return nil, errors.Wrap(errors.ErrInvalidSymbol, "kuna: trade history requires a symbol")
	}
	var res []PublicTrade
	if err := c.public(ctx, "trades/"+symbol+"/hist", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}
