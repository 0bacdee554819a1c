package kuna

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"kunaclient/pkg/errors"
)

// SortOrder controls the ordering of history listings.
type SortOrder int

const (
	SortAsc  SortOrder = 1
	SortDesc SortOrder = -1
)

const defaultHistoryLimit = 25

// OrderType enumerates the execution types accepted by order submission.
type OrderType string

const (
	OrderTypeLimit         OrderType = "limit"
	OrderTypeMarket        OrderType = "market"
	OrderTypeMarketByQuote OrderType = "market_by_quote"
)

// GetAccountInfo returns the authenticated account profile.
func (c *Client) GetAccountInfo(ctx context.Context) (*AccountInfo, error) {
	var res AccountInfo
	if err := c.private(ctx, "auth/me", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetAccountWallets returns the account balances per currency.
func (c *Client) GetAccountWallets(ctx context.Context) ([]Wallet, error) {
	var res []Wallet
	if err := c.private(ctx, "auth/r/wallets", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetAccountOrders returns active orders, optionally scoped to a market.
func (c *Client) GetAccountOrders(ctx context.Context, market string) ([]Order, error) {
	path := "auth/r/orders"
	if market != "" {
		path += "/" + market
	}
	var res []Order
	if err := c.private(ctx, path, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// HistoryOptions filters the order history listing. Zero values fall
// back to the remote defaults (limit 25, ascending).
type HistoryOptions struct {
	Market string
	Start  time.Time
	End    time.Time
	Limit  int
	Sort   SortOrder
}

type historyParams struct {
	Limit int   `json:"limit"`
	Sort  int   `json:"sort"`
	Start int64 `json:"start,omitempty"`
	End   int64 `json:"end,omitempty"`
}

// GetOrdersHistory returns completed orders, optionally scoped to a
// market and a time window.
func (c *Client) GetOrdersHistory(ctx context.Context, opts HistoryOptions) ([]Order, error) {
	path := "auth/r/orders/hist"
	if opts.Market != "" {
		path = "auth/r/orders/" + opts.Market + "/hist"
	}

	params := historyParams{Limit: opts.Limit, Sort: int(opts.Sort)}
	if params.Limit <= 0 {
		params.Limit = defaultHistoryLimit
	}
	if params.Sort == 0 {
		params.Sort = int(SortAsc)
	}
	if !opts.Start.IsZero() {
		params.Start = opts.Start.UnixMilli()
	}
	if !opts.End.IsZero() {
		params.End = opts.End.UnixMilli()
	}

	var res []Order
	if err := c.private(ctx, path, params, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// OrderRequest describes a new order. Amount is signed: positive buys,
// negative sells. Price is only meaningful for limit orders.
type OrderRequest struct {
	Symbol string
	Type   OrderType
	Amount decimal.Decimal
	Price  decimal.Decimal
}

type submitParams struct {
	Symbol string      `json:"symbol"`
	Type   OrderType   `json:"type"`
	Amount json.Number `json:"amount"`
	Price  json.Number `json:"price,omitempty"`
}

// SubmitOrder places a new order on the exchange.
func (c *Client) SubmitOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if req.Symbol == "" {
		return nil, errors.Wrap(errors.ErrInvalidSymbol, "kuna: order submission requires a symbol")
	}
	if req.Type == "" || req.Amount.IsZero() {
		return nil, errors.Wrap(errors.ErrInvalidInput, "kuna: order submission requires a type and a non-zero amount")
	}

	params := submitParams{
		Symbol: req.Symbol,
		Type:   req.Type,
		Amount: json.Number(req.Amount.String()),
	}
	if !req.Price.IsZero() {
		params.Price = json.Number(req.Price.String())
	}

	var res Order
	if err := c.private(ctx, "auth/w/order/submit", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

type cancelParams struct {
	OrderID int64 `json:"order_id"`
}

// CancelOrder cancels an active order by its exchange id.
func (c *Client) CancelOrder(ctx context.Context, orderID int64) (*Order, error) {
	if orderID <= 0 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "kuna: invalid order id %d", orderID)
	}
	var res Order
	if err := c.private(ctx, "order/cancel", cancelParams{OrderID: orderID}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
