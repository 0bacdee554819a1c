package kuna

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"kunaclient/pkg/errors"
)

// ServerTime is the exchange clock. The misspelled milliseconds key is
// part of the remote contract.
type ServerTime struct {
	Timestamp   int64 `json:"timestamp"`
	TimestampMs int64 `json:"timestamp_miliseconds"`
}

// Time converts the millisecond reading into a time.Time.
func (s ServerTime) Time() time.Time {
	return time.UnixMilli(s.TimestampMs)
}

// Currency describes an asset listed on the exchange.
type Currency struct {
	ID           int               `json:"id"`
	Code         string            `json:"code"`
	Name         string            `json:"name"`
	Coin         bool              `json:"coin"`
	ExplorerLink string            `json:"explorer_link"`
	SortOrder    int               `json:"sort_order"`
	Precision    CurrencyPrecision `json:"precision"`
}

type CurrencyPrecision struct {
	Real  int `json:"real"`
	Trade int `json:"trade"`
}

// Market describes a trading pair.
type Market struct {
	ID               string          `json:"id"`
	BaseUnit         string          `json:"base_unit"`
	QuoteUnit        string          `json:"quote_unit"`
	BasePrecision    int             `json:"base_precision"`
	QuotePrecision   int             `json:"quote_precision"`
	DisplayPrecision int             `json:"display_precision"`
	PriceChange      decimal.Decimal `json:"price_change"`
}

// Ticker is one row of the tickers endpoint. The wire format is a
// Bitfinex-style positional array:
// [symbol, bid, bidSize, ask, askSize, change, changePct, last, volume, high, low]
// with nullable numeric slots.
type Ticker struct {
	Symbol         string
	Bid            decimal.Decimal
	BidSize        decimal.Decimal
	Ask            decimal.Decimal
	AskSize        decimal.Decimal
	PriceChange    decimal.Decimal
	PriceChangePct decimal.Decimal
	Last           decimal.Decimal
	Volume         decimal.Decimal
	High           decimal.Decimal
	Low            decimal.Decimal
}

func (t *Ticker) UnmarshalJSON(data []byte) error {
	var row []json.RawMessage
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}
	if len(row) < 11 {
		return errors.Wrapf(errors.ErrInvalidInput, "ticker row has %d elements, want 11", len(row))
	}
	if err := json.Unmarshal(row[0], &t.Symbol); err != nil {
		return errors.Wrap(err, "ticker symbol")
	}
	slots := []*decimal.Decimal{
		&t.Bid, &t.BidSize, &t.Ask, &t.AskSize, &t.PriceChange,
		&t.PriceChangePct, &t.Last, &t.Volume, &t.High, &t.Low,
	}
	for i, slot := range slots {
		value, err := nullableDecimal(row[i+1])
		if err != nil {
			return errors.Wrapf(err, "ticker %s slot %d", t.Symbol, i+1)
		}
		*slot = value
	}
	return nil
}

// BookLevel is one aggregated order book level.
type BookLevel struct {
	Price  decimal.Decimal
	Volume decimal.Decimal
	Count  int
}

// bookRow is the wire shape [price, volume, count]; volume keeps the
// exchange's sign convention (positive bid, negative ask).
type bookRow struct {
	Price  decimal.Decimal
	Volume decimal.Decimal
	Count  int
}

func (r *bookRow) UnmarshalJSON(data []byte) error {
	var row []json.RawMessage
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}
	if len(row) < 3 {
		return errors.Wrapf(errors.ErrInvalidInput, "book row has %d elements, want 3", len(row))
	}
	if err := json.Unmarshal(row[0], &r.Price); err != nil {
		return errors.Wrap(err, "book price")
	}
	if err := json.Unmarshal(row[1], &r.Volume); err != nil {
		return errors.Wrap(err, "book volume")
	}
	if err := json.Unmarshal(row[2], &r.Count); err != nil {
		return errors.Wrap(err, "book count")
	}
	return nil
}

// OrderBook is the aggregated book for a single market, split into
// sides with volumes normalized to positive values.
type OrderBook struct {
	Symbol string
	Bids   []BookLevel
	Asks   []BookLevel
}

func newOrderBook(symbol string, rows []bookRow) *OrderBook {
	book := &OrderBook{Symbol: symbol}
	for _, row := range rows {
		level := BookLevel{Price: row.Price, Volume: row.Volume, Count: row.Count}
		if row.Volume.IsNegative() {
			level.Volume = row.Volume.Neg()
			book.Asks = append(book.Asks, level)
			continue
		}
		book.Bids = append(book.Bids, level)
	}
	return book
}

// Fee is one entry of the fee schedule.
type Fee struct {
	Code         string    `json:"code"`
	Category     string    `json:"category"`
	DepositFees  []FeeRate `json:"deposit_fees"`
	WithdrawFees []FeeRate `json:"withdraw_fees"`
}

type FeeRate struct {
	Type  string    `json:"type"`
	Asset FeeAmount `json:"asset"`
}

type FeeAmount struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// PublicTrade is one public trade print: [id, mts, amount, price].
type PublicTrade struct {
	ID        int64
	Timestamp time.Time
	Amount    decimal.Decimal
	Price     decimal.Decimal
}

func (p *PublicTrade) UnmarshalJSON(data []byte) error {
	var row []json.RawMessage
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}
	if len(row) < 4 {
		return errors.Wrapf(errors.ErrInvalidInput, "trade row has %d elements, want 4", len(row))
	}
	var mts int64
	if err := json.Unmarshal(row[0], &p.ID); err != nil {
		return errors.Wrap(err, "trade id")
	}
	if err := json.Unmarshal(row[1], &mts); err != nil {
		return errors.Wrap(err, "trade timestamp")
	}
	p.Timestamp = time.UnixMilli(mts)
	if err := json.Unmarshal(row[2], &p.Amount); err != nil {
		return errors.Wrap(err, "trade amount")
	}
	if err := json.Unmarshal(row[3], &p.Price); err != nil {
		return errors.Wrap(err, "trade price")
	}
	return nil
}

// AccountInfo is the auth/me payload.
type AccountInfo struct {
	Email                string            `json:"email"`
	KunaID               string            `json:"kunaid"`
	TwoFactor            bool              `json:"two_factor"`
	WithdrawConfirmation bool              `json:"withdraw_confirmation"`
	PublicKeys           map[string]string `json:"public_keys"`
	Announcements        bool              `json:"announcements"`
}

// Wallet is one row of auth/r/wallets:
// [type, currency, total, unsettled, available].
type Wallet struct {
	Type      string
	Currency  string
	Total     decimal.Decimal
	Unsettled decimal.Decimal
	Available decimal.Decimal
}

func (w *Wallet) UnmarshalJSON(data []byte) error {
	var row []json.RawMessage
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}
	if len(row) < 5 {
		return errors.Wrapf(errors.ErrInvalidInput, "wallet row has %d elements, want 5", len(row))
	}
	if err := json.Unmarshal(row[0], &w.Type); err != nil {
		return errors.Wrap(err, "wallet type")
	}
	if err := json.Unmarshal(row[1], &w.Currency); err != nil {
		return errors.Wrap(err, "wallet currency")
	}
	var err error
	if w.Total, err = nullableDecimal(row[2]); err != nil {
		return errors.Wrap(err, "wallet total")
	}
	if w.Unsettled, err = nullableDecimal(row[3]); err != nil {
		return errors.Wrap(err, "wallet unsettled")
	}
	if w.Available, err = nullableDecimal(row[4]); err != nil {
		return errors.Wrap(err, "wallet available")
	}
	return nil
}

// OrderSide is derived from the sign of the order amount.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "buy"
	OrderSideSell OrderSide = "sell"
)

// Order is one row of the auth/r/orders endpoints. The wire format is a
// positional array; only the slots the exchange populates are mapped:
// 0 id, 3 symbol, 4 created_at, 5 updated_at, 6 amount, 7 original
// amount, 8 type, 13 status, 16 price, 17 average price.
type Order struct {
	ID             int64
	Symbol         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Amount         decimal.Decimal
	OriginalAmount decimal.Decimal
	Type           string
	Status         string
	Price          decimal.Decimal
	AvgPrice       decimal.Decimal
}

// Side reports buy for positive original amounts and sell otherwise.
func (o Order) Side() OrderSide {
	if o.OriginalAmount.IsNegative() {
		return OrderSideSell
	}
	return OrderSideBuy
}

func (o *Order) UnmarshalJSON(data []byte) error {
	var row []json.RawMessage
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}
	if len(row) < 18 {
		return errors.Wrapf(errors.ErrInvalidInput, "order row has %d elements, want 18", len(row))
	}
	if err := json.Unmarshal(row[0], &o.ID); err != nil {
		return errors.Wrap(err, "order id")
	}
	if err := json.Unmarshal(row[3], &o.Symbol); err != nil {
		return errors.Wrap(err, "order symbol")
	}
	var created, updated int64
	if err := json.Unmarshal(row[4], &created); err != nil {
		return errors.Wrap(err, "order created_at")
	}
	if err := json.Unmarshal(row[5], &updated); err != nil {
		return errors.Wrap(err, "order updated_at")
	}
	o.CreatedAt = time.UnixMilli(created)
	o.UpdatedAt = time.UnixMilli(updated)
	var err error
	if o.Amount, err = nullableDecimal(row[6]); err != nil {
		return errors.Wrap(err, "order amount")
	}
	if o.OriginalAmount, err = nullableDecimal(row[7]); err != nil {
		return errors.Wrap(err, "order original amount")
	}
	if err := json.Unmarshal(row[8], &o.Type); err != nil {
		return errors.Wrap(err, "order type")
	}
	if err := unmarshalNullableString(row[13], &o.Status); err != nil {
		return errors.Wrap(err, "order status")
	}
	if o.Price, err = nullableDecimal(row[16]); err != nil {
		return errors.Wrap(err, "order price")
	}
	if o.AvgPrice, err = nullableDecimal(row[17]); err != nil {
		return errors.Wrap(err, "order average price")
	}
	return nil
}

func nullableDecimal(raw json.RawMessage) (decimal.Decimal, error) {
	if isNull(raw) {
		return decimal.Zero, nil
	}
	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

func unmarshalNullableString(raw json.RawMessage, target *string) error {
	if isNull(raw) {
		return nil
	}
	return json.Unmarshal(raw, target)
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
