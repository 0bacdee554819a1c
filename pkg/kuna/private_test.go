package kuna

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kunaclient/pkg/errors"
)

const orderRow = `[100279610, null, null, "xrpuah", 1560089091000, 1560089091000, "45.0", "45.0", "LIMIT", null, null, null, null, "ACTIVE", null, null, "3.0", null]`

func TestGetAccountWallets(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/r/wallets", r.URL.Path)
		w.Write([]byte(`[["exchange", "UAH", 35.0, null, 35.0], ["exchange", "BTC", 1.5, null, 0.5]]`))
	})
	client := newTestClient(t, true, handler)

	wallets, err := client.GetAccountWallets(context.Background())
	require.NoError(t, err)
	require.Len(t, wallets, 2)

	assert.Equal(t, "exchange", wallets[0].Type)
	assert.Equal(t, "UAH", wallets[0].Currency)
	assert.Equal(t, "35", wallets[0].Total.String())
	assert.True(t, wallets[0].Unsettled.IsZero())
	assert.Equal(t, "0.5", wallets[1].Available.String())
}

func TestGetAccountOrders_Paths(t *testing.T) {
	tests := []struct {
		name     string
		market   string
		wantPath string
	}{
		{"all markets", "", "/auth/r/orders"},
		{"single market", "xrpuah", "/auth/r/orders/xrpuah"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantPath, r.URL.Path)
				w.Write([]byte("[" + orderRow + "]"))
			})
			client := newTestClient(t, true, handler)

			orders, err := client.GetAccountOrders(context.Background(), tt.market)
			require.NoError(t, err)
			require.Len(t, orders, 1)
			assert.Equal(t, int64(100279610), orders[0].ID)
			assert.Equal(t, "xrpuah", orders[0].Symbol)
			assert.Equal(t, "ACTIVE", orders[0].Status)
		})
	}
}

func TestGetOrdersHistory_Defaults(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/r/orders/hist", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var params map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &params))
		assert.Equal(t, float64(25), params["limit"])
		assert.Equal(t, float64(1), params["sort"])
		assert.NotContains(t, params, "start")
		assert.NotContains(t, params, "end")

		w.Write([]byte(`[]`))
	})
	client := newTestClient(t, true, handler)

	_, err := client.GetOrdersHistory(context.Background(), HistoryOptions{})
	require.NoError(t, err)
}

func TestGetOrdersHistory_WithOptions(t *testing.T) {
	start := time.UnixMilli(1560000000000)
	end := time.UnixMilli(1560100000000)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/r/orders/xrpuah/hist", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var params map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &params))
		assert.Equal(t, float64(50), params["limit"])
		assert.Equal(t, float64(-1), params["sort"])
		assert.Equal(t, float64(1560000000000), params["start"])
		assert.Equal(t, float64(1560100000000), params["end"])

		w.Write([]byte("[" + orderRow + "]"))
	})
	client := newTestClient(t, true, handler)

	orders, err := client.GetOrdersHistory(context.Background(), HistoryOptions{
		Market: "xrpuah",
		Start:  start,
		End:    end,
		Limit:  50,
		Sort:   SortDesc,
	})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "45", orders[0].OriginalAmount.String())
	assert.Equal(t, "3", orders[0].Price.String())
}

func TestSubmitOrder(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/w/order/submit", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		// Amounts must be wire-encoded as numbers, not strings.
		assert.JSONEq(t, `{"symbol":"xrpuah","type":"limit","amount":-45,"price":3}`, string(body))

		// The signature covers the exact body bytes.
		nonce := r.Header.Get("kun-nonce")
		assert.Equal(t, sign(testSecretKey, "auth/w/order/submit", nonce, body), r.Header.Get("kun-signature"))

		w.Write([]byte(`[100279610, null, null, "xrpuah", 1560089091000, 1560089091000, "-45.0", "-45.0", "LIMIT", null, null, null, null, "ACTIVE", null, null, "3.0", null]`))
	})
	client := newTestClient(t, true, handler)

	order, err := client.SubmitOrder(context.Background(), OrderRequest{
		Symbol: "xrpuah",
		Type:   OrderTypeLimit,
		Amount: decimal.NewFromInt(-45),
		Price:  decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100279610), order.ID)
	assert.Equal(t, OrderSideSell, order.Side())
	assert.Equal(t, "3", order.Price.String())
}

func TestSubmitOrder_MarketOmitsPrice(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"symbol":"btcusdt","type":"market","amount":0.1}`, string(body))

		w.Write([]byte(orderRow))
	})
	client := newTestClient(t, true, handler)

	_, err := client.SubmitOrder(context.Background(), OrderRequest{
		Symbol: "btcusdt",
		Type:   OrderTypeMarket,
		Amount: decimal.NewFromFloat(0.1),
	})
	require.NoError(t, err)
}

func TestSubmitOrder_Validation(t *testing.T) {
	tests := []struct {
		name     string
		req      OrderRequest
		sentinel error
	}{
		{
			name:     "missing symbol",
			req:      OrderRequest{Type: OrderTypeLimit, Amount: decimal.NewFromInt(1)},
			sentinel: errors.ErrInvalidSymbol,
		},
		{
			name:     "missing type",
			req:      OrderRequest{Symbol: "btcusdt", Amount: decimal.NewFromInt(1)},
			sentinel: errors.ErrInvalidInput,
		},
		{
			name:     "zero amount",
			req:      OrderRequest{Symbol: "btcusdt", Type: OrderTypeLimit},
			sentinel: errors.ErrInvalidInput,
		},
	}

	client := newTestClient(t, true, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("invalid requests must not reach the server")
	}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.SubmitOrder(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel))
		})
	}
}

func TestCancelOrder(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/order/cancel", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"order_id":100279610}`, string(body))

		w.Write([]byte(`[100279610, null, null, "xrpuah", 1560089091000, 1560089095000, "45.0", "45.0", "LIMIT", null, null, null, null, "CANCELED", null, null, "3.0", null]`))
	})
	client := newTestClient(t, true, handler)

	order, err := client.CancelOrder(context.Background(), 100279610)
	require.NoError(t, err)
	assert.Equal(t, "CANCELED", order.Status)
}

func TestCancelOrder_InvalidID(t *testing.T) {
	client := newTestClient(t, true, http.NotFoundHandler())

	_, err := client.CancelOrder(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}
