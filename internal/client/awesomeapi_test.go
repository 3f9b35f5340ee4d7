package client

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usdQuote = `{
  "USDBRL": {
    "code": "USD",
    "codein": "BRL",
    "name": "Dólar Americano/Real Brasileiro",
    "high": "5.4321",
    "low": "5.3012",
    "bid": "5.4001",
    "ask": "5.4011",
    "timestamp": "1718899200",
    "create_date": "2024-06-20 13:00:00"
  }
}`

func TestLookupQuote(t *testing.T) {
	srv := serveJSON(t, "/json/last/USD-BRL", http.StatusOK, usdQuote)

	q, err := newTestClient(srv).LookupQuote(context.Background(), " usd ")
	require.NoError(t, err)

	assert.Equal(t, "USD", q.Currency)
	assert.InDelta(t, 5.4001, q.Bid, 1e-9)
	assert.InDelta(t, 5.4321, q.High, 1e-9)
	assert.InDelta(t, 5.3012, q.Low, 1e-9)
	assert.Equal(t, "2024-06-20 13:00:00", q.CreatedAt)

	// 13:00 in São Paulo (UTC-3) is 16:00 UTC.
	assert.Equal(t, time.Date(2024, 6, 20, 16, 0, 0, 0, time.UTC), q.UpdatedAt.UTC())
}

func TestLookupQuoteNotFound(t *testing.T) {
	t.Run("404", func(t *testing.T) {
		srv := serveJSON(t, "", http.StatusNotFound, `{"status":404,"code":"CoinNotExists","message":"moeda nao encontrada XYZ-BRL"}`)

		_, err := newTestClient(srv).LookupQuote(context.Background(), "XYZ")
		assert.ErrorIs(t, err, ErrCurrencyNotFound)
	})

	t.Run("missing pair", func(t *testing.T) {
		srv := serveJSON(t, "", http.StatusOK, `{}`)

		_, err := newTestClient(srv).LookupQuote(context.Background(), "EUR")
		assert.ErrorIs(t, err, ErrCurrencyNotFound)
	})
}

func TestLookupQuoteBadNumber(t *testing.T) {
	srv := serveJSON(t, "", http.StatusOK, `{"EURBRL":{"bid":"n/a","high":"1","low":"1","create_date":"2024-06-20 13:00:00"}}`)

	_, err := newTestClient(srv).LookupQuote(context.Background(), "EUR")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestNormalizeCurrency(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "usd", want: "USD"},
		{in: "  eur\n", want: "EUR"},
		{in: "GBP", want: "GBP"},
		{in: "US", wantErr: true},
		{in: "USDT", wantErr: true},
		{in: "U5D", wantErr: true},
		{in: "", wantErr: true},
		{in: "ÉUR", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeCurrency(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCurrency)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
