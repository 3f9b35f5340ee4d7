package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dromara/carbon/v2"
	"github.com/vaultpass/toolbox/internal/model"
)

// AwesomeAPI reports create_date in Brasília local time.
const quoteTimezone = "America/Sao_Paulo"

var (
	ErrInvalidCurrency  = errors.New("currency code must be 3 letters")
	ErrCurrencyNotFound = errors.New("currency not found")
)

type awesomeQuote struct {
	Code       string `json:"code"`
	Bid        string `json:"bid"`
	High       string `json:"high"`
	Low        string `json:"low"`
	CreateDate string `json:"create_date"`
}

// NormalizeCurrency trims and upper-cases code, returning ErrInvalidCurrency
// unless the result is exactly three ASCII letters.
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", ErrInvalidCurrency
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return "", ErrInvalidCurrency
		}
	}
	return code, nil
}

// LookupQuote fetches the latest quote of code against BRL.
func (c *Client) LookupQuote(ctx context.Context, code string) (model.Quote, error) {
	code, err := NormalizeCurrency(code)
	if err != nil {
		return model.Quote{}, err
	}

	var body map[string]awesomeQuote
	url := fmt.Sprintf("%s/json/last/%s-BRL", strings.TrimRight(c.endpoints.AwesomeAPI, "/"), code)
	if err := c.getJSON(ctx, url, &body); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return model.Quote{}, fmt.Errorf("%w: %s", ErrCurrencyNotFound, code)
		}
		return model.Quote{}, fmt.Errorf("awesomeapi %s: %w", code, err)
	}

	raw, ok := body[code+"BRL"]
	if !ok {
		return model.Quote{}, fmt.Errorf("%w: %s", ErrCurrencyNotFound, code)
	}

	q := model.Quote{Currency: code, CreatedAt: raw.CreateDate}
	for _, f := range []struct {
		name string
		in   string
		out  *float64
	}{
		{"bid", raw.Bid, &q.Bid},
		{"high", raw.High, &q.High},
		{"low", raw.Low, &q.Low},
	} {
		v, err := strconv.ParseFloat(f.in, 64)
		if err != nil {
			return model.Quote{}, fmt.Errorf("%w: %s %q is not a number", ErrDecode, f.name, f.in)
		}
		*f.out = v
	}

	if raw.CreateDate != "" {
		ts := carbon.ParseByLayout(raw.CreateDate, carbon.DateTimeLayout, quoteTimezone)
		if ts.Error != nil {
			return model.Quote{}, fmt.Errorf("%w: create_date %q: %w", ErrDecode, raw.CreateDate, ts.Error)
		}
		q.UpdatedAt = ts.StdTime()
	}

	return q, nil
}
