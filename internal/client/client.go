// Package client talks to the public JSON APIs behind the lookup tools:
// ViaCEP for postal codes, AwesomeAPI for exchange rates and randomuser.me
// for fake profiles. Every call is a single GET with no retries.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultViaCEPURL     = "https://viacep.com.br"
	DefaultAwesomeAPIURL = "https://economia.awesomeapi.com.br"
	DefaultRandomUserURL = "https://randomuser.me"

	userAgent    = "toolbox/1.0"
	maxBodyBytes = 1 << 20 // 1MB
)

var (
	ErrTransport = errors.New("upstream request failed")
	ErrUpstream  = errors.New("upstream returned an error status")
	ErrDecode    = errors.New("unexpected upstream response")
)

// StatusError carries a non-2xx upstream response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream error (HTTP %d)", e.StatusCode)
	}
	return fmt.Sprintf("upstream error (HTTP %d): %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrUpstream }

// Endpoints holds the base URLs of the upstream APIs.
type Endpoints struct {
	ViaCEP     string
	AwesomeAPI string
	RandomUser string
}

// DefaultEndpoints returns the public production URLs.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		ViaCEP:     DefaultViaCEPURL,
		AwesomeAPI: DefaultAwesomeAPIURL,
		RandomUser: DefaultRandomUserURL,
	}
}

// Client wraps an HTTP client with an explicit timeout instead of http.DefaultClient.
type Client struct {
	httpClient *http.Client
	endpoints  Endpoints
}

// New creates a Client. Empty endpoint fields fall back to the defaults.
func New(endpoints Endpoints, timeout time.Duration) *Client {
	def := DefaultEndpoints()
	if endpoints.ViaCEP == "" {
		endpoints.ViaCEP = def.ViaCEP
	}
	if endpoints.AwesomeAPI == "" {
		endpoints.AwesomeAPI = def.AwesomeAPI
	}
	if endpoints.RandomUser == "" {
		endpoints.RandomUser = def.RandomUser
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoints:  endpoints,
	}
}

// getJSON issues a GET and decodes a 2xx JSON body into v.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, maxBodyBytes)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: decode body: %w", ErrDecode, err)
	}
	return nil
}
