package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points every endpoint at srv.
func newTestClient(srv *httptest.Server) *Client {
	return New(Endpoints{ViaCEP: srv.URL, AwesomeAPI: srv.URL, RandomUser: srv.URL}, 5*time.Second)
}

func serveJSON(t *testing.T, wantPath string, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		if wantPath != "" {
			assert.Equal(t, wantPath, r.URL.Path)
		}
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewFillsDefaultEndpoints(t *testing.T) {
	c := New(Endpoints{ViaCEP: "http://local"}, time.Second)

	assert.Equal(t, "http://local", c.endpoints.ViaCEP)
	assert.Equal(t, DefaultAwesomeAPIURL, c.endpoints.AwesomeAPI)
	assert.Equal(t, DefaultRandomUserURL, c.endpoints.RandomUser)
	assert.Equal(t, time.Second, c.httpClient.Timeout)
}

func TestGetJSONStatusError(t *testing.T) {
	srv := serveJSON(t, "", http.StatusInternalServerError, "boom")

	var v map[string]any
	err := newTestClient(srv).getJSON(context.Background(), srv.URL+"/x", &v)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "boom", statusErr.Body)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, "upstream error (HTTP 500): boom", err.Error())
}

func TestGetJSONDecodeError(t *testing.T) {
	srv := serveJSON(t, "", http.StatusOK, "<html>")

	var v map[string]any
	err := newTestClient(srv).getJSON(context.Background(), srv.URL, &v)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestGetJSONTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	var v map[string]any
	err := New(Endpoints{}, time.Second).getJSON(context.Background(), url, &v)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestGetJSONContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var v map[string]any
	err := newTestClient(srv).getJSON(ctx, srv.URL, &v)
	assert.ErrorIs(t, err, context.Canceled)
}
