// Package upstream is a client for the third-party financial data API that
// serves stock prices and earnings call transcripts. Requests authenticate with
// a key carried in the X-Api-Key header.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.api-ninjas.com"
	apiKeyHeader   = "X-Api-Key"

	EndpointStockPrice = "stockprice"
	EndpointTranscript = "earningstranscript"
)

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s returned HTTP %d", e.Endpoint, e.StatusCode)
}

// IsNotFound reports whether err carries an upstream HTTP 404.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Quote is the upstream stock price payload. Price is nil when the field is
// absent or null.
type Quote struct {
	Ticker   string   `json:"ticker"`
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Exchange string   `json:"exchange"`
	Currency string   `json:"currency"`
	Updated  int64    `json:"updated"`
}

// Call describes one finished upstream request.
type Call struct {
	Endpoint   string
	Ticker     string
	StatusCode int
	Err        error
	Duration   time.Duration
}

// Outcome buckets a call for metrics and audit.
func (c Call) Outcome() string {
	switch {
	case c.Err == nil:
		return "success"
	case c.StatusCode == http.StatusNotFound:
		return "not_found"
	case c.StatusCode >= 200 && c.StatusCode <= 299:
		return "decode_error"
	case c.StatusCode != 0:
		return "http_error"
	default:
		return "transport_error"
	}
}

// Observer is notified after every upstream call.
type Observer func(ctx context.Context, c Call)

// Observers combines several observers into one, skipping nils.
func Observers(obs ...Observer) Observer {
	return func(ctx context.Context, c Call) {
		for _, o := range obs {
			if o != nil {
				o(ctx, c)
			}
		}
	}
}

// Client talks to the upstream API. It holds no credentials; the key is passed
// per call.
type Client struct {
	client   *http.Client
	baseURL  string
	observer Observer
}

// New creates a Client with the given options applied.
func New(opts ...Option) *Client {
	c := &Client{
		client:  &http.Client{},
		baseURL: defaultBaseURL,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Option configures a Client.
type Option func(*Client)

// WithClient sets the HTTP client.
func WithClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithObserver registers a callback invoked after each upstream call.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// StockPrice fetches the latest price for ticker.
func (c *Client) StockPrice(ctx context.Context, apiKey, ticker string) (*Quote, error) {
	q := url.Values{}
	q.Set("ticker", ticker)

	var quote Quote
	if err := c.get(ctx, apiKey, EndpointStockPrice, ticker, q, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// EarningsTranscript fetches the transcript for ticker's given fiscal quarter.
// The payload is returned as decoded so callers can pass it through untouched.
func (c *Client) EarningsTranscript(ctx context.Context, apiKey, ticker string, year, quarter int) (map[string]any, error) {
	q := url.Values{}
	q.Set("ticker", ticker)
	q.Set("year", strconv.Itoa(year))
	q.Set("quarter", strconv.Itoa(quarter))

	var payload map[string]any
	if err := c.get(ctx, apiKey, EndpointTranscript, ticker, q, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) get(ctx context.Context, apiKey, endpoint, ticker string, q url.Values, into any) (err error) {
	start := time.Now()
	status := 0
	defer func() {
		if c.observer != nil {
			c.observer(ctx, Call{
				Endpoint:   endpoint,
				Ticker:     ticker,
				StatusCode: status,
				Err:        err,
				Duration:   time.Since(start),
			})
		}
	}()

	reqURL := fmt.Sprintf("%s/v1/%s?%s", c.baseURL, endpoint, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set(apiKeyHeader, apiKey)
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req) //nolint:gosec // URL built from internal config
	if err != nil {
		return fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer func() { _ = res.Body.Close() }()

	status = res.StatusCode
	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, res.Body)
		return &StatusError{Endpoint: endpoint, StatusCode: res.StatusCode}
	}

	if err := json.NewDecoder(res.Body).Decode(into); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}
