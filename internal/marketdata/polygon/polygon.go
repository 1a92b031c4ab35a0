// Package polygon fetches daily aggregate bars from the Polygon REST API.
package polygon

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"market-trend-analyzer/internal/api"
	"market-trend-analyzer/internal/interfaces"
	"market-trend-analyzer/internal/logger"
	"market-trend-analyzer/internal/types"
)

const defaultBaseURL = "https://api.polygon.io"

// Client is a Polygon aggregates client.
type Client struct {
	c      *api.Client
	apiKey string
}

var _ interfaces.BarProvider = (*Client)(nil)

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the API base URL, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.c = api.NewClient(
			api.WithBaseURL(baseURL),
			api.WithTimeout(15*time.Second),
			api.WithLogging(true),
		)
	}
}

// New creates a Polygon client with the given API key.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		c: api.NewClient(
			api.WithBaseURL(defaultBaseURL),
			api.WithTimeout(15*time.Second),
			api.WithLogging(true),
		),
		apiKey: apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bars fetches one daily bar per trading day in [from, to]. Provider
// failures are returned to the caller, never swallowed.
func (c *Client) Bars(ctx context.Context, ticker string, from, to time.Time) ([]types.Bar, error) {
	if c.apiKey == "" {
		return nil, errors.New("POLYGON_API_KEY missing")
	}

	path := fmt.Sprintf("/v2/aggs/ticker/%s/range/1/day/%s/%s",
		url.PathEscape(ticker), from.Format("2006-01-02"), to.Format("2006-01-02"))
	query := url.Values{
		"adjusted": {"true"},
		"sort":     {"asc"},
		"limit":    {"50000"},
		"apiKey":   {c.apiKey},
	}

	body, err := c.c.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("polygon aggregates request: %w", err)
	}

	status := gjson.GetBytes(body, "status").String()
	if status != "OK" && status != "DELAYED" {
		return nil, fmt.Errorf("polygon aggregates status %q: %s",
			status, gjson.GetBytes(body, "error").String())
	}

	results := gjson.GetBytes(body, "results").Array()
	bars := make([]types.Bar, 0, len(results))
	for _, r := range results {
		bars = append(bars, types.Bar{
			// Polygon timestamps are epoch milliseconds.
			Ts:     r.Get("t").Int() / 1000,
			Open:   r.Get("o").Float(),
			High:   r.Get("h").Float(),
			Low:    r.Get("l").Float(),
			Close:  r.Get("c").Float(),
			Volume: r.Get("v").Float(),
		})
	}

	logger.Debug(ctx, "Polygon bars fetched", "ticker", ticker, "count", len(bars))
	return bars, nil
}
