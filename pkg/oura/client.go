// Package oura provides an authenticated client for the Oura Ring API v2.
//
// The client is stateless apart from the personal access token it carries;
// every request sends the token as a bearer Authorization header. It does
// not retry: upstream failures surface as errors at the call site, where
// the invocation boundary converts them to error-flagged tool results.
package oura

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/halcyon-health/oura-mcp-server/pkg/debug"
	"github.com/halcyon-health/oura-mcp-server/pkg/observability"
)

// DefaultBaseURL is the Oura API v2 user collection root.
const DefaultBaseURL = "https://api.ouraring.com/v2/usercollection"

// DateRange bounds a query by calendar date. Both fields are optional ISO
// dates (YYYY-MM-DD); empty fields are omitted from the request.
type DateRange struct {
	StartDate string
	EndDate   string
}

// Client performs HTTP requests against the Oura API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a Client that authenticates with the given personal
// access token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
		token:      token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sleep fetches sleep sessions within the given date range.
func (c *Client) Sleep(ctx context.Context, r DateRange) (*SleepResponse, error) {
	var resp SleepResponse
	if err := c.get(ctx, "sleep", r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DailyActivity fetches daily activity summaries within the given date range.
func (c *Client) DailyActivity(ctx context.Context, r DateRange) (*ActivityResponse, error) {
	var resp ActivityResponse
	if err := c.get(ctx, "daily_activity", r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DailyReadiness fetches daily readiness scores within the given date range.
func (c *Client) DailyReadiness(ctx context.Context, r DateRange) (*ReadinessResponse, error) {
	var resp ReadinessResponse
	if err := c.get(ctx, "daily_readiness", r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// HeartRate fetches heart rate samples within the given date range.
func (c *Client) HeartRate(ctx context.Context, r DateRange) (*HeartRateResponse, error) {
	var resp HeartRateResponse
	if err := c.get(ctx, "heartrate", r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Workouts fetches workout sessions within the given date range.
func (c *Client) Workouts(ctx context.Context, r DateRange) (*WorkoutResponse, error) {
	var resp WorkoutResponse
	if err := c.get(ctx, "workout", r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// get performs an authenticated GET against one collection endpoint and
// decodes the JSON envelope into out.
func (c *Client) get(ctx context.Context, endpoint string, r DateRange, out any) error {
	u := c.baseURL + "/" + endpoint
	params := url.Values{}
	if r.StartDate != "" {
		params.Set("start_date", r.StartDate)
	}
	if r.EndDate != "" {
		params.Set("end_date", r.EndDate)
	}
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", endpoint, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	debug.Log("upstream", "request", "endpoint", endpoint, "start_date", r.StartDate, "end_date", r.EndDate)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	observability.UpstreamLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.UpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("requesting %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		observability.UpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("Oura API error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	observability.UpstreamRequestsTotal.WithLabelValues(endpoint, "ok").Inc()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", endpoint, err)
	}
	return nil
}
