// ABOUTME: HTTP client for the backend automation webhook
// ABOUTME: Wraps each request in the action/timestamp envelope and throttles outbound calls
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/harperreed/phonestore/outcome"
)

// DefaultTimeout bounds a single webhook round trip.
const DefaultTimeout = 30 * time.Second

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

// TimestampFormat is the envelope timestamp layout (ISO-8601, UTC, millis).
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// ErrNoEndpoint is returned when Send is called with an empty URL.
var ErrNoEndpoint = errors.New("webhook url is not configured")

// Options configures a Client. Zero values pick sensible defaults.
type Options struct {
	Timeout time.Duration
	// RequestsPerSecond limits outbound calls; 0 disables throttling.
	RequestsPerSecond float64
	Burst             int
	HTTPClient        *http.Client
	Logger            *log.Logger
	Now               func() time.Time
}

// Client sends action-tagged JSON requests to a webhook URL.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
	now        func() time.Time
}

// New creates a Client from opts.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	c := &Client{
		httpClient: httpClient,
		logger:     logger.WithPrefix("webhook"),
		now:        now,
	}
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return c
}

// Encode builds the JSON envelope for req: its own fields plus action and timestamp.
func Encode(req Request, at time.Time) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", req.Action(), err)
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("failed to build envelope for %s: %w", req.Action(), err)
	}

	action, _ := json.Marshal(req.Action())
	ts, _ := json.Marshal(at.UTC().Format(TimestampFormat))
	fields["action"] = action
	fields["timestamp"] = ts

	return json.Marshal(fields)
}

// Send posts req to url.
//
// Errors are *outcome.Error values: configuration when url is empty,
// validation when req is missing required fields, network on transport
// failure and remote rejection on a non-2xx status. On rejection the
// response is returned alongside the error so callers can read its body.
func (c *Client) Send(ctx context.Context, url string, req Request) (*Response, error) {
	if url == "" {
		return nil, &outcome.Error{Kind: outcome.KindConfiguration, Message: "webhook is not configured", Err: ErrNoEndpoint}
	}
	if v, ok := req.(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, &outcome.Error{Kind: outcome.KindValidation, Message: err.Error(), Err: err}
		}
	}

	payload, err := Encode(req, c.now())
	if err != nil {
		return nil, &outcome.Error{Kind: outcome.KindValidation, Message: "request could not be encoded", Err: err}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, outcome.Network("request was cancelled", fmt.Errorf("failed to wait for rate limiter: %w", err))
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &outcome.Error{Kind: outcome.KindConfiguration, Message: "webhook url is invalid", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := c.now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Debug("request failed", "action", req.Action(), "err", err)
		return nil, outcome.Network("could not reach the shop server", fmt.Errorf("failed to send %s: %w", req.Action(), err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, outcome.Network("could not read the shop server response", fmt.Errorf("failed to read %s response: %w", req.Action(), err))
	}

	r := &Response{StatusCode: resp.StatusCode, Body: body}
	c.logger.Debug("request complete", "action", req.Action(), "status", resp.StatusCode, "elapsed", c.now().Sub(start))

	if !r.OK() {
		cause := fmt.Errorf("%s returned status %d", req.Action(), resp.StatusCode)
		return r, outcome.Rejected(r.Message(), cause)
	}
	return r, nil
}
