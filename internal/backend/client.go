// Package backend is the typed HTTP client for the remote AI travel backend.
//
// Every JSON call goes through one request path: connection-level failures
// are retried with exponential backoff, HTTP error statuses never are.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/neexbeast/travelviz/internal/config"
)

// maxErrorBody caps how much of an error response is read looking for a detail.
const maxErrorBody = 64 << 10

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Client calls the backend at a fixed base URL.
type Client struct {
	baseURL       string
	http          *http.Client
	upload        *http.Client
	retries       int
	baseDelay     time.Duration
	healthTimeout time.Duration
	sleep         SleepFunc
	obs           *Observer
	log           *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the client used for JSON requests and health checks.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithUploadClient replaces the client used for photo uploads.
func WithUploadClient(hc *http.Client) Option {
	return func(c *Client) { c.upload = hc }
}

// WithSleep replaces the backoff wait.
func WithSleep(fn SleepFunc) Option {
	return func(c *Client) { c.sleep = fn }
}

// WithObserver records request metrics.
func WithObserver(o *Observer) Option {
	return func(c *Client) { c.obs = o }
}

// New builds a Client from cfg.
func New(cfg config.BackendConfig, log *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		http:          &http.Client{Timeout: cfg.RequestTimeout()},
		upload:        &http.Client{Timeout: cfg.UploadTimeout()},
		retries:       cfg.Retries(),
		baseDelay:     cfg.RetryBaseDelay(),
		healthTimeout: cfg.HealthTimeout(),
		sleep:         sleepCtx,
		log:           log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root.
func (c *Client) BaseURL() string { return c.baseURL }

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// backoff returns the wait before retry number attempt (0-based).
func (c *Client) backoff(attempt int) time.Duration {
	return c.baseDelay << attempt
}

// request sends a JSON request and decodes a 2xx body into out.
// body and out may be nil.
func (c *Client) request(ctx context.Context, method, endpoint string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request for %s: %w", endpoint, err)
		}
		payload = b
	}

	start := time.Now()
	for attempt := 0; ; attempt++ {
		err := c.do(ctx, method, endpoint, query, payload, out)
		if err == nil || !IsRetryable(err) || attempt >= c.retries {
			c.obs.observe(endpoint, start, err)
			if err != nil {
				c.log.Error("backend request failed", "endpoint", endpoint, "attempts", attempt+1, "err", err)
			}
			return err
		}

		delay := c.backoff(attempt)
		c.log.Warn("retrying backend request",
			"endpoint", endpoint,
			"retry", attempt+1,
			"max_retries", c.retries,
			"delay", delay,
			"err", err,
		)
		c.obs.retry(endpoint)
		if serr := c.sleep(ctx, delay); serr != nil {
			c.obs.observe(endpoint, start, serr)
			return fmt.Errorf("waiting to retry %s: %w", endpoint, serr)
		}
	}
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, payload []byte, out any) error {
	rawURL := c.baseURL + endpoint
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%s %s: %w", method, endpoint, ctx.Err())
		}
		return &NetworkError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := detail(resp.Body)
		if msg == "" {
			msg = fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ParseError{Endpoint: endpoint, Err: err}
	}
	return nil
}

// detail extracts a string "detail" field from an error body, if any.
func detail(r io.Reader) string {
	var e struct {
		Detail any `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(r, maxErrorBody)).Decode(&e); err != nil {
		return ""
	}
	if s, ok := e.Detail.(string); ok {
		return s
	}
	return ""
}

// IsCanceled reports whether err came from the caller giving up.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
