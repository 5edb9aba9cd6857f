// Package client provides the shared request client for the portal API.
// A Client carries a fixed base URL and timeout so call sites pass only
// relative paths. It performs no retries, no authentication and no
// response transformation: non-2xx responses, timeouts and network
// failures are returned to the caller as errors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const acceptHeader = "application/json, text/plain, */*"

var absoluteURL = regexp.MustCompile(`^([a-zA-Z][a-zA-Z\d+\-.]*:)?//`)

// Option configures a Client.
type Option func(*Client)

// WithTransport sets the round tripper used for outbound requests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.Transport = rt
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client issues HTTP requests relative to a fixed base URL.
// It is safe for concurrent use and is meant to be constructed once and shared.
type Client struct {
	baseURL         string
	scheme          string
	timeout         time.Duration
	maxResponseSize int64
	http            *http.Client
	logger          *slog.Logger
}

// New creates a Client from a finalized configuration.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("client config required")
	}

	timeout := cfg.TimeoutDuration()
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid timeout: %q", cfg.Timeout)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base_url required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base_url: %w", err)
	}

	c := &Client{
		baseURL:         cfg.BaseURL,
		scheme:          base.Scheme,
		timeout:         timeout,
		maxResponseSize: cfg.MaxResponseSizeBytes(),
		http:            &http.Client{Timeout: timeout},
		logger:          slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the origin and path prefix applied to relative requests.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// URL resolves path against the base URL.
// Absolute URLs are returned unchanged; protocol-relative URLs (//host/path)
// take the scheme of the base URL.
func (c *Client) URL(path string) string {
	if path == "" {
		return c.baseURL
	}
	if strings.HasPrefix(path, "//") {
		if c.scheme == "" {
			return path
		}
		return c.scheme + ":" + path
	}
	if absoluteURL.MatchString(path) {
		return path
	}
	return strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// Head issues a HEAD request.
func (c *Client) Head(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodHead, path, nil)
}

// Options issues an OPTIONS request.
func (c *Client) Options(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodOptions, path, nil)
}

// Post issues a POST request with body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Put issues a PUT request with body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

// Patch issues a PATCH request with body.
func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, body)
}

// Do issues a request to path resolved against the base URL.
// A nil body sends no payload; []byte, string and io.Reader bodies are sent
// verbatim; any other value is encoded as JSON.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	target := c.URL(path)

	reader, contentType, err := encodeBody(body)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		err = classify(ctx, err)
		c.logger.Debug("api request failed", "method", method, "url", target, "error", err)
		return nil, fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	data, err := c.readBody(resp.Body)
	if err != nil {
		if !errors.Is(err, ErrResponseTooLarge) {
			err = classify(ctx, err)
		}
		c.logger.Debug("api response read failed", "method", method, "url", target, "error", err)
		return nil, fmt.Errorf("%s %s: %w", method, target, err)
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}

	c.logger.Debug(
		"api request",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return result, &StatusError{Response: result}
	}
	return result, nil
}

func (c *Client) readBody(body io.Reader) ([]byte, error) {
	if c.maxResponseSize <= 0 {
		return io.ReadAll(body)
	}

	data, err := io.ReadAll(io.LimitReader(body, c.maxResponseSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > c.maxResponseSize {
		return nil, ErrResponseTooLarge
	}
	return data, nil
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return bytes.NewReader(b), "", nil
	case string:
		return strings.NewReader(b), "", nil
	case io.Reader:
		return b, "", nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// classify maps transport errors onto ErrTimeout and ErrNetwork.
// Cancellation by the caller is returned as the context error.
func classify(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.Canceled) {
		return ctxErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	return fmt.Errorf("%w: %w", ErrNetwork, err)
}
