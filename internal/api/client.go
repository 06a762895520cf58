package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/henvic/httpretty"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 10 * 1024 * 1024

// Client talks to the artifact server. It holds no per-request state and is
// safe to reuse across resolutions.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithDebugTrace dumps every request and response to w.
func WithDebugTrace(w io.Writer) Option {
	return func(c *Client) {
		logger := &httpretty.Logger{
			Time:           true,
			RequestHeader:  true,
			RequestBody:    true,
			ResponseHeader: true,
			ResponseBody:   true,
			Formatters:     []httpretty.Formatter{&httpretty.JSONFormatter{}},
		}
		logger.SetOutput(w)
		base := c.http.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		traced := *c.http
		traced.Transport = logger.RoundTripper(base)
		c.http = &traced
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// StatusError is returned for any response other than 200 OK.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Status Code: %d", e.Code)
}

// get issues a GET and returns the raw body of a successful response.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)

	c.logger.Debug("artifact request", "request_id", reqID, "url", url)
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("artifact request failed", "request_id", reqID, "url", url, "error", err)
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("artifact response", "request_id", reqID, "status", resp.StatusCode)
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}

// getJSON is get followed by a JSON decode into result.
func (c *Client) getJSON(ctx context.Context, url string, result interface{}) error {
	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return &DecodeError{Body: body, Err: err}
	}
	return nil
}

// DecodeError means the server answered 200 with a body that is not the
// expected JSON document.
type DecodeError struct {
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
