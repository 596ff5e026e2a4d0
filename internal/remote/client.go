// Package remote talks to the single-document state endpoint.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// AuthHeader carries the shared secret on every request.
const AuthHeader = "x-bb-auth"

// DefaultTimeout bounds a single request.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 16 << 20

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	Method string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s state: HTTP %d: %s", e.Method, e.Code, e.Body)
	}
	return fmt.Sprintf("%s state: HTTP %d", e.Method, e.Code)
}

// Client reads and writes the remote state blob.
type Client struct {
	url    string
	secret string
	client *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.client
		hc.Timeout = d
		c.client = &hc
	}
}

// New returns a client for the endpoint at url.
func New(url, secret string, opts ...Option) *Client {
	c := &Client{
		url:    url,
		secret: secret,
		client: &http.Client{Timeout: DefaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Fetch returns the stored document, or nil when the endpoint holds none.
// The body is returned as-is; validating it is the caller's job.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(AuthHeader, c.secret)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if trimmed := bytes.TrimSpace(body); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	return body, nil
}

// Put replaces the stored document with body.
func (c *Client) Put(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(AuthHeader, c.secret)

	_, err = c.do(req)
	return err
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", req.Method, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Method: req.Method, Code: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}
	return body, nil
}
