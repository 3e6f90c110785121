package apiclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/signupkit/pkg/requestid"
)

const maxBodySize = 1 << 20

// Result is the outcome of a request that reached the server.
type Result struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Duration   time.Duration
}

// OK reports whether the status is 2xx.
func (r *Result) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Client posts form fields to an upstream API.
type Client struct {
	base   *url.URL
	client *http.Client
	opts   *options
}

// New creates a client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	client := o.httpClient
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	return &Client{base: base, client: client, opts: o}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidURL)
	}
	return u, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// URL joins path onto the base URL.
func (c *Client) URL(path string) string {
	return strings.TrimRight(c.base.String(), "/") + "/" + strings.TrimLeft(path, "/")
}

// Post sends fields to path. A non-2xx response is returned along with an
// error wrapping ErrUnexpectedStatus.
func (c *Client) Post(ctx context.Context, path string, fields []Field) (*Result, error) {
	body, contentType, err := encode(c.opts.encoding, fields)
	if err != nil {
		return nil, err
	}
	if c.opts.contentType != "" {
		contentType = c.opts.contentType
	}
	return c.do(ctx, http.MethodPost, c.URL(path), body, contentType)
}

// Ping checks that the base URL answers at all. Any HTTP response counts.
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.do(ctx, http.MethodHead, c.base.String(), nil, "")
	if res != nil {
		return nil
	}
	return err
}

func (c *Client) do(ctx context.Context, method, target string, body []byte, contentType string) (*Result, error) {
	start := time.Now()
	res, err := c.roundTrip(ctx, method, target, body, contentType)

	if c.opts.onDelivery != nil {
		dr := DeliveryResult{
			Method:   method,
			URL:      target,
			Duration: time.Since(start),
			Error:    err,
		}
		if res != nil {
			dr.StatusCode = res.StatusCode
		}
		c.opts.onDelivery(dr)
	}
	return res, err
}

func (c *Client) roundTrip(ctx context.Context, method, target string, body []byte, contentType string) (*Result, error) {
	start := time.Now()

	reqCtx := ctx
	if c.opts.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, c.opts.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(reqCtx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrRequestFailed, err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.opts.userAgent)
	for k, v := range c.opts.headers {
		req.Header.Set(k, v)
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	res := &Result{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
		Duration:   time.Since(start),
	}
	if err != nil {
		return res, fmt.Errorf("%w: reading response body: %w", ErrRequestFailed, err)
	}

	if !res.OK() {
		return res, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return res, nil
}
