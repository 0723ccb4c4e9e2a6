// Package http implements the HTTP transport for the OpenAlex API: header
// injection, retry with backoff, and mapping of error responses.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/goalex-io/goalex/internal/auth"
	"github.com/goalex-io/goalex/internal/constants"
	"github.com/goalex-io/goalex/pkg/openalex"
)

const defaultUserAgent = "goalex/1.0"

// Client is a retrying HTTP client bound to one API endpoint. It satisfies
// the openalex.Requester contract and is safe for concurrent use.
type Client struct {
	baseURL          string
	provider         auth.Provider
	httpClient       *retryablehttp.Client
	userAgent        string
	retryStatusCodes map[int]bool
	logger           openalex.Logger
	debug            bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the structured logger used for debug output.
func WithLogger(logger openalex.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging. A logger must also be set for
// output to appear.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithTimeout sets the overall per-attempt timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithRetryConfig sets the retry count and backoff bounds.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		if retryMax > 0 {
			c.httpClient.RetryMax = retryMax
		}

		if waitMin > 0 {
			c.httpClient.RetryWaitMin = waitMin
		}

		if waitMax > 0 {
			c.httpClient.RetryWaitMax = waitMax
		}
	}
}

// WithRetryStatusCodes replaces the set of response codes treated as
// transient.
func WithRetryStatusCodes(codes []int) Option {
	return func(c *Client) {
		if len(codes) == 0 {
			return
		}

		c.retryStatusCodes = make(map[int]bool, len(codes))
		for _, code := range codes {
			c.retryStatusCodes[code] = true
		}
	}
}

// NewClient creates a transport client for the given endpoint. The provider
// may be nil for unauthenticated access.
func NewClient(baseURL string, provider auth.Provider, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.Logger = nil

	client := &Client{
		baseURL:          baseURL,
		provider:         provider,
		httpClient:       retryClient,
		userAgent:        defaultUserAgent,
		retryStatusCodes: make(map[int]bool, len(constants.RetryStatusCodes)),
	}

	for _, code := range constants.RetryStatusCodes {
		client.retryStatusCodes[code] = true
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient.CheckRetry = client.checkRetry

	return client
}

// checkRetry retries on transport errors and on the configured transient
// status codes only. Client errors return immediately so the caller sees the
// API's message on the first attempt.
func (c *Client) checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return true, nil //nolint:nilerr // transport errors are retried
	}

	return c.retryStatusCodes[resp.StatusCode], nil
}

// Get issues a GET against a path under the configured endpoint. The raw
// query string was already encoded by the caller and is attached verbatim:
// its structural delimiters must not be re-escaped.
func (c *Client) Get(ctx context.Context, path string, rawQuery string) ([]byte, error) {
	requestURL := c.baseURL + path
	if rawQuery != "" {
		requestURL += "?" + rawQuery
	}

	return c.GetAbsolute(ctx, requestURL)
}

// GetAbsolute issues a GET against a fully-formed URL, for content hosted
// outside the API endpoint.
func (c *Client) GetAbsolute(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	if c.provider != nil {
		headers, err := c.provider.Headers(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting credentials: %w", err)
		}

		for key, value := range headers {
			req.Header.Set(key, value)
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": http.MethodGet,
			"url":    rawURL,
		})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    rawURL,
			"bytes":  len(body),
		})
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, openalex.NewResponseError(resp.StatusCode, body)
	}

	return body, nil
}
