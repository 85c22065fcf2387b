// Package http is the request dispatcher used by every test: one HTTP call per
// Do, every status code returned as an ordinary response, and only transport
// failures reported as errors.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	stdhttp "net/http"
	"strings"
	"time"

	"github.com/fivetwenty-io/lostfound-e2e/internal/constants"
	"github.com/fivetwenty-io/lostfound-e2e/internal/logging"
	"github.com/fivetwenty-io/lostfound-e2e/pkg/lostfound"
	"github.com/hashicorp/go-retryablehttp"
)

// Request describes a single call.
type Request struct {
	// Method is case-insensitive and defaults to GET.
	Method string
	// URL is used verbatim when it starts with "http", otherwise it is
	// appended to the client's base URL.
	URL string
	// Body is only sent for POST, PUT and PATCH. []byte and json.RawMessage
	// are sent as is; anything else is JSON-encoded.
	Body    interface{}
	Headers map[string]string
	Token   string
}

// Response is the outcome of a call that reached the server.
type Response struct {
	StatusCode int
	Status     string
	// Data is the parsed JSON body, nil for an empty body, or the raw text
	// when the body is not JSON.
	Data    interface{}
	Body    []byte
	Headers stdhttp.Header
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Envelope decodes the body into the shared response envelope.
func (r *Response) Envelope() (*lostfound.Envelope, error) {
	return lostfound.ParseEnvelope(r.Body)
}

// DecodeData decodes the envelope's data member into v.
func (r *Response) DecodeData(v interface{}) error {
	env, err := r.Envelope()
	if err != nil {
		return err
	}

	return env.DecodeData(v)
}

// ErrorMessage returns the envelope's error member, or "" when there is none.
func (r *Response) ErrorMessage() string {
	env, err := r.Envelope()
	if err != nil {
		return ""
	}

	return env.ErrorMessage()
}

// Client dispatches requests against a base URL.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
	timeout    time.Duration
	userAgent  string
	logger     logging.Logger
	metrics    *MetricsCollector
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the trace logger.
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeout bounds every request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient uses a copy of httpClient as the underlying net/http
// client. The caller's value is never modified; its Timeout is replaced on
// the copy by the dispatcher's timeout.
func WithHTTPClient(httpClient *stdhttp.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			clone := *httpClient
			c.httpClient.HTTPClient = &clone
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithMetrics records per-endpoint latency into collector.
func WithMetrics(collector *MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

// NewClient creates a dispatcher for baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:    baseURL,
		httpClient: newTransport(),
		timeout:    time.Duration(constants.DefaultTimeoutMillis) * time.Millisecond,
		userAgent:  "lostfound-e2e",
		logger:     logging.Nop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	client.httpClient.HTTPClient.Timeout = client.timeout

	return client
}

// newTransport returns a retryablehttp client that attempts every request
// exactly once and never turns a status code into an error.
func newTransport() *retryablehttp.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.Logger = nil
	rc.CheckRetry = func(ctx context.Context, _ *stdhttp.Response, _ error) (bool, error) {
		return false, ctx.Err()
	}
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return rc
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Metrics returns the attached collector, if any.
func (c *Client) Metrics() *MetricsCollector {
	return c.metrics
}

// ResolveURL turns a request URL into the absolute URL that is dialed.
func (c *Client) ResolveURL(url string) string {
	if strings.HasPrefix(url, "http") {
		return url
	}

	return c.baseURL + url
}

// Do sends req once. The returned error is always a *lostfound.TransportError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = stdhttp.MethodGet
	}

	target := c.ResolveURL(req.URL)
	start := time.Now()

	resp, err := c.do(ctx, method, target, req)
	if c.metrics != nil {
		c.metrics.Record(method, target, time.Since(start), err != nil)
	}

	if err != nil {
		c.logger.Error("API request failed", map[string]interface{}{
			"method": method,
			"url":    target,
			"error":  err.Error(),
		})

		return nil, &lostfound.TransportError{Method: method, URL: target, Err: err}
	}

	c.logger.Debug("API response", map[string]interface{}{
		"status":   resp.StatusCode,
		"text":     resp.Status,
		"duration": time.Since(start).String(),
	})

	return resp, nil
}

func (c *Client) do(ctx context.Context, method, target string, req *Request) (*Response, error) {
	var raw interface{}

	if allowsBody(method) && req.Body != nil {
		payload, err := encodeBody(req.Body)
		if err != nil {
			return nil, err
		}

		raw = payload
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, method, target, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	httpReq.Header.Set("Accept", constants.ContentTypeJSON)

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	if req.Token != "" {
		httpReq.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+req.Token)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	c.logger.Debug("API request", map[string]interface{}{
		"method": method,
		"url":    target,
	})

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if httpResp != nil {
			_ = httpResp.Body.Close()
		}

		return nil, err
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Status:     stdhttp.StatusText(httpResp.StatusCode),
		Data:       parseData(body),
		Body:       body,
		Headers:    httpResp.Header,
	}, nil
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, url, token string) (*Response, error) {
	return c.Do(ctx, &Request{Method: stdhttp.MethodGet, URL: url, Token: token})
}

// Post sends a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, url string, body interface{}, token string) (*Response, error) {
	return c.Do(ctx, &Request{Method: stdhttp.MethodPost, URL: url, Body: body, Token: token})
}

// Put sends a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, url string, body interface{}, token string) (*Response, error) {
	return c.Do(ctx, &Request{Method: stdhttp.MethodPut, URL: url, Body: body, Token: token})
}

// Patch sends a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, url string, body interface{}, token string) (*Response, error) {
	return c.Do(ctx, &Request{Method: stdhttp.MethodPatch, URL: url, Body: body, Token: token})
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, url, token string) (*Response, error) {
	return c.Do(ctx, &Request{Method: stdhttp.MethodDelete, URL: url, Token: token})
}

func allowsBody(method string) bool {
	switch method {
	case stdhttp.MethodPost, stdhttp.MethodPut, stdhttp.MethodPatch:
		return true
	default:
		return false
	}
}

func encodeBody(body interface{}) ([]byte, error) {
	switch b := body.(type) {
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	default:
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}

		return payload, nil
	}
}

func parseData(body []byte) interface{} {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}

	var data interface{}

	err := json.Unmarshal(trimmed, &data)
	if err != nil {
		return string(body)
	}

	return data
}
