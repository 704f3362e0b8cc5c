package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/calegari/go-apitest/logger"
)

// DefaultTimeout is the default per-call timeout.
const DefaultTimeout = 10 * time.Second

// client implements the Client interface.
type client struct {
	httpClient *nethttp.Client
	log        logger.Logger
	config     *Config
}

// New creates a client for the given base URL with default configuration.
func New(log logger.Logger, baseURL string) Client {
	return NewBuilder(log).WithBaseURL(baseURL).Build()
}

// Builder provides a fluent interface for configuring the client.
type Builder struct {
	config     *Config
	httpClient *nethttp.Client
	log        logger.Logger
}

// NewBuilder creates a new client builder.
func NewBuilder(log logger.Logger) *Builder {
	return &Builder{
		config: &Config{
			Timeout:         DefaultTimeout,
			DefaultHeaders:  make(map[string]string),
			AttachRequestID: true,
		},
		log: log,
	}
}

// WithBaseURL sets the base URL every request path is joined onto.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.BaseURL = baseURL
	return b
}

// WithTimeout sets the per-call timeout.
func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	if timeout > 0 {
		b.config.Timeout = timeout
	}
	return b
}

// WithDefaultHeader adds a default header sent with every request.
func (b *Builder) WithDefaultHeader(key, value string) *Builder {
	b.config.DefaultHeaders[key] = value
	return b
}

// WithBearerToken sets the Authorization default header to "Bearer <token>".
func (b *Builder) WithBearerToken(token string) *Builder {
	b.config.DefaultHeaders[HeaderAuthorization] = "Bearer " + token
	return b
}

// WithHTTPClient supplies a custom *http.Client, typically to inject a fake
// transport in tests.
func (b *Builder) WithHTTPClient(hc *nethttp.Client) *Builder {
	b.httpClient = hc
	return b
}

// WithTransport supplies a custom RoundTripper on the default http.Client.
func (b *Builder) WithTransport(rt nethttp.RoundTripper) *Builder {
	b.httpClient = &nethttp.Client{Transport: rt}
	return b
}

// WithRateLimit paces outbound calls at rps requests per second with the
// given burst.
func (b *Builder) WithRateLimit(rps float64, burst int) *Builder {
	b.config.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
	return b
}

// WithRequestID toggles automatic X-Request-ID generation.
func (b *Builder) WithRequestID(enabled bool) *Builder {
	b.config.AttachRequestID = enabled
	return b
}

// Build creates the client with the configured options.
func (b *Builder) Build() Client {
	hc := b.httpClient
	if hc == nil {
		hc = &nethttp.Client{}
	}
	return &client{
		httpClient: hc,
		log:        b.log,
		config:     b.config,
	}
}

// Get performs a GET request.
func (c *client) Get(ctx context.Context, req *Request) (*Response, error) {
	return c.Do(ctx, nethttp.MethodGet, req)
}

// Post performs a POST request.
func (c *client) Post(ctx context.Context, req *Request) (*Response, error) {
	return c.Do(ctx, nethttp.MethodPost, req)
}

// Put performs a PUT request.
func (c *client) Put(ctx context.Context, req *Request) (*Response, error) {
	return c.Do(ctx, nethttp.MethodPut, req)
}

// Patch performs a PATCH request.
func (c *client) Patch(ctx context.Context, req *Request) (*Response, error) {
	return c.Do(ctx, nethttp.MethodPatch, req)
}

// Delete performs a DELETE request.
func (c *client) Delete(ctx context.Context, req *Request) (*Response, error) {
	return c.Do(ctx, nethttp.MethodDelete, req)
}

// SetDefaultHeader replaces one default header on the client instance.
func (c *client) SetDefaultHeader(key, value string) {
	c.config.DefaultHeaders[key] = value
}

// SetBearerToken folds a bearer token into the default headers.
func (c *client) SetBearerToken(token string) {
	c.config.DefaultHeaders[HeaderAuthorization] = "Bearer " + token
}

// Do performs an HTTP request with the specified method. On a 4xx/5xx status
// it returns both the response envelope and the classified error, so negative
// tests can inspect either.
func (c *client) Do(ctx context.Context, method string, req *Request) (*Response, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}

	if c.config.Limiter != nil {
		if err := c.config.Limiter.Wait(ctx); err != nil {
			return nil, NewNetworkError("rate limiter wait aborted", err, 0)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	httpReq, err := c.buildRequest(ctx, method, req)
	if err != nil {
		return nil, err
	}

	target := httpReq.URL.String()
	c.logRequest(method, target, req)

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		elapsed := time.Since(start)
		if isTimeout(err) {
			return nil, NewTimeoutError(c.config.Timeout, elapsed)
		}
		return nil, NewNetworkError("request execution failed", err, elapsed)
	}

	resp, err := c.readResponse(httpResp, start)
	if err != nil {
		return nil, err
	}

	c.logResponse(method, target, resp)
	if resp.IsSuccess() {
		return resp, nil
	}
	return resp, NewStatusError(method, target, resp)
}

// validateRequest enforces call preconditions before dispatch.
func (c *client) validateRequest(req *Request) error {
	if req == nil {
		return NewValidationError("request cannot be nil")
	}
	if req.Path == "" {
		return NewValidationError("endpoint path cannot be empty")
	}
	return nil
}

// buildRequest constructs the *http.Request with merged headers and an
// encoded body.
func (c *client) buildRequest(ctx context.Context, method string, req *Request) (*nethttp.Request, error) {
	payload, err := c.encodeBody(method, req)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := nethttp.NewRequestWithContext(ctx, method, c.joinURL(req.Path), body)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("failed to build request: %v", err))
	}

	if len(req.Query) > 0 {
		httpReq.URL.RawQuery = req.Query.Encode()
	}

	c.applyHeaders(httpReq, req, payload != nil)
	return httpReq, nil
}

// encodeBody JSON-encodes the request body. Write verbs with no body send an
// empty JSON object rather than omitting the payload.
func (c *client) encodeBody(method string, req *Request) ([]byte, error) {
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, NewValidationError(fmt.Sprintf("request body is not JSON-encodable: %v", err))
		}
		return b, nil
	}
	switch method {
	case nethttp.MethodPost, nethttp.MethodPut, nethttp.MethodPatch:
		return []byte("{}"), nil
	}
	return nil, nil
}

// joinURL concatenates the configured base URL and an endpoint path.
func (c *client) joinURL(path string) string {
	return strings.TrimSuffix(c.config.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}

// applyHeaders merges default and per-call headers; per-call values win on
// key collision.
func (c *client) applyHeaders(httpReq *nethttp.Request, req *Request, hasBody bool) {
	for key, value := range c.config.DefaultHeaders {
		httpReq.Header.Set(key, value)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if hasBody && httpReq.Header.Get(HeaderContentType) == "" {
		httpReq.Header.Set(HeaderContentType, ContentTypeJSON)
	}
	if c.config.AttachRequestID && httpReq.Header.Get(HeaderRequestID) == "" {
		httpReq.Header.Set(HeaderRequestID, uuid.NewString())
	}
}

// readResponse drains the body and attaches the elapsed time to the envelope.
func (c *client) readResponse(httpResp *nethttp.Response, start time.Time) (*Response, error) {
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, NewNetworkError("failed to read response body", err, time.Since(start))
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
		Duration:   time.Since(start),
	}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// logRequest logs the outgoing request.
func (c *client) logRequest(method, target string, req *Request) {
	logEvent := c.log.Info().
		Str("direction", "outbound").
		Str("method", method).
		Str("url", target)

	if len(req.Headers) > 0 {
		logEvent = logEvent.Interface("headers", req.Headers)
	}

	logEvent.Msg("harness request")
}

// logResponse logs the incoming response with its timing.
func (c *client) logResponse(method, target string, resp *Response) {
	c.log.Info().
		Str("direction", "inbound").
		Str("method", method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("elapsed", resp.Duration).
		Msg("harness response")
}
