package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Common header names and values used by the harness.
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderRequestID     = "X-Request-ID"

	ContentTypeJSON = "application/json"
)

// Client is the single point through which every harness network call passes.
type Client interface {
	Get(ctx context.Context, req *Request) (*Response, error)
	Post(ctx context.Context, req *Request) (*Response, error)
	Put(ctx context.Context, req *Request) (*Response, error)
	Patch(ctx context.Context, req *Request) (*Response, error)
	Delete(ctx context.Context, req *Request) (*Response, error)
	Do(ctx context.Context, method string, req *Request) (*Response, error)

	// SetDefaultHeader replaces one default header on the client instance.
	// Not safe to call concurrently with in-flight requests.
	SetDefaultHeader(key, value string)
	// SetBearerToken folds a bearer token into the default headers as
	// "Authorization: Bearer <token>". Same concurrency contract as
	// SetDefaultHeader.
	SetBearerToken(token string)
}

// Request describes one call. It is built fresh per invocation and never
// mutated by the client.
type Request struct {
	// Path is joined onto the client's base URL. Required.
	Path string
	// Query is appended to the target URL when non-empty.
	Query url.Values
	// Headers are merged over the client's default headers; on key collision
	// the per-call value wins.
	Headers map[string]string
	// Body is JSON-encoded when non-nil. Write verbs with a nil body send {}.
	Body any
}

// Response is the envelope attached to every call outcome, success or HTTP
// error status alike.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
	// Duration is the wall-clock elapsed time of the call, attached by the
	// client. Always >= 0.
	Duration time.Duration
}

// JSON decodes the response body into v.
func (r *Response) JSON(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("cannot decode empty response body")
	}
	return json.Unmarshal(r.Body, v)
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return IsSuccessStatus(r.StatusCode)
}

// Config holds the client configuration.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	DefaultHeaders map[string]string
	// AttachRequestID adds a UUID X-Request-ID header when the caller did not
	// supply one.
	AttachRequestID bool
	// Limiter, when set, paces outbound calls so a shared demo backend is not
	// hammered by parallel suites.
	Limiter *rate.Limiter
}
