// Package mocks provides transport doubles for exercising the HTTP client
// without a network.
package mocks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"

	"github.com/stretchr/testify/mock"
)

// RoundTripFunc adapts a function to http.RoundTripper.
type RoundTripFunc func(*nethttp.Request) (*nethttp.Response, error)

// RoundTrip implements http.RoundTripper.
func (f RoundTripFunc) RoundTrip(req *nethttp.Request) (*nethttp.Response, error) {
	return f(req)
}

// MockTransport is a testify-based mock http.RoundTripper for tests that
// assert on call expectations.
type MockTransport struct {
	mock.Mock
}

// RoundTrip implements http.RoundTripper.
func (m *MockTransport) RoundTrip(req *nethttp.Request) (*nethttp.Response, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*nethttp.Response)
	return resp, args.Error(1)
}

// JSONResponse builds a canned *http.Response with a JSON-encoded body.
// It panics on unencodable values, which in a test is the right failure mode.
func JSONResponse(status int, v any) *nethttp.Response {
	body, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("mocks: unencodable response body: %v", err))
	}
	return RawResponse(status, "application/json; charset=utf-8", body)
}

// RawResponse builds a canned *http.Response with the given content type and
// body bytes.
func RawResponse(status int, contentType string, body []byte) *nethttp.Response {
	header := nethttp.Header{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &nethttp.Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(body)),
	}
}

// Routes dispatches by "METHOD path" to canned handlers, for scenarios that
// touch more than one endpoint.
type Routes map[string]RoundTripFunc

// RoundTrip implements http.RoundTripper. Unrouted requests get a 404 with an
// error body.
func (r Routes) RoundTrip(req *nethttp.Request) (*nethttp.Response, error) {
	if fn, ok := r[req.Method+" "+req.URL.Path]; ok {
		return fn(req)
	}
	return JSONResponse(nethttp.StatusNotFound, map[string]string{"error": "no route for " + req.Method + " " + req.URL.Path}), nil
}
