package validation

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/calegari/go-apitest/httpclient"
)

// ValidateBasicResponse checks that a response envelope is present and
// structurally usable: a real status code, non-nil headers and a non-nil
// body slice.
func ValidateBasicResponse(resp *httpclient.Response) error {
	if resp == nil {
		return failed("response", "non-nil envelope", nil)
	}
	if resp.StatusCode == 0 {
		return failed("status", "non-zero status code", resp.StatusCode)
	}
	if resp.Headers == nil {
		return failed("headers", "header map present", nil)
	}
	if resp.Body == nil {
		return failed("body", "body present", nil)
	}
	return nil
}

// ValidateJSONContentType checks that the Content-Type header declares JSON.
func ValidateJSONContentType(resp *httpclient.Response) error {
	if resp == nil {
		return failed("response", "non-nil envelope", nil)
	}
	ct := resp.Headers.Get(httpclient.HeaderContentType)
	if !strings.Contains(ct, httpclient.ContentTypeJSON) {
		return failed(httpclient.HeaderContentType, "to contain application/json", ct)
	}
	return nil
}

// ValidateResponseTime checks the recorded duration against a budget. The
// bound is inclusive: a response taking exactly max passes.
func ValidateResponseTime(resp *httpclient.Response, max time.Duration) error {
	if resp == nil {
		return failed("response", "non-nil envelope", nil)
	}
	if resp.Duration > max {
		return failed("duration", "at most "+max.String(), resp.Duration)
	}
	return nil
}

// ValidateStatusIn checks the status against an explicit expected set. Demo
// backends are nondeterministic for some operations, so scenarios declare the
// acceptable statuses rather than hardcode one.
func ValidateStatusIn(resp *httpclient.Response, statuses ...int) error {
	if resp == nil {
		return failed("response", "non-nil envelope", nil)
	}
	for _, s := range statuses {
		if resp.StatusCode == s {
			return nil
		}
	}
	return failed("status", "one of expected statuses", resp.StatusCode)
}

// PageExpectation asserts the paging position of a paginated response.
type PageExpectation struct {
	HasNextPage     bool
	HasPreviousPage bool
}

// ValidatePaginationResponse checks the reqres-style page envelope shape and,
// when asked, the page arithmetic for next/previous page availability. Fields
// are decoded one by one so a failure names the offending field.
func ValidatePaginationResponse(resp *httpclient.Response, expect PageExpectation) error {
	if resp == nil {
		return failed("response", "non-nil envelope", nil)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return failed("body", "JSON object", string(resp.Body))
	}

	data, ok := body["data"]
	if !ok {
		return failed("data", "field present", nil)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return failed("data", "JSON array", string(data))
	}

	nums := make(map[string]float64, 4)
	for _, name := range []string{"page", "per_page", "total", "total_pages"} {
		raw, ok := body[name]
		if !ok {
			return failed(name, "numeric field present", nil)
		}
		var n float64
		if err := json.Unmarshal(raw, &n); err != nil {
			return failed(name, "number", string(raw))
		}
		nums[name] = n
	}

	if expect.HasNextPage && !(nums["page"] < nums["total_pages"]) {
		return failed("page", "less than total_pages", nums["page"])
	}
	if expect.HasPreviousPage && !(nums["page"] > 1) {
		return failed("page", "greater than 1", nums["page"])
	}
	return nil
}

// ValidateErrorResponse checks that the body carries a non-empty string
// "error" field, the shape reqres uses for failed requests.
func ValidateErrorResponse(resp *httpclient.Response) error {
	if resp == nil {
		return failed("response", "non-nil envelope", nil)
	}

	var body struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return failed("body", "JSON object", string(resp.Body))
	}
	if body.Error == nil {
		return failed("error", "field present", nil)
	}
	if *body.Error == "" {
		return failed("error", "non-empty string", *body.Error)
	}
	return nil
}
