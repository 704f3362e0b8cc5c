// Package testing provides testing utilities for the harness.
//
// # Mocks
//
// The mocks subpackage provides transport doubles for exercising the HTTP
// client without a network: a function-backed RoundTripper, a testify-based
// mock RoundTripper, and helpers for building canned JSON responses.
//
// # Fixtures
//
// The fixtures subpackage provides randomized entity generators for create
// and update scenarios, including deliberately invalid records for negative
// tests.
//
// Import the specific subpackages you need:
//
//	import (
//		"github.com/calegari/go-apitest/testing/mocks"
//		"github.com/calegari/go-apitest/testing/fixtures"
//	)
package testing
