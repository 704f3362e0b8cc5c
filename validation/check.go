// Package validation provides side-effect-free assertion helpers over
// response envelopes and entity values. Each helper returns nil on success or
// a *CheckError naming the field, the expected condition, and the observed
// value. Envelope shape, timing budget, entity schema, and content format are
// deliberately separate predicates so call sites compose only what a scenario
// needs.
package validation

import "fmt"

// CheckError is a named assertion failure with enough context for a test
// reporter to render.
type CheckError struct {
	Field    string
	Expected string
	Actual   any
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("check failed on %q: expected %s, got %v", e.Field, e.Expected, e.Actual)
}

func failed(field, expected string, actual any) *CheckError {
	return &CheckError{Field: field, Expected: expected, Actual: actual}
}
