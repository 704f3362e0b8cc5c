package validation

import "github.com/go-playground/validator/v10"

// Content predicates are pure and permissive on purpose: they check syntax,
// not deliverability or reachability.
var contentCheck = validator.New()

// IsValidEmail reports whether s is syntactically a plausible email address.
func IsValidEmail(s string) bool {
	if s == "" {
		return false
	}
	return contentCheck.Var(s, "email") == nil
}

// IsValidURL reports whether s parses as an absolute URL.
func IsValidURL(s string) bool {
	if s == "" {
		return false
	}
	return contentCheck.Var(s, "url") == nil
}
