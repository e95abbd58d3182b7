// Package utils holds small helpers shared by the server and CLI layers.
package utils

import "strings"

// IsBlank reports whether a query is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// QueryLenOK checks a query's length against the configured bounds.
func QueryLenOK(q string, minLen, maxLen int) bool {
	n := len(strings.TrimSpace(q))
	return n >= minLen && n <= maxLen
}

// ClampLimit applies the default when limit is unset and caps it at max.
func ClampLimit(limit, def, max int) int {
	if limit < 1 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	return limit
}
