package services

import "errors"

// Two error kinds cover every rejected mutation. Handlers distinguish them
// with errors.Is; the wrapped message names the violated constraint.
var (
	// ErrInvalidPayload marks a failed validation predicate: malformed
	// email or link, unknown role, uniqueness violation, out-of-range
	// rating, dangling reference or ownership mismatch.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrNotFound marks a primary entity missing at the final mutation
	// step, or an internal insertion inconsistency.
	ErrNotFound = errors.New("not found")
)
