package fieldtype

import "fmt"

// Result is the outcome of a single validation check.
type Result struct {
	valid  bool
	reason string
}

// Valid creates a passing result.
func Valid() Result {
	return Result{valid: true}
}

// Failf creates a failing result with a formatted reason.
func Failf(format string, args ...any) Result {
	return Result{reason: fmt.Sprintf(format, args...)}
}

// IsValid reports whether the check passed.
func (r Result) IsValid() bool { return r.valid }

// Reason returns the human-readable rejection reason (empty when valid).
func (r Result) Reason() string { return r.reason }

// AllValid reports whether every result in the list passed.
// An empty list counts as valid.
func AllValid(results []Result) bool {
	for _, r := range results {
		if !r.valid {
			return false
		}
	}
	return true
}

// Reasons collects the rejection reasons of all failed results.
func Reasons(results []Result) []string {
	var out []string
	for _, r := range results {
		if !r.valid {
			out = append(out, r.reason)
		}
	}
	return out
}
