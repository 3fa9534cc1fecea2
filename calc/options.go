package calc

import "github.com/gravel-geo/gravel/schema"

// callSettings holds the per-call controls resolved from CallOptions.
type callSettings struct {
	validate         bool
	failSilently     bool
	schema           schema.Schema
	schemaOverridden bool
	sentinel         schema.Results
}

// CallOption configures a single Execute call. The zero configuration
// validates all parameters and fails silently: a failing call emits a warning
// and returns the sentinel result map instead of an error.
type CallOption func(*callSettings)

// WithoutValidation skips all parameter validation for this call and invokes
// the calculation body directly. Defaults are still resolved.
func WithoutValidation() CallOption {
	return func(s *callSettings) {
		s.validate = false
	}
}

// FailFast propagates validation and execution errors to the caller instead
// of collapsing them to the sentinel result map. This is the explicit opt-in
// for strict use, such as test suites or workflows where correctness must be
// guaranteed.
func FailFast() CallOption {
	return func(s *callSettings) {
		s.failSilently = false
	}
}

// WithSchema overrides the declared parameter schema for this call only.
func WithSchema(sc schema.Schema) CallOption {
	return func(s *callSettings) {
		s.schema = sc
		s.schemaOverridden = true
	}
}

// WithSentinel overrides the declared sentinel result map for this call only.
func WithSentinel(r schema.Results) CallOption {
	return func(s *callSettings) {
		s.sentinel = r
	}
}
