package schema

import (
	"fmt"
	"regexp"

	"github.com/gravel-geo/gravel/calcerr"
)

// Schema is the declarative parameter contract for one calculation: a mapping
// from parameter name to its Entry, plus optional cross-parameter rules.
//
// One Schema exists per calculation, created once at load time and treated as
// read-only template data shared across all calls. The framework clones it per
// invocation so call-time overrides never mutate the declaration.
type Schema struct {
	// Parameters maps each parameter name to its contract entry.
	Parameters map[string]Entry `json:"parameters" yaml:"parameters"`

	// Rules are boolean CEL expressions over the bound parameter values,
	// e.g. "depth_to >= depth_from". A rule evaluating to false is a
	// constraint violation.
	Rules []string `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// New creates a Schema from a parameter map and optional cross-parameter rules.
func New(parameters map[string]Entry, rules ...string) Schema {
	return Schema{Parameters: parameters, Rules: rules}
}

// Clone returns a deep copy of the schema. Entries are cloned individually and
// the rule slice is copied.
func (s Schema) Clone() Schema {
	result := Schema{}
	if s.Parameters != nil {
		result.Parameters = make(map[string]Entry, len(s.Parameters))
		for name, entry := range s.Parameters {
			result.Parameters[name] = entry.Clone()
		}
	}
	if s.Rules != nil {
		result.Rules = make([]string, len(s.Rules))
		copy(result.Rules, s.Rules)
	}
	return result
}

// Validate checks that the schema definition itself is well formed: every
// entry has a recognized kind, numeric bounds are not inverted, string
// patterns compile, and list requirements reference scalar element kinds.
//
// Returns a configuration error describing the first problem found.
func (s Schema) Validate() error {
	const op = "Schema.Validate"

	for name, entry := range s.Parameters {
		if err := validateEntry(name, entry); err != nil {
			return calcerr.NewConfigurationError(op, err)
		}
	}

	for i, rule := range s.Rules {
		if rule == "" {
			return calcerr.NewConfigurationError(op, fmt.Errorf("rule %d is empty", i))
		}
	}

	return nil
}

func validateEntry(name string, entry Entry) error {
	switch entry.Kind {
	case KindFloat, KindInt, KindBool, KindString, KindList:
	default:
		return fmt.Errorf("parameter %s: %w: %q", name, calcerr.ErrUnknownKind, entry.Kind)
	}

	if entry.MinValue != nil && entry.MaxValue != nil && *entry.MinValue > *entry.MaxValue {
		return fmt.Errorf("parameter %s: min_value %v exceeds max_value %v",
			name, *entry.MinValue, *entry.MaxValue)
	}

	if entry.Pattern != "" {
		if _, err := regexp.Compile(entry.Pattern); err != nil {
			return fmt.Errorf("parameter %s: invalid pattern: %w", name, err)
		}
	}

	if entry.Kind == KindList {
		switch entry.Elements {
		case "", KindFloat, KindInt, KindBool, KindString:
		default:
			return fmt.Errorf("parameter %s: list elements must be a scalar kind, got %q",
				name, entry.Elements)
		}
		switch entry.Order {
		case Unordered, Ascending, Descending:
		default:
			return fmt.Errorf("parameter %s: unknown list order %q", name, entry.Order)
		}
	}

	return nil
}

// Results is the sentinel result map substituted for a calculation's normal
// return value when validation or execution fails under fail-silent mode.
// Its key set matches the calculation's contractual output fields, so callers
// destructure results the same way on success and failure.
//
// Like Schema, a Results map is created once per calculation and never mutated;
// the framework hands out copies on each failure path.
type Results map[string]any

// Clone returns a shallow copy of the result map. Sentinel values are scalars
// by convention (typically NaN), so a shallow copy is a full copy in practice.
func (r Results) Clone() Results {
	if r == nil {
		return nil
	}
	result := make(Results, len(r))
	for k, v := range r {
		result[k] = v
	}
	return result
}
