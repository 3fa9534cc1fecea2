package calc

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gravel-geo/gravel/calcerr"
	"github.com/gravel-geo/gravel/schema"
)

// Override directive suffixes. An input key "<name>__min" or "<name>__max"
// rewrites the corresponding bound on the per-call schema copy before
// validation runs; the declared contract is never touched.
const (
	minSuffix = "__min"
	maxSuffix = "__max"
)

// binding pairs one cloned schema entry with the concrete runtime value
// resolved for the current call. It exists for a single invocation only.
type binding struct {
	entry    schema.Entry
	value    any
	resolved bool
}

// bindArgs produces the bound schema for one call: a fresh copy of the
// declared schema where every entry carries the value resolved from the
// entry's default and the caller's input, with override directives applied
// to the copy's bounds.
//
// It returns the bound entries plus the resolved parameter map handed to the
// calculation body. Input keys that match neither a declared parameter nor a
// directive are passed through untouched, so nested validated calculations
// compose without interference.
//
// Binding failures (a directive naming an undeclared parameter, a non-numeric
// directive value) are framework errors, funneled through the same failure
// policy as validation errors: a broken contract must never silently skip
// validation.
func bindArgs(s schema.Schema, input map[string]any) (map[string]binding, map[string]any, error) {
	const op = "calc.bindArgs"

	cloned := s.Clone()

	bound := make(map[string]binding, len(cloned.Parameters))
	for name, entry := range cloned.Parameters {
		b := binding{entry: entry}
		if entry.Default != nil {
			b.value = entry.Default
			b.resolved = true
		}
		bound[name] = b
	}

	// Apply override directives before values, so a caller can relax or
	// tighten a single parameter's acceptable range for one call without
	// altering the published contract.
	for key, val := range input {
		name, isMin := strings.CutSuffix(key, minSuffix)
		if !isMin {
			var isMax bool
			name, isMax = strings.CutSuffix(key, maxSuffix)
			if !isMax {
				continue
			}
		}

		b, exists := bound[name]
		if !exists {
			return nil, nil, calcerr.NewBindingError(op,
				fmt.Errorf("override directive %s: %w: %s", key, calcerr.ErrUnknownParameter, name))
		}

		f, ok := toFloat(val)
		if !ok {
			return nil, nil, calcerr.NewBindingError(op,
				fmt.Errorf("override directive %s: bound (%v) is not numeric", key, val))
		}

		if isMin {
			b.entry.MinValue = &f
		} else {
			b.entry.MaxValue = &f
		}
		bound[name] = b
	}

	// Caller-supplied values always win over defaults.
	params := make(map[string]any, len(bound))
	for key, val := range input {
		if strings.HasSuffix(key, minSuffix) || strings.HasSuffix(key, maxSuffix) {
			continue
		}
		if b, exists := bound[key]; exists {
			// Only data values can be judged by the validators. Anything
			// else supplied for a declared parameter is dropped and the
			// entry keeps its default, or stays unresolved.
			if !isDataValue(val) {
				continue
			}
			b.value = val
			b.resolved = true
			bound[key] = b
			continue
		}
		params[key] = val
	}

	for name, b := range bound {
		if b.resolved {
			params[name] = b.value
		}
	}

	return bound, params, nil
}

// resolveParams overlays the caller's input onto the schema defaults without
// any directive processing or validation. Used when validation is disabled:
// the body still sees defaults resolved the same way.
func resolveParams(s schema.Schema, input map[string]any) map[string]any {
	params := make(map[string]any, len(input))
	for name, entry := range s.Parameters {
		if entry.Default != nil {
			params[name] = entry.Default
		}
	}
	for key, val := range input {
		if strings.HasSuffix(key, minSuffix) || strings.HasSuffix(key, maxSuffix) {
			continue
		}
		params[key] = val
	}
	return params
}

// isDataValue reports whether a value is one the validators can judge:
// a number, boolean, string, slice or array.
func isDataValue(value any) bool {
	if value == nil {
		return false
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

// toFloat converts a numeric directive value to float64. All integer, unsigned
// and float kinds coerce, matching what the validators accept as numeric.
func toFloat(value any) (float64, bool) {
	if value == nil {
		return 0, false
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}
