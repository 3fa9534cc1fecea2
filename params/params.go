// Package params provides type-safe helpers for reading calculation inputs
// and outputs held in map[string]any.
//
// Calculation bodies receive their parameters as a map with defaults already
// resolved; these functions extract typed values from it with coercion across
// the numeric kinds and a default fallback. Passing math.NaN() as the numeric
// fallback expresses the domain convention that a missing value means "not
// applicable" rather than zero.
package params

import (
	"strconv"
)

// String extracts a string value with a default fallback.
// Returns defaultVal if the key doesn't exist, the value is nil, or not a string.
func String(m map[string]any, key string, defaultVal string) string {
	if m == nil {
		return defaultVal
	}

	val, ok := m[key]
	if !ok || val == nil {
		return defaultVal
	}

	str, ok := val.(string)
	if !ok {
		return defaultVal
	}

	return str
}

// Int extracts an int value with type coercion and a default fallback.
// Handles int, int64, float64, and string values.
// Returns defaultVal if the key doesn't exist, the value is nil, or cannot be converted.
func Int(m map[string]any, key string, defaultVal int) int {
	if m == nil {
		return defaultVal
	}

	val, ok := m[key]
	if !ok || val == nil {
		return defaultVal
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
		return defaultVal
	default:
		return defaultVal
	}
}

// Bool extracts a bool value with a default fallback.
// Returns defaultVal if the key doesn't exist, the value is nil, or not a bool.
func Bool(m map[string]any, key string, defaultVal bool) bool {
	if m == nil {
		return defaultVal
	}

	val, ok := m[key]
	if !ok || val == nil {
		return defaultVal
	}

	b, ok := val.(bool)
	if !ok {
		return defaultVal
	}

	return b
}

// Float64 extracts a float64 value with type coercion and a default fallback.
// Handles float64, float32, int, int64, and string values.
// Returns defaultVal if the key doesn't exist, the value is nil, or cannot be
// converted. Pass math.NaN() as defaultVal for quantities where absence means
// "not applicable".
func Float64(m map[string]any, key string, defaultVal float64) float64 {
	if m == nil {
		return defaultVal
	}

	val, ok := m[key]
	if !ok || val == nil {
		return defaultVal
	}

	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
		return defaultVal
	default:
		return defaultVal
	}
}

// Float64Slice extracts a []float64 value.
// Handles []float64, []any (coercing each element as Float64 does), []int and
// a single numeric value (wrapped in a one-element slice).
// Returns nil if the key doesn't exist, the value is nil, or cannot be converted.
func Float64Slice(m map[string]any, key string) []float64 {
	if m == nil {
		return nil
	}

	val, ok := m[key]
	if !ok || val == nil {
		return nil
	}

	switch v := val.(type) {
	case []float64:
		return v
	case []int:
		result := make([]float64, len(v))
		for i, item := range v {
			result[i] = float64(item)
		}
		return result
	case []any:
		result := make([]float64, 0, len(v))
		for _, item := range v {
			f, ok := toFloat64(item)
			if !ok {
				return nil
			}
			result = append(result, f)
		}
		return result
	default:
		if f, ok := toFloat64(val); ok {
			return []float64{f}
		}
		return nil
	}
}

// StringSlice extracts a []string value.
// Handles []string, []any (skipping non-string elements), and a single string
// value (wrapped in a one-element slice).
// Returns nil if the key doesn't exist, the value is nil, or cannot be converted.
func StringSlice(m map[string]any, key string) []string {
	if m == nil {
		return nil
	}

	val, ok := m[key]
	if !ok || val == nil {
		return nil
	}

	if slice, ok := val.([]string); ok {
		return slice
	}

	if slice, ok := val.([]any); ok {
		result := make([]string, 0, len(slice))
		for _, item := range slice {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	}

	if str, ok := val.(string); ok {
		return []string{str}
	}

	return nil
}

// Map extracts a nested map[string]any.
// Returns nil if the key doesn't exist, the value is nil, or not a map.
func Map(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}

	val, ok := m[key]
	if !ok || val == nil {
		return nil
	}

	nested, ok := val.(map[string]any)
	if !ok {
		return nil
	}

	return nested
}

func toFloat64(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
