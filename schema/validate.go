package schema

import (
	"fmt"
	"math"
	"reflect"
	"regexp"

	"github.com/gravel-geo/gravel/calcerr"
)

// ValidateFloat checks that value can be interpreted as a real number and,
// when bounds are given, that min <= value <= max. Values equal to a bound
// pass. NaN passes regardless of bounds: domain formulas use NaN as "not
// applicable" and must not be rejected for it. A nil value cannot be
// validated and passes.
func ValidateFloat(name string, value any, min, max *float64) error {
	const op = "schema.ValidateFloat"

	if value == nil {
		return nil
	}

	f, ok := toFloat(value)
	if !ok {
		return typeError(op, name, value, fmt.Errorf("%s (%v) is not a floating point number", name, value))
	}

	return checkBounds(op, name, f, min, max)
}

// ValidateInteger checks that value is an integral number within the given
// bounds. A float with no fractional part (such as 2.0) passes; 1.2 does not.
// NaN and nil values pass, as for ValidateFloat.
func ValidateInteger(name string, value any, min, max *float64) error {
	const op = "schema.ValidateInteger"

	if value == nil {
		return nil
	}

	f, ok := toFloat(value)
	if !ok {
		return typeError(op, name, value, fmt.Errorf("%s (%v) is not an integer number", name, value))
	}

	if !math.IsNaN(f) && f != math.Trunc(f) {
		return typeError(op, name, value,
			fmt.Errorf("%s (%v) can be truncated to %v but the truncated integer does not equal %v",
				name, value, math.Trunc(f), value))
	}

	return checkBounds(op, name, f, min, max)
}

// ValidateBoolean checks that value is a genuine boolean. Numbers and strings
// masquerading as booleans are rejected. A nil value passes.
func ValidateBoolean(name string, value any) error {
	const op = "schema.ValidateBoolean"

	if value == nil {
		return nil
	}

	if _, ok := value.(bool); !ok {
		return typeError(op, name, value, fmt.Errorf("%s (%v) is not a boolean", name, value))
	}

	return nil
}

// ValidateString checks that value is a string and, when given, that it is a
// member of options and matches pattern at the start of the value. A nil
// value passes.
func ValidateString(name string, value any, options []string, pattern string) error {
	const op = "schema.ValidateString"

	if value == nil {
		return nil
	}

	s, ok := value.(string)
	if !ok {
		return typeError(op, name, value, fmt.Errorf("%s (%v) is not a string", name, value))
	}

	if len(options) > 0 {
		found := false
		for _, opt := range options {
			if s == opt {
				found = true
				break
			}
		}
		if !found {
			return constraintError(op, name, value,
				fmt.Errorf("%s (%s) not included in list of allowable strings (%v)", name, s, options))
		}
	}

	if pattern != "" {
		re, err := regexp.Compile("^(?:" + pattern + ")")
		if err != nil {
			return calcerr.NewConfigurationError(op, fmt.Errorf("invalid pattern for %s: %w", name, err))
		}
		if !re.MatchString(s) {
			return constraintError(op, name, value,
				fmt.Errorf("%s (%s) does not match the required string format (%s)", name, s, pattern))
		}
	}

	return nil
}

// ValidateList checks that value is a slice or array and enforces the list
// requirements: every element passes the scalar validator for elements (a
// single element failure fails the whole list, attributed to the list's name),
// ascending/descending lists must be monotonic with no NaN present, unique
// lists must contain no duplicates, and non-empty lists must have at least one
// element. A nil value passes.
func ValidateList(name string, value any, elements Kind, order Order, unique, nonEmpty bool) error {
	const op = "schema.ValidateList"

	if value == nil {
		return nil
	}

	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return typeError(op, name, value, fmt.Errorf("%s (%v) is not a list", name, value))
	}

	n := v.Len()

	if elements != "" {
		for i := 0; i < n; i++ {
			el := v.Index(i).Interface()
			var err error
			switch elements {
			case KindFloat:
				err = ValidateFloat(name, el, nil, nil)
			case KindInt:
				err = ValidateInteger(name, el, nil, nil)
			case KindBool:
				err = ValidateBoolean(name, el)
			case KindString:
				err = ValidateString(name, el, nil, "")
			default:
				return calcerr.NewConfigurationError(op,
					fmt.Errorf("parameter %s: %w: %q", name, calcerr.ErrUnknownKind, elements))
			}
			if err != nil {
				return constraintError(op, name, el,
					fmt.Errorf("invalid element type for %v in %s, %s required", el, name, elements))
			}
		}
	}

	if order == Ascending || order == Descending {
		if err := checkOrder(op, name, v, order); err != nil {
			return err
		}
	}

	if unique {
		// Elements are keyed with their dynamic type so values of different
		// types rendering alike (1 and "1") are not flagged as duplicates.
		seen := make(map[string]struct{}, n)
		for i := 0; i < n; i++ {
			el := v.Index(i).Interface()
			key := fmt.Sprintf("%T:%v", el, el)
			if _, dup := seen[key]; dup {
				return constraintError(op, name, value,
					fmt.Errorf("%s (%v) contains non-unique elements", name, value))
			}
			seen[key] = struct{}{}
		}
	}

	if nonEmpty && n == 0 {
		return constraintError(op, name, value,
			fmt.Errorf("%s: empty lists are not allowed", name))
	}

	return nil
}

func checkOrder(op, name string, v reflect.Value, order Order) error {
	n := v.Len()
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		f, ok := toFloat(v.Index(i).Interface())
		if !ok {
			return constraintError(op, name, v.Interface(),
				fmt.Errorf("list %s has non-numeric elements, ordering cannot be checked", name))
		}
		if math.IsNaN(f) {
			return constraintError(op, name, v.Interface(),
				fmt.Errorf("list %s contains NaN, ordering cannot be guaranteed", name))
		}
		values[i] = f
	}

	for i := 1; i < n; i++ {
		if order == Ascending && values[i] < values[i-1] {
			return constraintError(op, name, v.Interface(),
				fmt.Errorf("list %s (%v) is not ascending", name, v.Interface()))
		}
		if order == Descending && values[i] > values[i-1] {
			return constraintError(op, name, v.Interface(),
				fmt.Errorf("list %s (%v) is not descending", name, v.Interface()))
		}
	}

	return nil
}

// Check dispatches value to the validator matching the entry's declared kind.
// The entry's own constraints are applied; a nil value passes unchanged.
func (e Entry) Check(name string, value any) error {
	switch e.Kind {
	case KindFloat:
		return ValidateFloat(name, value, e.MinValue, e.MaxValue)
	case KindInt:
		return ValidateInteger(name, value, e.MinValue, e.MaxValue)
	case KindBool:
		return ValidateBoolean(name, value)
	case KindString:
		return ValidateString(name, value, e.Options, e.Pattern)
	case KindList:
		return ValidateList(name, value, e.Elements, e.Order, e.Unique, e.NonEmpty)
	default:
		return calcerr.NewConfigurationError("Entry.Check",
			fmt.Errorf("parameter %s: %w: %q", name, calcerr.ErrUnknownKind, e.Kind))
	}
}

func checkBounds(op, name string, f float64, min, max *float64) error {
	if math.IsNaN(f) {
		return nil
	}
	if min != nil && f < *min {
		return constraintError(op, name, f,
			fmt.Errorf("%s (%v) cannot be smaller than %v", name, f, *min))
	}
	if max != nil && f > *max {
		return constraintError(op, name, f,
			fmt.Errorf("%s (%v) cannot be greater than %v", name, f, *max))
	}
	return nil
}

// toFloat converts any numeric value to float64. Booleans, strings and
// composite values are not numeric.
func toFloat(value any) (float64, bool) {
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

func typeError(op, name string, value any, err error) error {
	return calcerr.NewTypeError(op, err).WithContext(map[string]any{
		"parameter": name,
		"value":     value,
	})
}

func constraintError(op, name string, value any, err error) error {
	return calcerr.NewConstraintError(op, err).WithContext(map[string]any{
		"parameter": name,
		"value":     value,
	})
}
