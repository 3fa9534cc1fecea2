package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/gravel-geo/gravel/calcerr"
)

// FromStruct generates a Schema from a Go struct type using reflection.
// Each exported field becomes one parameter entry; the entry kind is derived
// from the field's Go type and constraints are read from the `gravel` tag.
//
// This gives calculations a compile-time parameter declaration while keeping
// the same runtime contract as hand-written schemas.
//
// Supported field types:
//   - float32/float64: float entry
//   - int kinds: int entry
//   - bool: bool entry
//   - string: string entry
//   - slices: list entry with the element kind derived from the element type
//
// Tag directives, comma separated:
//   - name=<n>: parameter name (defaults to the lowercased field name)
//   - min=<v>, max=<v>: inclusive numeric bounds
//   - options=a|b|c: closed option set for strings
//   - pattern=<re>: start-anchored pattern for strings
//   - order=ascending|descending: list ordering requirement
//   - unique: reject duplicate list elements
//   - nonempty: reject zero-length lists
//   - default=<v>: default value, parsed per the entry kind
//   - "-": skip the field
//
// Example:
//
//	type GmaxParams struct {
//		SigmaM0   float64 `gravel:"name=sigma_m0,min=0,max=500"`
//		VoidRatio float64 `gravel:"name=void_ratio,min=0,max=4"`
//		Pref      float64 `gravel:"name=pref,default=100"`
//	}
//
//	s, err := schema.FromStruct(GmaxParams{})
func FromStruct(t any) (Schema, error) {
	const op = "schema.FromStruct"

	if t == nil {
		return Schema{}, calcerr.NewConfigurationError(op, fmt.Errorf("nil type"))
	}

	rt := reflect.TypeOf(t)
	if rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return Schema{}, calcerr.NewConfigurationError(op, fmt.Errorf("expected struct, got %s", rt.Kind()))
	}

	parameters := make(map[string]Entry)

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("gravel")
		if tag == "-" {
			continue
		}

		entry, err := entryForType(field.Type)
		if err != nil {
			return Schema{}, calcerr.NewConfigurationError(op,
				fmt.Errorf("field %s: %w", field.Name, err))
		}

		name := strings.ToLower(field.Name)
		if tag != "" {
			name, entry, err = applyTag(name, entry, tag)
			if err != nil {
				return Schema{}, calcerr.NewConfigurationError(op,
					fmt.Errorf("field %s: %w", field.Name, err))
			}
		}

		parameters[name] = entry
	}

	s := Schema{Parameters: parameters}
	if err := s.Validate(); err != nil {
		return Schema{}, err
	}
	return s, nil
}

func entryForType(t reflect.Type) (Entry, error) {
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		return FloatUnbounded(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return IntUnbounded(), nil
	case reflect.Bool:
		return Bool(), nil
	case reflect.String:
		return String(), nil
	case reflect.Slice, reflect.Array:
		el, err := entryForType(t.Elem())
		if err != nil {
			return Entry{}, err
		}
		return List(el.Kind), nil
	default:
		return Entry{}, fmt.Errorf("unsupported parameter type %s", t.Kind())
	}
}

func applyTag(name string, entry Entry, tag string) (string, Entry, error) {
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, val, hasVal := strings.Cut(part, "=")
		switch key {
		case "name":
			name = val
		case "min":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return "", Entry{}, fmt.Errorf("invalid min %q: %w", val, err)
			}
			entry.MinValue = &f
		case "max":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return "", Entry{}, fmt.Errorf("invalid max %q: %w", val, err)
			}
			entry.MaxValue = &f
		case "options":
			entry.Options = strings.Split(val, "|")
		case "pattern":
			entry.Pattern = val
		case "order":
			entry.Order = Order(val)
		case "unique":
			entry.Unique = true
		case "nonempty":
			entry.NonEmpty = true
		case "default":
			if !hasVal {
				return "", Entry{}, fmt.Errorf("default directive requires a value")
			}
			def, err := parseDefault(entry.Kind, val)
			if err != nil {
				return "", Entry{}, err
			}
			entry.Default = def
		default:
			return "", Entry{}, fmt.Errorf("unknown tag directive %q", key)
		}
	}
	return name, entry, nil
}

func parseDefault(kind Kind, val string) (any, error) {
	switch kind {
	case KindFloat, KindInt:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid default %q: %w", val, err)
		}
		return f, nil
	case KindBool:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return nil, fmt.Errorf("invalid default %q: %w", val, err)
		}
		return b, nil
	case KindString:
		return val, nil
	default:
		return nil, fmt.Errorf("default values are not supported for %s parameters", kind)
	}
}
