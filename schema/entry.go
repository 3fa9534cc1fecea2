package schema

// Kind identifies the declared type of a parameter.
type Kind string

const (
	// KindFloat accepts any real number, with optional inclusive bounds.
	KindFloat Kind = "float"

	// KindInt accepts integral numbers only; an int-valued float such as 2.0
	// passes, 1.2 does not.
	KindInt Kind = "int"

	// KindBool accepts genuine booleans only, never truthy stand-ins.
	KindBool Kind = "bool"

	// KindString accepts strings, optionally restricted to a closed option set
	// or a pattern matched at the start of the value.
	KindString Kind = "string"

	// KindList accepts slices and arrays, with optional element kind, ordering,
	// uniqueness and non-emptiness requirements.
	KindList Kind = "list"
)

// Order expresses a monotonicity requirement on list parameters.
type Order string

const (
	// Unordered places no requirement on element order.
	Unordered Order = ""

	// Ascending requires non-strictly increasing elements with no NaN present.
	Ascending Order = "ascending"

	// Descending requires non-strictly decreasing elements with no NaN present.
	Descending Order = "descending"
)

// Entry describes the contract for a single calculation parameter: its kind,
// the constraints values must satisfy, and the default seeded when a caller
// does not supply the parameter.
//
// Entries are declared once per calculation as read-only template data. The
// framework takes a copy per invocation (see Schema.Clone), so per-call bound
// overrides never reach the shared declaration.
type Entry struct {
	// Kind is the declared parameter type.
	Kind Kind `json:"kind" yaml:"kind"`

	// MinValue and MaxValue bound float and int parameters inclusively.
	// A nil bound is unbounded in that direction.
	MinValue *float64 `json:"min_value,omitempty" yaml:"min_value,omitempty"`
	MaxValue *float64 `json:"max_value,omitempty" yaml:"max_value,omitempty"`

	// Options restricts string parameters to a closed set of legal values.
	// A nil slice leaves the value set open.
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`

	// Pattern is a regular expression string parameters must match at the
	// start of the value.
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// Elements is the kind every member of a list parameter must satisfy.
	// The empty Kind skips per-element checking.
	Elements Kind `json:"elements,omitempty" yaml:"elements,omitempty"`

	// Order is the monotonicity requirement for list parameters.
	Order Order `json:"order,omitempty" yaml:"order,omitempty"`

	// Unique rejects list parameters containing duplicate elements.
	Unique bool `json:"unique,omitempty" yaml:"unique,omitempty"`

	// NonEmpty rejects zero-length list parameters.
	NonEmpty bool `json:"non_empty,omitempty" yaml:"non_empty,omitempty"`

	// Default is the value seeded for the parameter when the caller does not
	// supply one. A nil Default leaves the parameter unresolved, which skips
	// validation for it.
	Default any `json:"default,omitempty" yaml:"default,omitempty"`

	// Description is a human-readable description of the parameter, typically
	// the physical quantity and its unit.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Float creates an entry for a real-valued parameter with inclusive bounds.
func Float(min, max float64) Entry {
	return Entry{Kind: KindFloat, MinValue: &min, MaxValue: &max}
}

// FloatUnbounded creates an entry for a real-valued parameter without bounds.
func FloatUnbounded() Entry {
	return Entry{Kind: KindFloat}
}

// FloatMin creates an entry for a real-valued parameter with a lower bound only.
func FloatMin(min float64) Entry {
	return Entry{Kind: KindFloat, MinValue: &min}
}

// FloatMax creates an entry for a real-valued parameter with an upper bound only.
func FloatMax(max float64) Entry {
	return Entry{Kind: KindFloat, MaxValue: &max}
}

// Int creates an entry for an integral parameter with inclusive bounds.
func Int(min, max float64) Entry {
	return Entry{Kind: KindInt, MinValue: &min, MaxValue: &max}
}

// IntUnbounded creates an entry for an integral parameter without bounds.
func IntUnbounded() Entry {
	return Entry{Kind: KindInt}
}

// Bool creates an entry for a boolean parameter.
func Bool() Entry {
	return Entry{Kind: KindBool}
}

// String creates an entry for a string parameter, optionally restricted to the
// given option set.
func String(options ...string) Entry {
	return Entry{Kind: KindString, Options: options}
}

// StringPattern creates an entry for a string parameter that must match the
// given regular expression at the start of the value.
func StringPattern(pattern string) Entry {
	return Entry{Kind: KindString, Pattern: pattern}
}

// List creates an entry for a list parameter whose elements must satisfy the
// given kind. Pass the empty Kind to skip per-element checking.
func List(elements Kind) Entry {
	return Entry{Kind: KindList, Elements: elements}
}

// WithDefault returns a copy of the entry with the given default value.
// This method is immutable - it does not modify the receiver.
func (e Entry) WithDefault(v any) Entry {
	result := e
	result.Default = v
	return result
}

// WithDescription returns a copy of the entry with the given description.
func (e Entry) WithDescription(desc string) Entry {
	result := e
	result.Description = desc
	return result
}

// WithOrder returns a copy of the entry with the given ordering requirement.
func (e Entry) WithOrder(o Order) Entry {
	result := e
	result.Order = o
	return result
}

// WithUnique returns a copy of the entry that rejects duplicate elements.
func (e Entry) WithUnique() Entry {
	result := e
	result.Unique = true
	return result
}

// WithNonEmpty returns a copy of the entry that rejects zero-length lists.
func (e Entry) WithNonEmpty() Entry {
	result := e
	result.NonEmpty = true
	return result
}

// Clone returns a deep copy of the entry. Bound pointers are re-pointed and
// the option slice is copied, so mutating the clone never reaches the
// original declaration.
func (e Entry) Clone() Entry {
	result := e
	if e.MinValue != nil {
		min := *e.MinValue
		result.MinValue = &min
	}
	if e.MaxValue != nil {
		max := *e.MaxValue
		result.MaxValue = &max
	}
	if e.Options != nil {
		result.Options = make([]string, len(e.Options))
		copy(result.Options, e.Options)
	}
	return result
}
