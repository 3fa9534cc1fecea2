package schema

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravel-geo/gravel/calcerr"
)

func ptr(f float64) *float64 {
	return &f
}

func TestValidateFloat(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		min, max *float64
		wantKind string
	}{
		{name: "within bounds", value: 50.0, min: ptr(0), max: ptr(100)},
		{name: "equal to min passes", value: 0.0, min: ptr(0), max: ptr(100)},
		{name: "equal to max passes", value: 100.0, min: ptr(0), max: ptr(100)},
		{name: "unbounded", value: -1e9},
		{name: "min only", value: 5.0, min: ptr(0)},
		{name: "int value accepted", value: 42},
		{name: "int64 value accepted", value: int64(42)},
		{name: "NaN passes regardless of bounds", value: math.NaN(), min: ptr(0), max: ptr(1)},
		{name: "nil value passes", value: nil, min: ptr(0), max: ptr(1)},
		{name: "below min", value: -1.0, min: ptr(0), max: ptr(100), wantKind: calcerr.KindConstraint},
		{name: "above max", value: 101.0, min: ptr(0), max: ptr(100), wantKind: calcerr.KindConstraint},
		{name: "string rejected", value: "12.5", wantKind: calcerr.KindType},
		{name: "bool rejected", value: true, wantKind: calcerr.KindType},
		{name: "slice rejected", value: []float64{1}, wantKind: calcerr.KindType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFloat("amount", tt.value, tt.min, tt.max)
			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, calcerr.KindOf(err))
			}
		})
	}
}

func TestValidateInteger(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		min, max *float64
		wantKind string
	}{
		{name: "int within bounds", value: 5, min: ptr(0), max: ptr(10)},
		{name: "int-valued float passes", value: 2.0},
		{name: "NaN passes", value: math.NaN(), min: ptr(0), max: ptr(10)},
		{name: "nil passes", value: nil},
		{name: "fractional float rejected", value: 1.2, wantKind: calcerr.KindType},
		{name: "out of bounds", value: 11, min: ptr(0), max: ptr(10), wantKind: calcerr.KindConstraint},
		{name: "string rejected", value: "3", wantKind: calcerr.KindType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInteger("count", tt.value, tt.min, tt.max)
			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, calcerr.KindOf(err))
			}
		})
	}
}

func TestValidateBoolean(t *testing.T) {
	assert.NoError(t, ValidateBoolean("flag", true))
	assert.NoError(t, ValidateBoolean("flag", false))
	assert.NoError(t, ValidateBoolean("flag", nil))

	for _, masquerade := range []any{1, 0, "true", 1.0} {
		err := ValidateBoolean("flag", masquerade)
		require.Error(t, err, "%v should not pass as a boolean", masquerade)
		assert.Equal(t, calcerr.KindType, calcerr.KindOf(err))
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		options  []string
		pattern  string
		wantKind string
	}{
		{name: "plain string", value: "Sand"},
		{name: "nil passes", value: nil},
		{name: "member of options", value: "Dense", options: []string{"Loose", "Dense"}},
		{name: "not in options", value: "Compact", options: []string{"Loose", "Dense"}, wantKind: calcerr.KindConstraint},
		{name: "matches pattern at start", value: "BH-01-A", pattern: `BH-\d+`},
		{name: "pattern anchored at start", value: "x BH-01", pattern: `BH-\d+`, wantKind: calcerr.KindConstraint},
		{name: "non-string rejected", value: 42, wantKind: calcerr.KindType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateString("soil_type", tt.value, tt.options, tt.pattern)
			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, calcerr.KindOf(err))
			}
		})
	}
}

func TestValidateList(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		elements Kind
		order    Order
		unique   bool
		nonEmpty bool
		wantKind string
	}{
		{name: "plain slice", value: []float64{3, 1, 2}},
		{name: "array accepted", value: [3]int{1, 2, 3}},
		{name: "nil passes", value: nil},
		{name: "ascending accepted", value: []float64{1, 2, 3}, order: Ascending},
		{name: "ascending allows repeats", value: []float64{1, 1, 2}, order: Ascending},
		{name: "not ascending", value: []float64{3, 1, 2}, order: Ascending, wantKind: calcerr.KindConstraint},
		{name: "descending accepted", value: []float64{3, 2, 1}, order: Descending},
		{name: "not descending", value: []float64{1, 3, 2}, order: Descending, wantKind: calcerr.KindConstraint},
		{name: "NaN breaks ordering", value: []float64{1, math.NaN(), 3}, order: Ascending, wantKind: calcerr.KindConstraint},
		{name: "element kind enforced", value: []any{1.0, "two"}, elements: KindFloat, wantKind: calcerr.KindConstraint},
		{name: "element kind satisfied", value: []any{1.0, 2}, elements: KindFloat},
		{name: "unique satisfied", value: []float64{1, 2, 3}, unique: true},
		{name: "duplicates rejected", value: []float64{1, 2, 1}, unique: true, wantKind: calcerr.KindConstraint},
		{name: "alike renderings of different types are unique", value: []any{1, "1"}, unique: true},
		{name: "mixed list duplicates rejected", value: []any{1, "1", 1}, unique: true, wantKind: calcerr.KindConstraint},
		{name: "empty rejected when required", value: []float64{}, nonEmpty: true, wantKind: calcerr.KindConstraint},
		{name: "empty allowed by default", value: []float64{}},
		{name: "non-list rejected", value: 42, wantKind: calcerr.KindType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateList("depths", tt.value, tt.elements, tt.order, tt.unique, tt.nonEmpty)
			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, calcerr.KindOf(err))
			}
		})
	}
}

func TestValidateListFailureAttributedToListName(t *testing.T) {
	err := ValidateList("depths", []any{"deep"}, KindFloat, Unordered, false, false)
	require.Error(t, err)

	var e *calcerr.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "depths", e.Context["parameter"])
}

func TestEntryCheckDispatch(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		value   any
		wantErr bool
	}{
		{name: "float entry", entry: Float(0, 100), value: 50.0},
		{name: "float entry violation", entry: Float(0, 100), value: 150.0, wantErr: true},
		{name: "int entry", entry: Int(0, 10), value: 5},
		{name: "bool entry", entry: Bool(), value: true},
		{name: "string entry", entry: String("Sand", "Clay"), value: "Sand"},
		{name: "list entry", entry: List(KindFloat).WithOrder(Ascending), value: []float64{1, 2}},
		{name: "unknown kind", entry: Entry{Kind: "complex"}, value: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Check("param", tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
