// Package schema provides the declarative parameter contracts used by every
// calculation in the gravel catalogue.
//
// A Schema maps parameter names to Entry values describing the declared kind
// of each parameter (float, int, bool, string or list) and the constraints its
// values must satisfy: inclusive numeric bounds, closed string option sets,
// start-anchored patterns, and list requirements (element kind, ordering,
// uniqueness, non-emptiness).
//
// # Declaring Contracts
//
// Contracts are built once, at load time, from constructor helpers:
//
//	params := schema.New(map[string]schema.Entry{
//		"sigma_m0":   schema.Float(0, 500),
//		"void_ratio": schema.Float(0, 4),
//		"pref":       schema.FloatUnbounded().WithDefault(100.0),
//	})
//
//	sentinel := schema.Results{"Gmax [kPa]": math.NaN()}
//
// Contracts can equally be loaded from YAML documents (LoadFile, Parse) or
// generated from tagged Go structs (FromStruct).
//
// # Validation
//
// Each kind has an independent validator (ValidateFloat, ValidateInteger,
// ValidateBoolean, ValidateString, ValidateList); Entry.Check dispatches to
// the matching one. Two properties hold throughout:
//
//   - Bounds are inclusive: a value equal to a bound passes.
//   - NaN passes numeric validation regardless of bounds. Domain formulas use
//     NaN for "not applicable" and must not be rejected for it.
//
// Failures are *calcerr.Error values distinguishing type mismatches from
// constraint violations, carrying the parameter name and offending value.
//
// # Immutability
//
// Declared schemas are shared, read-only template data. Clone produces the
// per-call deep copy the calculation framework mutates when applying override
// directives, so concurrent calls never observe each other's bounds.
package schema
