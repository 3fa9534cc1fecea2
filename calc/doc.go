// Package calc wraps pure calculation functions with their declared parameter
// contracts.
//
// A Calculation pairs a body (a func over map[string]any) with a
// schema.Schema and a sentinel result map. On every Execute call the
// framework:
//
//  1. Takes a private copy of the declared schema.
//  2. Resolves the effective value of every parameter from its default and
//     the caller's input, applying "<name>__min" / "<name>__max" override
//     directives to the copy's bounds.
//  3. Validates each bound parameter against its entry, fail-fast.
//  4. Evaluates cross-parameter rules.
//  5. Invokes the body and applies the failure policy to execution errors
//     exactly as it does to validation errors.
//
// # Building a Calculation
//
//	gmax, err := calc.New(calc.NewConfig().
//		SetName("gmax_sand_hardinblack").
//		SetDescription("Small-strain shear modulus of sand (Hardin & Black 1968)").
//		SetSchema(schema.New(map[string]schema.Entry{
//			"sigma_m0":   schema.Float(0, 500),
//			"void_ratio": schema.Float(0, 4),
//			"pref":       schema.FloatUnbounded().WithDefault(100.0),
//		})).
//		SetSentinel(schema.Results{"Gmax [kPa]": math.NaN()}).
//		SetFunc(gmaxBody))
//
// # Failure Policy
//
// The default policy is fail-silent: a failing call emits one warning through
// the configured slog logger and returns a copy of the sentinel map with a
// nil error, so bulk callers iterating a table of inputs audit failures after
// the fact instead of aborting the batch. calc.FailFast() opts a single call
// into strict propagation of the structured *calcerr.Error.
//
// Binding errors, type mismatches, constraint violations and execution errors
// all travel through this one channel deliberately; the calcerr kinds keep
// them distinguishable for tests and diagnostics.
//
// # Per-Call Controls
//
// CallOptions replace the original keyword controls with explicit
// configuration: WithoutValidation, FailFast, WithSchema, WithSentinel. A
// schema or sentinel override applies to one call only; the declared
// templates are never mutated, so concurrent callers never observe each
// other's overrides.
package calc
