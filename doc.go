// Package gravel is a catalogue of geotechnical calculation functions built
// on a shared parameter-contract framework.
//
// Every calculation in the catalogue is a pure formula body wrapped with a
// declarative schema describing its parameters (kind, bounds, option sets,
// list requirements) and a sentinel result map returned when validation or
// execution fails under the default fail-silent policy.
//
// # Package Layout
//
//   - schema: declarative parameter contracts, the five type validators, the
//     YAML contract loader and struct-tag schema generation
//   - calcerr: structured errors classifying binding, type, constraint,
//     execution and configuration failures
//   - calc: the Calculation wrapper performing argument binding, override
//     directives, validation, cross-parameter rules and the failure policy
//   - params: typed readers for the map[string]any parameter and result maps
//   - batch: bulk execution of one calculation over a table of input rows
//   - cache: result memoization for parametric sweeps, in memory or in Redis
//   - soilprofile: layered soil profile model with gap and overlap checking
//   - correlations, axialcapacity: the built-in formula catalogue
//
// # Discovery
//
// The root package keeps an in-memory catalogue of calculations so callers
// and UIs can enumerate what is available:
//
//	import (
//		"github.com/gravel-geo/gravel"
//		_ "github.com/gravel-geo/gravel/correlations"
//	)
//
//	gmax, err := gravel.Get("gmax_sand_hardinblack")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, _ := gmax.Execute(ctx, map[string]any{
//		"sigma_m0":   100.0,
//		"void_ratio": 0.8,
//	})
//
// # Failure Policy
//
// The default policy is fail-silent: a failing call emits one warning and
// returns the calculation's sentinel result map with a nil error, so bulk
// callers iterate large input tables without per-row error handling. Pass
// calc.FailFast() for strict propagation of the structured *calcerr.Error.
//
// # Thread Safety
//
// Declared schemas and sentinel maps are read-only templates; every call
// works on private copies, so concurrent execution of the same calculation
// is safe without locking.
package gravel
