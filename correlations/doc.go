// Package correlations provides validated soil correlation calculations.
//
// Each correlation is a calc.Calculation: a pure formula body paired with a
// declared parameter schema carrying the suggested ranges from the source
// publication, and a sentinel result map of NaN values returned when a call
// fails under the default fail-silent policy. Result maps are keyed by
// quantity-with-unit strings, e.g. "Gmax [kPa]".
//
// All correlations register themselves in the root catalogue, so a blank
// import makes them discoverable:
//
//	import _ "github.com/gravel-geo/gravel/correlations"
//
// Inputs outside a suggested range can be accepted for one call with an
// override directive, e.g. "sigma_m0__max": 600.0.
package correlations
