// Package axialcapacity provides validated pile axial capacity calculations
// following API RP 2GEO.
//
// Unit skin friction and unit end bearing are provided for sand (beta method
// with tabulated beta, Nq and limits per relative density class) and clay
// (alpha method and Nc bearing factor). Sand calculations take the API
// relative density and soil description as closed-option string parameters;
// categories the standard does not tabulate (e.g. "Very loose" sand) fail as
// execution errors and collapse to the sentinel under the default policy.
//
// All calculations register themselves in the root catalogue:
//
//	import _ "github.com/gravel-geo/gravel/axialcapacity"
package axialcapacity
