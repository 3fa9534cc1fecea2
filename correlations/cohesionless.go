package correlations

import (
	"math"

	"github.com/gravel-geo/gravel"
	"github.com/gravel-geo/gravel/calc"
	"github.com/gravel-geo/gravel/params"
	"github.com/gravel-geo/gravel/schema"
)

// GmaxSandHardinBlack calculates the small-strain shear modulus of sand from
// initial void ratio and stress level, after Hardin & Black (1968). The
// default calibration coefficient follows the PISA monopile study (Taborda et
// al, 2019) and applies to dense marine sand.
//
//	Gmax = B * pref / (0.3 + 0.7 * e0^2) * sqrt(p' / pref)
//
// Parameters:
//   - sigma_m0: mean effective stress p' [kPa], suggested range 0-500
//   - void_ratio: in-situ void ratio e0 [-], suggested range 0-4
//   - coefficient_B: calibration coefficient B [-] (default 875.0)
//   - pref: reference pressure [kPa] (default 100.0)
//
// Returns "Gmax [kPa]".
//
// Reference - Hardin, B.O. and Black W.L. 1968. Vibration modulus of normally
// consolidated clay. Journal of Soil Mechanics and Foundations Div, 94(SM2).
var GmaxSandHardinBlack = mustBuild(calc.NewConfig().
	SetName("gmax_sand_hardinblack").
	SetDescription("Small-strain shear modulus of sand from void ratio and stress level (Hardin & Black 1968)").
	SetSchema(schema.New(map[string]schema.Entry{
		"sigma_m0":      schema.Float(0, 500),
		"void_ratio":    schema.Float(0, 4),
		"coefficient_B": schema.FloatUnbounded().WithDefault(875.0),
		"pref":          schema.FloatUnbounded().WithDefault(100.0),
	})).
	SetSentinel(schema.Results{
		"Gmax [kPa]": math.NaN(),
	}).
	SetFunc(gmaxSandHardinBlack))

func gmaxSandHardinBlack(p map[string]any) (map[string]any, error) {
	sigmaM0 := params.Float64(p, "sigma_m0", math.NaN())
	voidRatio := params.Float64(p, "void_ratio", math.NaN())
	coefficientB := params.Float64(p, "coefficient_B", 875.0)
	pref := params.Float64(p, "pref", 100.0)

	gmax := ((coefficientB * pref) / (0.3 + 0.7*voidRatio*voidRatio)) * math.Sqrt(sigmaM0/pref)

	return map[string]any{
		"Gmax [kPa]": gmax,
	}, nil
}

// mustBuild constructs a calculation and registers it in the root catalogue.
// Definitions are static data, so a failure is a programming mistake.
func mustBuild(cfg *calc.Config) *calc.Calculation {
	c, err := calc.New(cfg)
	if err != nil {
		panic(err)
	}
	gravel.MustRegister(c)
	return c
}
