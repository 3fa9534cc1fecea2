package correlations

import (
	"fmt"
	"math"

	"github.com/gravel-geo/gravel/calc"
	"github.com/gravel-geo/gravel/params"
	"github.com/gravel-geo/gravel/schema"
)

// RelativeDensitySandJamiolkowski calculates the relative density of sand
// from CPT cone resistance, after Jamiolkowski et al (2003). The correlation
// was calibrated on chamber tests with vertical effective stresses between
// 50 and 400 kPa and K0 between 0.4 and 1.5; the dry-sand value can be
// corrected for saturation, raising it by up to 10%.
//
// Parameters:
//   - qc: cone tip resistance [MPa], suggested range 0-120
//   - sigma_vo_eff: vertical effective stress [kPa], suggested range 50-400
//   - k0: coefficient of lateral earth pressure [-], suggested range 0.4-1.5
//   - atmospheric_pressure: normalisation pressure [kPa] (default 100.0)
//   - coefficient_1 .. coefficient_5: calibration coefficients
//
// Returns "Dr dry [-]" and "Dr sat [-]", both as numbers between 0 and 1.
//
// Reference - Jamiolkowski, M., Lo Presti, D.C.F. and Manassero, M. (2003),
// "Evaluation of Relative Density and Shear Strength of Sands from CPT and
// DMT", Geotechnical Special Publication No. 119, ASCE.
var RelativeDensitySandJamiolkowski = mustBuild(calc.NewConfig().
	SetName("relativedensity_sand_jamiolkowski").
	SetDescription("Relative density of sand from CPT cone resistance (Jamiolkowski et al 2003)").
	SetSchema(schema.New(map[string]schema.Entry{
		"qc":                   schema.Float(0, 120),
		"sigma_vo_eff":         schema.Float(50, 400),
		"k0":                   schema.Float(0.4, 1.5),
		"atmospheric_pressure": schema.FloatUnbounded().WithDefault(100.0),
		"coefficient_1":        schema.FloatUnbounded().WithDefault(2.96),
		"coefficient_2":        schema.FloatUnbounded().WithDefault(24.94),
		"coefficient_3":        schema.FloatUnbounded().WithDefault(0.46),
		"coefficient_4":        schema.FloatUnbounded().WithDefault(-1.87),
		"coefficient_5":        schema.FloatUnbounded().WithDefault(2.32),
	})).
	SetSentinel(schema.Results{
		"Dr dry [-]": math.NaN(),
		"Dr sat [-]": math.NaN(),
	}).
	SetFunc(relativeDensitySandJamiolkowski))

func relativeDensitySandJamiolkowski(p map[string]any) (map[string]any, error) {
	qc := params.Float64(p, "qc", math.NaN())
	sigmaVoEff := params.Float64(p, "sigma_vo_eff", math.NaN())
	k0 := params.Float64(p, "k0", math.NaN())
	atmosphericPressure := params.Float64(p, "atmospheric_pressure", 100.0)
	coefficient1 := params.Float64(p, "coefficient_1", 2.96)
	coefficient2 := params.Float64(p, "coefficient_2", 24.94)
	coefficient3 := params.Float64(p, "coefficient_3", 0.46)
	coefficient4 := params.Float64(p, "coefficient_4", -1.87)
	coefficient5 := params.Float64(p, "coefficient_5", 2.32)

	sigmaMEff := (1.0 / 3.0) * (sigmaVoEff + 2*k0*sigmaVoEff)

	drDry := (1 / coefficient1) * math.Log(
		(1000*qc/atmosphericPressure)/
			(coefficient2*math.Pow(sigmaMEff/atmosphericPressure, coefficient3)))

	drSat := (1 + (coefficient4+coefficient5*math.Log(1000*qc/math.Sqrt(atmosphericPressure+sigmaVoEff)))/100) * drDry

	return map[string]any{
		"Dr dry [-]": drDry,
		"Dr sat [-]": drSat,
	}, nil
}

// FrictionAngleOverburdenKleven calculates the peak drained friction angle of
// North Sea sand from effective confining pressure and relative density,
// after the chart proposed by Kleven (1986). The chart was calibrated on
// tests with confining pressures from 10 to 800 kPa; lower confinement leads
// to higher friction angles. The fit to the data is not excellent and results
// should be compared to site-specific testing.
//
// Parameters:
//   - sigma_vo_eff: effective vertical stress [kPa], suggested range 10-800
//   - relative_density: relative density of sand [percent], suggested range 40-100
//   - Ko: coefficient of lateral earth pressure at rest [-] (default 0.5)
//   - max_friction_angle: cap on the returned friction angle [deg] (default 45.0)
//
// Returns "phi [deg]" and "sigma_m [kPa]".
//
// Reference - Lunne, T., Robertson, P.K., Powell, J.J.M. (1997). Cone
// penetration testing in geotechnical practice. SPON press.
var FrictionAngleOverburdenKleven = mustBuild(calc.NewConfig().
	SetName("frictionangle_overburden_kleven").
	SetDescription("Peak drained friction angle of sand from overburden and relative density (Kleven 1986)").
	SetSchema(schema.New(map[string]schema.Entry{
		"sigma_vo_eff":       schema.Float(10, 800),
		"relative_density":   schema.Float(40, 100),
		"Ko":                 schema.Float(0.3, 2).WithDefault(0.5),
		"max_friction_angle": schema.FloatUnbounded().WithDefault(45.0),
	})).
	SetSentinel(schema.Results{
		"phi [deg]":     math.NaN(),
		"sigma_m [kPa]": math.NaN(),
	}).
	SetFunc(frictionAngleOverburdenKleven))

// klevenChart holds the digitised interpretation chart: for each mean stress
// bracket, phi is interpolated between the line fits at the bracket edges.
// Each line fit is phi = slope * Dr + intercept.
var klevenChart = []struct {
	lower, upper       float64
	slope1, intercept1 float64
	slope2, intercept2 float64
}{
	{10, 25, 0.2183, 25.667, 0.2175, 24.75},
	{25, 50, 0.2175, 24.75, 0.22, 23.5},
	{50, 100, 0.22, 23.5, 0.2175, 22.75},
	{100, 200, 0.2175, 22.75, 0.2, 23.0},
	{200, 400, 0.2, 23.0, 0.1925, 22.75},
	{400, 800, 0.1925, 22.75, 0.195, 21.3},
}

func frictionAngleOverburdenKleven(p map[string]any) (map[string]any, error) {
	sigmaVoEff := params.Float64(p, "sigma_vo_eff", math.NaN())
	relativeDensity := params.Float64(p, "relative_density", math.NaN())
	ko := params.Float64(p, "Ko", 0.5)
	maxFrictionAngle := params.Float64(p, "max_friction_angle", 45.0)

	sigmaM := ((1.0 + 2.0*ko) / 3.0) * sigmaVoEff

	if relativeDensity > 100 {
		relativeDensity = 100
	}

	var phi float64
	switch {
	case sigmaM < 10:
		phi = 0.2183*relativeDensity + 25.667
	case sigmaM >= 800:
		// Outside the digitised chart; the chart was calibrated up to
		// 800 kPa mean effective stress.
		return nil, fmt.Errorf("mean effective stress %.1f kPa is beyond the chart range", sigmaM)
	default:
		for _, bracket := range klevenChart {
			if sigmaM >= bracket.lower && sigmaM < bracket.upper {
				phi1 := bracket.slope1*relativeDensity + bracket.intercept1
				phi2 := bracket.slope2*relativeDensity + bracket.intercept2
				phi = phi1 + ((phi2-phi1)/(bracket.upper-bracket.lower))*(sigmaM-bracket.lower)
				break
			}
		}
	}

	phi = math.Min(phi, maxFrictionAngle)

	return map[string]any{
		"phi [deg]":     phi,
		"sigma_m [kPa]": sigmaM,
	}, nil
}
