package axialcapacity

import (
	"fmt"
	"math"

	"github.com/gravel-geo/gravel"
	"github.com/gravel-geo/gravel/calc"
	"github.com/gravel-geo/gravel/params"
	"github.com/gravel-geo/gravel/schema"
)

// API relative density and soil description classes.
var (
	apiRelativeDensities = []string{"Very loose", "Loose", "Medium dense", "Dense", "Very dense"}
	apiSoilDescriptions  = []string{"Sand", "Sand-silt", "Silt", "Gravel"}
)

// betaFactors tabulates the API RP 2GEO beta coefficient and unit skin
// friction limit [kPa] per soil description and relative density class.
// Classes the standard does not tabulate are absent.
var betaFactors = map[string]map[string]struct{ beta, fsLim float64 }{
	"Sand": {
		"Medium dense": {0.37, 81.0},
		"Dense":        {0.46, 96.0},
		"Very dense":   {0.56, 115.0},
	},
	"Sand-silt": {
		"Medium dense": {0.29, 67.0},
		"Dense":        {0.37, 81.0},
		"Very dense":   {0.46, 96.0},
	},
}

// APIUnitShaftFrictionSandRP2GEO calculates unit skin friction in sand
// according to the beta method in API RP 2GEO. The beta parameter is defined
// directly per relative density class, unlike API RP 2A WSD (2000) which
// works with a soil pile friction angle.
//
// Parameters:
//   - api_relativedensity: relative density class, one of "Very loose",
//     "Loose", "Medium dense", "Dense", "Very dense"
//   - api_soildescription: soil type, one of "Sand", "Sand-silt", "Silt", "Gravel"
//   - sigma_vo_eff: in-situ vertical effective stress [kPa], >= 0
//   - fs_limit: apply the tabulated skin friction limit (default false)
//   - tension_modifier: reduction on tension friction [-], 0-1 (default 1.0)
//
// Returns "f_s_comp_out [kPa]", "f_s_comp_in [kPa]", "f_s_tens_out [kPa]",
// "f_s_tens_in [kPa]", "f_s_lim [kPa]" and "beta [-]".
//
// Reference - API RP 2GEO, Geotechnical and Foundation Design
// Considerations, 2011.
var APIUnitShaftFrictionSandRP2GEO = mustBuild(calc.NewConfig().
	SetName("api_unit_shaft_friction_sand_rp2geo").
	SetDescription("Unit skin friction in sand per the API RP 2GEO beta method").
	SetSchema(schema.New(map[string]schema.Entry{
		"api_relativedensity": schema.String(apiRelativeDensities...),
		"api_soildescription": schema.String(apiSoilDescriptions...),
		"sigma_vo_eff":        schema.FloatMin(0),
		"fs_limit":            schema.Bool().WithDefault(false),
		"tension_modifier":    schema.Float(0, 1).WithDefault(1.0),
	})).
	SetSentinel(schema.Results{
		"f_s_comp_out [kPa]": math.NaN(),
		"f_s_comp_in [kPa]":  math.NaN(),
		"f_s_tens_out [kPa]": math.NaN(),
		"f_s_tens_in [kPa]":  math.NaN(),
		"f_s_lim [kPa]":      math.NaN(),
		"beta [-]":           math.NaN(),
	}).
	SetFunc(apiUnitShaftFrictionSandRP2GEO))

func apiUnitShaftFrictionSandRP2GEO(p map[string]any) (map[string]any, error) {
	relativeDensity := params.String(p, "api_relativedensity", "")
	soilDescription := params.String(p, "api_soildescription", "")
	sigmaVoEff := params.Float64(p, "sigma_vo_eff", math.NaN())
	fsLimit := params.Bool(p, "fs_limit", false)
	tensionModifier := params.Float64(p, "tension_modifier", 1.0)

	table, ok := betaFactors[soilDescription]
	if !ok {
		return nil, fmt.Errorf("no beta factors tabulated for soil description %q", soilDescription)
	}
	factors, ok := table[relativeDensity]
	if !ok {
		return nil, fmt.Errorf("no beta factors tabulated for relative density %q in %q",
			relativeDensity, soilDescription)
	}

	fsComp := factors.beta * sigmaVoEff
	if fsLimit {
		fsComp = math.Min(fsComp, factors.fsLim)
	}
	fsTens := tensionModifier * fsComp

	return map[string]any{
		"f_s_comp_out [kPa]": fsComp,
		"f_s_comp_in [kPa]":  fsComp,
		"f_s_tens_out [kPa]": fsTens,
		"f_s_tens_in [kPa]":  fsTens,
		"f_s_lim [kPa]":      factors.fsLim,
		"beta [-]":           factors.beta,
	}, nil
}

// APIUnitShaftFrictionClay calculates unit skin friction in clay according to
// the alpha method in API RP 2GEO. The method should be applied with care for
// ratios of undrained shear strength to vertical effective stress above
// three, for deep penetrating piles in strong soils and for low plasticity
// clays.
//
// Parameters:
//   - undrained_shear_strength: Su [kPa], suggested range 0-400
//   - sigma_vo_eff: in-situ vertical effective stress [kPa], >= 0
//
// Returns "f_s_comp_out [kPa]", "f_s_comp_in [kPa]", "f_s_tens_out [kPa]",
// "f_s_tens_in [kPa]", "psi [-]" and "alpha [-]".
//
// Reference - API RP 2GEO, Geotechnical and Foundation Design
// Considerations, 2011.
var APIUnitShaftFrictionClay = mustBuild(calc.NewConfig().
	SetName("api_unit_shaft_friction_clay").
	SetDescription("Unit skin friction in clay per the API RP 2GEO alpha method").
	SetSchema(schema.New(map[string]schema.Entry{
		"undrained_shear_strength": schema.Float(0, 400),
		"sigma_vo_eff":             schema.FloatMin(0),
	})).
	SetSentinel(schema.Results{
		"f_s_comp_out [kPa]": math.NaN(),
		"f_s_comp_in [kPa]":  math.NaN(),
		"f_s_tens_out [kPa]": math.NaN(),
		"f_s_tens_in [kPa]":  math.NaN(),
		"psi [-]":            math.NaN(),
		"alpha [-]":          math.NaN(),
	}).
	SetFunc(apiUnitShaftFrictionClay))

func apiUnitShaftFrictionClay(p map[string]any) (map[string]any, error) {
	su := params.Float64(p, "undrained_shear_strength", math.NaN())
	sigmaVoEff := params.Float64(p, "sigma_vo_eff", math.NaN())

	if sigmaVoEff == 0 {
		return nil, fmt.Errorf("psi is undefined at zero vertical effective stress")
	}

	psi := su / sigmaVoEff

	var alpha float64
	if psi <= 1.0 {
		alpha = 0.5 * math.Pow(psi, -0.5)
	} else {
		alpha = 0.5 * math.Pow(psi, -0.25)
	}

	fs := alpha * su

	return map[string]any{
		"f_s_comp_out [kPa]": fs,
		"f_s_comp_in [kPa]":  fs,
		"f_s_tens_out [kPa]": fs,
		"f_s_tens_in [kPa]":  fs,
		"psi [-]":            psi,
		"alpha [-]":          alpha,
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
