package axialcapacity

import (
	"fmt"
	"math"

	"github.com/gravel-geo/gravel/calc"
	"github.com/gravel-geo/gravel/params"
	"github.com/gravel-geo/gravel/schema"
)

// nqFactors tabulates the API RP 2GEO bearing factor Nq and unit end bearing
// limit [kPa] per soil description and relative density class.
var nqFactors = map[string]map[string]struct{ nq, qbLim float64 }{
	"Sand": {
		"Medium dense": {20.0, 5000.0},
		"Dense":        {40.0, 10000.0},
		"Very dense":   {50.0, 12000.0},
	},
	"Sand-silt": {
		"Medium dense": {12.0, 3000.0},
		"Dense":        {20.0, 5000.0},
		"Very dense":   {40.0, 10000.0},
	},
}

// APIUnitEndBearingClay calculates unit end bearing in clay according to API
// RP 2GEO. For piles considered plugged, the bearing pressure may be assumed
// to act over the entire cross-section; for unplugged piles it acts on the
// wall annulus only. Whether a pile behaves plugged under static load is a
// separate static calculation, so the plugged flag is left undetermined.
//
// Parameters:
//   - undrained_shear_strength: Su at the pile tip [kPa], suggested range 0-400
//   - N_c: bearing capacity factor [-], suggested range 7-12 (default 9.0)
//
// Returns "q_b_coring [kPa]", "q_b_plugged [kPa]", "plugged" and
// "internal_friction".
//
// Reference - API RP 2GEO, Geotechnical and Foundation Design
// Considerations, 2011.
var APIUnitEndBearingClay = mustBuild(calc.NewConfig().
	SetName("api_unit_end_bearing_clay").
	SetDescription("Unit end bearing in clay per API RP 2GEO").
	SetSchema(schema.New(map[string]schema.Entry{
		"undrained_shear_strength": schema.Float(0, 400),
		"N_c":                      schema.Float(7, 12).WithDefault(9.0),
	})).
	SetSentinel(schema.Results{
		"q_b_coring [kPa]":  math.NaN(),
		"q_b_plugged [kPa]": math.NaN(),
		"plugged":           nil,
		"internal_friction": false,
	}).
	SetFunc(apiUnitEndBearingClay))

func apiUnitEndBearingClay(p map[string]any) (map[string]any, error) {
	su := params.Float64(p, "undrained_shear_strength", math.NaN())
	nc := params.Float64(p, "N_c", 9.0)

	qb := nc * su

	return map[string]any{
		"q_b_coring [kPa]":  qb,
		"q_b_plugged [kPa]": qb,
		"plugged":           nil,
		"internal_friction": false,
	}, nil
}

// APIUnitEndBearingSandRP2GEO calculates unit end bearing in sand according
// to API RP 2GEO, using the tabulated bearing factor Nq per relative density
// class.
//
// Parameters:
//   - api_relativedensity: relative density class, one of "Very loose",
//     "Loose", "Medium dense", "Dense", "Very dense"
//   - api_soildescription: soil type, one of "Sand", "Sand-silt"
//   - sigma_vo_eff: vertical effective stress at the pile tip [kPa], >= 0
//   - qb_limit: apply the tabulated end bearing limit (default false)
//
// Returns "q_b_coring [kPa]", "q_b_plugged [kPa]", "plugged",
// "internal_friction", "q_b_lim [kPa]" and "Nq [-]".
//
// Reference - API RP 2GEO, Geotechnical and Foundation Design
// Considerations, 2011.
var APIUnitEndBearingSandRP2GEO = mustBuild(calc.NewConfig().
	SetName("api_unit_end_bearing_sand_rp2geo").
	SetDescription("Unit end bearing in sand per API RP 2GEO").
	SetSchema(schema.New(map[string]schema.Entry{
		"api_relativedensity": schema.String(apiRelativeDensities...),
		"api_soildescription": schema.String("Sand", "Sand-silt"),
		"sigma_vo_eff":        schema.FloatMin(0),
		"qb_limit":            schema.Bool().WithDefault(false),
	})).
	SetSentinel(schema.Results{
		"q_b_coring [kPa]":  math.NaN(),
		"q_b_plugged [kPa]": math.NaN(),
		"plugged":           nil,
		"internal_friction": false,
		"q_b_lim [kPa]":     math.NaN(),
		"Nq [-]":            math.NaN(),
	}).
	SetFunc(apiUnitEndBearingSandRP2GEO))

func apiUnitEndBearingSandRP2GEO(p map[string]any) (map[string]any, error) {
	relativeDensity := params.String(p, "api_relativedensity", "")
	soilDescription := params.String(p, "api_soildescription", "")
	sigmaVoEff := params.Float64(p, "sigma_vo_eff", math.NaN())
	qbLimit := params.Bool(p, "qb_limit", false)

	table, ok := nqFactors[soilDescription]
	if !ok {
		return nil, fmt.Errorf("no bearing factors tabulated for soil description %q", soilDescription)
	}
	factors, ok := table[relativeDensity]
	if !ok {
		return nil, fmt.Errorf("no bearing factors tabulated for relative density %q in %q",
			relativeDensity, soilDescription)
	}

	qb := factors.nq * sigmaVoEff
	if qbLimit {
		qb = math.Min(qb, factors.qbLim)
	}

	return map[string]any{
		"q_b_coring [kPa]":  qb,
		"q_b_plugged [kPa]": qb,
		"plugged":           nil,
		"internal_friction": false,
		"q_b_lim [kPa]":     factors.qbLim,
		"Nq [-]":            factors.nq,
	}, nil
}
