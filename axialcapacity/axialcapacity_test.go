package axialcapacity

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravel-geo/gravel"
	"github.com/gravel-geo/gravel/calc"
	"github.com/gravel-geo/gravel/calcerr"
)

func TestAPIUnitShaftFrictionSand(t *testing.T) {
	tests := []struct {
		name            string
		relativeDensity string
		soilDescription string
		sigmaVoEff      float64
		wantBeta        float64
		wantFsLim       float64
	}{
		{"medium dense sand", "Medium dense", "Sand", 100.0, 0.37, 81.0},
		{"dense sand", "Dense", "Sand", 100.0, 0.46, 96.0},
		{"very dense sand", "Very dense", "Sand", 100.0, 0.56, 115.0},
		{"medium dense sand-silt", "Medium dense", "Sand-silt", 100.0, 0.29, 67.0},
		{"very dense sand-silt", "Very dense", "Sand-silt", 100.0, 0.46, 96.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := APIUnitShaftFrictionSandRP2GEO.Execute(context.Background(), map[string]any{
				"api_relativedensity": tt.relativeDensity,
				"api_soildescription": tt.soilDescription,
				"sigma_vo_eff":        tt.sigmaVoEff,
			}, calc.FailFast())
			require.NoError(t, err)

			assert.InDelta(t, tt.wantBeta, result["beta [-]"], 1e-9)
			assert.InDelta(t, tt.wantFsLim, result["f_s_lim [kPa]"], 1e-9)
			assert.InDelta(t, tt.wantBeta*tt.sigmaVoEff, result["f_s_comp_out [kPa]"], 1e-9)
			assert.Equal(t, result["f_s_comp_out [kPa]"], result["f_s_tens_out [kPa]"])
		})
	}
}

func TestAPIUnitShaftFrictionSandLimit(t *testing.T) {
	// beta * sigma = 0.56 * 500 = 280 kPa, above the 115 kPa limit.
	result, err := APIUnitShaftFrictionSandRP2GEO.Execute(context.Background(), map[string]any{
		"api_relativedensity": "Very dense",
		"api_soildescription": "Sand",
		"sigma_vo_eff":        500.0,
		"fs_limit":            true,
		"tension_modifier":    0.7,
	}, calc.FailFast())
	require.NoError(t, err)

	assert.InDelta(t, 115.0, result["f_s_comp_out [kPa]"], 1e-9)
	assert.InDelta(t, 0.7*115.0, result["f_s_tens_out [kPa]"], 1e-9)
}

func TestAPIUnitShaftFrictionSandUntabulatedClass(t *testing.T) {
	// "Loose" is a legal class but the standard tabulates no beta for it,
	// so the body fails and the default policy substitutes the sentinel.
	result, err := APIUnitShaftFrictionSandRP2GEO.Execute(context.Background(), map[string]any{
		"api_relativedensity": "Loose",
		"api_soildescription": "Sand",
		"sigma_vo_eff":        100.0,
	})
	require.NoError(t, err)

	beta, ok := result["beta [-]"].(float64)
	require.True(t, ok)
	assert.True(t, math.IsNaN(beta))

	_, err = APIUnitShaftFrictionSandRP2GEO.Execute(context.Background(), map[string]any{
		"api_relativedensity": "Loose",
		"api_soildescription": "Sand",
		"sigma_vo_eff":        100.0,
	}, calc.FailFast())
	require.Error(t, err)
	assert.Equal(t, calcerr.KindExecution, calcerr.KindOf(err))
}

func TestAPIUnitShaftFrictionSandUnknownOption(t *testing.T) {
	_, err := APIUnitShaftFrictionSandRP2GEO.Execute(context.Background(), map[string]any{
		"api_relativedensity": "Compact", // not an API class
		"api_soildescription": "Sand",
		"sigma_vo_eff":        100.0,
	}, calc.FailFast())
	require.Error(t, err)
	assert.Equal(t, calcerr.KindConstraint, calcerr.KindOf(err))
}

func TestAPIUnitShaftFrictionClay(t *testing.T) {
	// psi = 50/100 = 0.5 <= 1, alpha = 0.5 * 0.5^-0.5
	result, err := APIUnitShaftFrictionClay.Execute(context.Background(), map[string]any{
		"undrained_shear_strength": 50.0,
		"sigma_vo_eff":             100.0,
	}, calc.FailFast())
	require.NoError(t, err)

	alpha := 0.5 * math.Pow(0.5, -0.5)
	assert.InDelta(t, 0.5, result["psi [-]"], 1e-9)
	assert.InDelta(t, alpha, result["alpha [-]"], 1e-9)
	assert.InDelta(t, alpha*50.0, result["f_s_comp_out [kPa]"], 1e-9)
}

func TestAPIUnitShaftFrictionClayHighPsi(t *testing.T) {
	// psi = 200/100 = 2 > 1, alpha = 0.5 * 2^-0.25
	result, err := APIUnitShaftFrictionClay.Execute(context.Background(), map[string]any{
		"undrained_shear_strength": 200.0,
		"sigma_vo_eff":             100.0,
	}, calc.FailFast())
	require.NoError(t, err)

	assert.InDelta(t, 0.5*math.Pow(2, -0.25), result["alpha [-]"], 1e-9)
}

func TestAPIUnitEndBearingClay(t *testing.T) {
	result, err := APIUnitEndBearingClay.Execute(context.Background(), map[string]any{
		"undrained_shear_strength": 100.0,
	}, calc.FailFast())
	require.NoError(t, err)

	assert.InDelta(t, 900.0, result["q_b_coring [kPa]"], 1e-9)
	assert.InDelta(t, 900.0, result["q_b_plugged [kPa]"], 1e-9)
	assert.Nil(t, result["plugged"])
	assert.Equal(t, false, result["internal_friction"])
}

func TestAPIUnitEndBearingClayCustomNc(t *testing.T) {
	result, err := APIUnitEndBearingClay.Execute(context.Background(), map[string]any{
		"undrained_shear_strength": 100.0,
		"N_c":                      7.0,
	}, calc.FailFast())
	require.NoError(t, err)

	assert.InDelta(t, 700.0, result["q_b_coring [kPa]"], 1e-9)
}

func TestAPIUnitEndBearingSand(t *testing.T) {
	result, err := APIUnitEndBearingSandRP2GEO.Execute(context.Background(), map[string]any{
		"api_relativedensity": "Dense",
		"api_soildescription": "Sand",
		"sigma_vo_eff":        200.0,
	}, calc.FailFast())
	require.NoError(t, err)

	assert.InDelta(t, 40.0, result["Nq [-]"], 1e-9)
	assert.InDelta(t, 8000.0, result["q_b_coring [kPa]"], 1e-9)
	assert.InDelta(t, 10000.0, result["q_b_lim [kPa]"], 1e-9)
}

func TestAPIUnitEndBearingSandLimit(t *testing.T) {
	// Nq * sigma = 50 * 400 = 20000 kPa, above the 12000 kPa limit.
	result, err := APIUnitEndBearingSandRP2GEO.Execute(context.Background(), map[string]any{
		"api_relativedensity": "Very dense",
		"api_soildescription": "Sand",
		"sigma_vo_eff":        400.0,
		"qb_limit":            true,
	}, calc.FailFast())
	require.NoError(t, err)

	assert.InDelta(t, 12000.0, result["q_b_coring [kPa]"], 1e-9)
}

func TestAxialCapacityRegistered(t *testing.T) {
	for _, name := range []string{
		"api_unit_shaft_friction_sand_rp2geo",
		"api_unit_shaft_friction_clay",
		"api_unit_end_bearing_clay",
		"api_unit_end_bearing_sand_rp2geo",
	} {
		c, err := gravel.Get(name)
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}
}
