package correlations

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

func TestGmaxSandHardinBlack(t *testing.T) {
	result, err := GmaxSandHardinBlack.Execute(context.Background(), map[string]any{
		"sigma_m0":   100.0,
		"void_ratio": 1.0,
	})
	require.NoError(t, err)

	// Gmax = (875 * 100) / (0.3 + 0.7) * sqrt(100/100)
	assert.InDelta(t, 87500.0, result["Gmax [kPa]"], 1e-6)
}

func TestGmaxSandHardinBlackCustomCoefficient(t *testing.T) {
	result, err := GmaxSandHardinBlack.Execute(context.Background(), map[string]any{
		"sigma_m0":      25.0,
		"void_ratio":    0.0,
		"coefficient_B": 1000.0,
	})
	require.NoError(t, err)

	// Gmax = (1000 * 100) / 0.3 * sqrt(0.25)
	assert.InDelta(t, 100000.0/0.3*0.5, result["Gmax [kPa]"], 1e-6)
}

func TestGmaxSandHardinBlackOutOfRange(t *testing.T) {
	_, err := GmaxSandHardinBlack.Execute(context.Background(), map[string]any{
		"sigma_m0":   600.0, // above the suggested 500 kPa
		"void_ratio": 1.0,
	}, calc.FailFast())
	require.Error(t, err)
	assert.Equal(t, calcerr.KindConstraint, calcerr.KindOf(err))
}

func TestGmaxSandHardinBlackOverrideDirective(t *testing.T) {
	result, err := GmaxSandHardinBlack.Execute(context.Background(), map[string]any{
		"sigma_m0":      600.0,
		"sigma_m0__max": 1000.0,
		"void_ratio":    1.0,
	}, calc.FailFast())
	require.NoError(t, err)
	assert.InDelta(t, 87500.0*math.Sqrt(6), result["Gmax [kPa]"], 1e-6)
}

func TestRelativeDensitySandJamiolkowski(t *testing.T) {
	result, err := RelativeDensitySandJamiolkowski.Execute(context.Background(), map[string]any{
		"qc":           20.0,
		"sigma_vo_eff": 100.0,
		"k0":           0.5,
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.7664, result["Dr dry [-]"], 1e-3)
	assert.InDelta(t, 0.8810, result["Dr sat [-]"], 1e-3)
}

func TestRelativeDensitySandJamiolkowskiShallowStress(t *testing.T) {
	// The chamber tests only cover 50-400 kPa vertical effective stress.
	_, err := RelativeDensitySandJamiolkowski.Execute(context.Background(), map[string]any{
		"qc":           20.0,
		"sigma_vo_eff": 20.0,
		"k0":           0.5,
	}, calc.FailFast())
	require.Error(t, err)
	assert.Equal(t, calcerr.KindConstraint, calcerr.KindOf(err))
}

func TestFrictionAngleOverburdenKleven(t *testing.T) {
	// Worked example from the source chart.
	result, err := FrictionAngleOverburdenKleven.Execute(context.Background(), map[string]any{
		"sigma_vo_eff":     100.0,
		"relative_density": 60.0,
		"Ko":               1.0,
	})
	require.NoError(t, err)

	assert.InDelta(t, 35.8, result["phi [deg]"], 1e-6)
	assert.InDelta(t, 100.0, result["sigma_m [kPa]"], 1e-6)
}

func TestFrictionAngleOverburdenKlevenCapped(t *testing.T) {
	result, err := FrictionAngleOverburdenKleven.Execute(context.Background(), map[string]any{
		"sigma_vo_eff":       15.0,
		"relative_density":   100.0,
		"Ko":                 0.3,
		"max_friction_angle": 40.0,
	})
	require.NoError(t, err)

	phi, ok := result["phi [deg]"].(float64)
	require.True(t, ok)
	assert.Equal(t, 40.0, phi)
}

func TestFrictionAngleOverburdenKlevenBeyondChart(t *testing.T) {
	// sigma_m = (1 + 2*2)/3 * 600 = 1000 kPa, beyond the digitised chart.
	_, err := FrictionAngleOverburdenKleven.Execute(context.Background(), map[string]any{
		"sigma_vo_eff":     600.0,
		"relative_density": 60.0,
		"Ko":               2.0,
	}, calc.FailFast())
	require.Error(t, err)
	assert.Equal(t, calcerr.KindExecution, calcerr.KindOf(err))
}

func TestFailSilentReturnsSentinel(t *testing.T) {
	result, err := GmaxSandHardinBlack.Execute(context.Background(), map[string]any{
		"sigma_m0":   -1.0,
		"void_ratio": 1.0,
	})
	require.NoError(t, err)
	gmax, ok := result["Gmax [kPa]"].(float64)
	require.True(t, ok)
	assert.True(t, math.IsNaN(gmax))
}

func TestCorrelationsRegistered(t *testing.T) {
	for _, name := range []string{
		"gmax_sand_hardinblack",
		"relativedensity_sand_jamiolkowski",
		"frictionangle_overburden_kleven",
	} {
		c, err := gravel.Get(name)
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}
}
