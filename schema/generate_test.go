package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravel-geo/gravel/calcerr"
)

func TestFromStruct(t *testing.T) {
	type gmaxParams struct {
		SigmaM0   float64 `gravel:"name=sigma_m0,min=0,max=500"`
		VoidRatio float64 `gravel:"name=void_ratio,min=0,max=4"`
		Pref      float64 `gravel:"name=pref,default=100"`
	}

	s, err := FromStruct(gmaxParams{})
	require.NoError(t, err)
	require.Len(t, s.Parameters, 3)

	sigma := s.Parameters["sigma_m0"]
	assert.Equal(t, KindFloat, sigma.Kind)
	assert.Equal(t, 0.0, *sigma.MinValue)
	assert.Equal(t, 500.0, *sigma.MaxValue)

	pref := s.Parameters["pref"]
	assert.Nil(t, pref.MinValue)
	assert.Equal(t, 100.0, pref.Default)
}

func TestFromStructKinds(t *testing.T) {
	type allKinds struct {
		Count    int `gravel:"min=0,max=10"`
		Limit    bool
		SoilType string    `gravel:"options=Sand|Clay,default=Sand"`
		Label    string    `gravel:"pattern=BH-\\d+"`
		Depths   []float64 `gravel:"order=ascending,unique,nonempty"`
	}

	s, err := FromStruct(allKinds{})
	require.NoError(t, err)

	assert.Equal(t, KindInt, s.Parameters["count"].Kind)
	assert.Equal(t, KindBool, s.Parameters["limit"].Kind)

	soil := s.Parameters["soiltype"]
	assert.Equal(t, KindString, soil.Kind)
	assert.Equal(t, []string{"Sand", "Clay"}, soil.Options)
	assert.Equal(t, "Sand", soil.Default)

	depths := s.Parameters["depths"]
	assert.Equal(t, KindList, depths.Kind)
	assert.Equal(t, KindFloat, depths.Elements)
	assert.Equal(t, Ascending, depths.Order)
	assert.True(t, depths.Unique)
	assert.True(t, depths.NonEmpty)
}

func TestFromStructSkipsAndPointer(t *testing.T) {
	type params struct {
		Kept     float64
		Skipped  float64 `gravel:"-"`
		excluded float64
	}
	_ = params{}.excluded

	s, err := FromStruct(&params{})
	require.NoError(t, err)
	assert.Len(t, s.Parameters, 1)
	assert.Contains(t, s.Parameters, "kept")
}

func TestFromStructErrors(t *testing.T) {
	type badMin struct {
		X float64 `gravel:"min=abc"`
	}
	type badDirective struct {
		X float64 `gravel:"shape=round"`
	}
	type badType struct {
		X map[string]any
	}
	type badDefault struct {
		Depths []float64 `gravel:"default=1"`
	}

	for name, target := range map[string]any{
		"nil type":          nil,
		"non-struct":        42,
		"invalid min":       badMin{},
		"unknown directive": badDirective{},
		"unsupported type":  badType{},
		"list default":      badDefault{},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := FromStruct(target)
			require.Error(t, err)
			assert.Equal(t, calcerr.KindConfiguration, calcerr.KindOf(err))
		})
	}
}
