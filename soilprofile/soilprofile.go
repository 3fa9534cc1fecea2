package soilprofile

import (
	"fmt"
	"math"

	"github.com/gravel-geo/gravel/calcerr"
	"github.com/gravel-geo/gravel/schema"
)

// Layer is one stratum of a layered soil profile, bounded by its top and
// bottom depth below the reference level (positive downward, m).
type Layer struct {
	// DepthFrom is the depth of the top of the layer.
	DepthFrom float64 `json:"depth_from" yaml:"depth_from"`

	// DepthTo is the depth of the bottom of the layer.
	DepthTo float64 `json:"depth_to" yaml:"depth_to"`

	// SoilType describes the layer material (e.g., "SAND", "CLAY").
	SoilType string `json:"soil_type" yaml:"soil_type"`

	// TotalUnitWeight is the bulk unit weight of the layer (kN/m3).
	// NaN when not assigned.
	TotalUnitWeight float64 `json:"total_unit_weight" yaml:"total_unit_weight"`

	// Parameters holds additional per-layer quantities, keyed by
	// quantity-with-unit strings (e.g., "Su [kPa]").
	Parameters map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Thickness returns the layer thickness.
func (l Layer) Thickness() float64 {
	return l.DepthTo - l.DepthFrom
}

// Validate checks that the layer is internally consistent: the bottom depth
// must exceed the top depth and an assigned unit weight must be a plausible
// bulk unit weight.
func (l Layer) Validate() error {
	const op = "Layer.Validate"

	if err := schema.ValidateFloat("depth_from", l.DepthFrom, ptr(0), nil); err != nil {
		return err
	}
	if err := schema.ValidateFloat("depth_to", l.DepthTo, ptr(0), nil); err != nil {
		return err
	}
	if !math.IsNaN(l.DepthFrom) && !math.IsNaN(l.DepthTo) && l.DepthTo <= l.DepthFrom {
		return calcerr.NewConstraintError(op,
			fmt.Errorf("depth_to (%v) must exceed depth_from (%v)", l.DepthTo, l.DepthFrom))
	}

	// Bulk unit weights outside 5-25 kN/m3 have no physical interpretation.
	// A zero weight means unassigned and is skipped, like NaN.
	if l.TotalUnitWeight == 0 {
		return nil
	}
	return schema.ValidateFloat("total_unit_weight", l.TotalUnitWeight, ptr(5), ptr(25))
}

// Profile is a layered soil profile: a sequence of layers ordered from
// shallow to deep.
type Profile struct {
	// Name identifies the profile (e.g., a borehole or CPT location).
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Layers are the strata, ordered from shallow to deep.
	Layers []Layer `json:"layers" yaml:"layers"`
}

// Problem describes one discontinuity found between consecutive layers.
type Problem struct {
	// UpperIndex and LowerIndex are the positions of the adjoining layers.
	UpperIndex int
	LowerIndex int

	// Gap is true for a gap between the layers, false for an overlap.
	Gap bool
}

func (p Problem) String() string {
	if p.Gap {
		return fmt.Sprintf("a gap exists between layer %d and %d", p.UpperIndex, p.LowerIndex)
	}
	return fmt.Sprintf("overlap exists between layer %d and %d", p.UpperIndex, p.LowerIndex)
}

// Top returns the depth of the top of the profile.
// NaN for an empty profile.
func (p Profile) Top() float64 {
	if len(p.Layers) == 0 {
		return math.NaN()
	}
	return p.Layers[0].DepthFrom
}

// Bottom returns the depth of the bottom of the profile.
// NaN for an empty profile.
func (p Profile) Bottom() float64 {
	if len(p.Layers) == 0 {
		return math.NaN()
	}
	return p.Layers[len(p.Layers)-1].DepthTo
}

// LayerAt returns the layer containing the given depth. Depths on a layer
// boundary resolve to the deeper layer, except the profile bottom which
// resolves to the last layer.
func (p Profile) LayerAt(depth float64) (Layer, error) {
	const op = "Profile.LayerAt"

	for i, layer := range p.Layers {
		if depth >= layer.DepthFrom && depth < layer.DepthTo {
			return layer, nil
		}
		if i == len(p.Layers)-1 && depth == layer.DepthTo {
			return layer, nil
		}
	}

	return Layer{}, calcerr.NewConstraintError(op,
		fmt.Errorf("depth %v is outside the profile (%v to %v)", depth, p.Top(), p.Bottom()))
}

// Check validates the profile strictly: every layer must be internally
// consistent, layer tops must ascend, and consecutive layers must adjoin
// exactly. The first problem found is returned as an error.
func (p Profile) Check() error {
	const op = "Profile.Check"

	if len(p.Layers) == 0 {
		return calcerr.NewConstraintError(op, fmt.Errorf("profile has no layers"))
	}

	tops := make([]float64, len(p.Layers))
	for i, layer := range p.Layers {
		if err := layer.Validate(); err != nil {
			return err
		}
		tops[i] = layer.DepthFrom
	}

	if err := schema.ValidateList("depth_from", tops, schema.KindFloat, schema.Ascending, false, true); err != nil {
		return err
	}

	for _, problem := range p.problems() {
		return calcerr.NewConstraintError(op, fmt.Errorf("%s", problem))
	}

	return nil
}

// Audit returns every gap and overlap between consecutive layers without
// failing, for workflows that tolerate imperfect field data and log the
// discontinuities instead.
func (p Profile) Audit() []Problem {
	return p.problems()
}

// problems walks consecutive layer pairs comparing each layer's top against
// the previous layer's bottom.
func (p Profile) problems() []Problem {
	var problems []Problem
	for i := 1; i < len(p.Layers); i++ {
		prevBottom := p.Layers[i-1].DepthTo
		top := p.Layers[i].DepthFrom
		switch {
		case top > prevBottom:
			problems = append(problems, Problem{UpperIndex: i - 1, LowerIndex: i, Gap: true})
		case top < prevBottom:
			problems = append(problems, Problem{UpperIndex: i - 1, LowerIndex: i, Gap: false})
		}
	}
	return problems
}

func ptr(f float64) *float64 {
	return &f
}
