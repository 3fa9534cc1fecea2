package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gravel-geo/gravel/calcerr"
)

// Definition is the on-disk form of a calculation contract. It bundles the
// parameter schema, cross-parameter rules and the sentinel result map under
// one document so contracts can be declared in YAML next to the code that
// implements them.
//
// Example document:
//
//	name: gmax_sand_hardinblack
//	version: "1.0"
//	description: Small-strain shear modulus of sand (Hardin & Black 1968)
//	parameters:
//	  sigma_m0:
//	    kind: float
//	    min_value: 0.0
//	    max_value: 500.0
//	  void_ratio:
//	    kind: float
//	    min_value: 0.0
//	    max_value: 4.0
//	sentinel:
//	  "Gmax [kPa]": .nan
type Definition struct {
	// Name is the calculation identifier the contract belongs to.
	Name string `yaml:"name"`

	// Version is the contract version (e.g., "1.0").
	Version string `yaml:"version,omitempty"`

	// Description is a human-readable description of the calculation.
	Description string `yaml:"description,omitempty"`

	// Parameters maps parameter names to their contract entries.
	Parameters map[string]Entry `yaml:"parameters"`

	// Rules are cross-parameter CEL expressions.
	Rules []string `yaml:"rules,omitempty"`

	// Sentinel is the result map returned when validation or execution fails
	// under fail-silent mode.
	Sentinel map[string]any `yaml:"sentinel,omitempty"`
}

// Parse decodes a YAML contract document and validates the resulting schema
// definition. Returns a configuration error if the document cannot be decoded
// or the definition is malformed.
func Parse(data []byte) (*Definition, error) {
	const op = "schema.Parse"

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, calcerr.NewConfigurationError(op, fmt.Errorf("failed to parse contract: %w", err))
	}

	if def.Name == "" {
		return nil, calcerr.NewConfigurationError(op, fmt.Errorf("contract name is required"))
	}
	if len(def.Parameters) == 0 {
		return nil, calcerr.NewConfigurationError(op, fmt.Errorf("contract %s declares no parameters", def.Name))
	}

	if err := def.Schema().Validate(); err != nil {
		return nil, err
	}

	return &def, nil
}

// LoadFile reads and parses a YAML contract file.
func LoadFile(path string) (*Definition, error) {
	const op = "schema.LoadFile"

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, calcerr.NewConfigurationError(op, fmt.Errorf("failed to read contract file: %w", err))
	}

	return Parse(data)
}

// Schema returns the parameter schema declared by the definition.
func (d *Definition) Schema() Schema {
	return Schema{Parameters: d.Parameters, Rules: d.Rules}
}

// Results returns the sentinel result map declared by the definition.
func (d *Definition) Results() Results {
	return Results(d.Sentinel)
}
