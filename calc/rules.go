package calc

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/gravel-geo/gravel/calcerr"
	"github.com/gravel-geo/gravel/schema"
)

// compileRules compiles the schema's cross-parameter rules into CEL programs.
// Every declared parameter is exposed to the rule environment as a dynamically
// typed variable, so rules can relate parameters of any kind, e.g.
// "depth_to >= depth_from". Rules must evaluate to a boolean.
func compileRules(s schema.Schema) ([]cel.Program, error) {
	const op = "calc.compileRules"

	if len(s.Rules) == 0 {
		return nil, nil
	}

	opts := make([]cel.EnvOption, 0, len(s.Parameters))
	for name := range s.Parameters {
		opts = append(opts, cel.Variable(name, cel.DynType))
	}

	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, calcerr.NewConfigurationError(op, fmt.Errorf("failed to create rule environment: %w", err))
	}

	programs := make([]cel.Program, 0, len(s.Rules))
	for _, rule := range s.Rules {
		ast, iss := env.Compile(rule)
		if iss != nil && iss.Err() != nil {
			return nil, calcerr.NewConfigurationError(op,
				fmt.Errorf("rule %q does not compile: %w", rule, iss.Err()))
		}
		if !ast.OutputType().IsExactType(cel.BoolType) {
			return nil, calcerr.NewConfigurationError(op,
				fmt.Errorf("rule %q must evaluate to a boolean, got %s", rule, ast.OutputType()))
		}

		prg, err := env.Program(ast)
		if err != nil {
			return nil, calcerr.NewConfigurationError(op,
				fmt.Errorf("rule %q failed to plan: %w", rule, err))
		}
		programs = append(programs, prg)
	}

	return programs, nil
}

// evalRules evaluates the compiled rules against the resolved parameter
// values. Rules are only evaluated when every declared parameter has a
// resolved value; an incomplete activation cannot be judged either way and
// skips rule evaluation. A rule evaluating to false is a constraint
// violation attributed to the rule text.
func evalRules(s schema.Schema, programs []cel.Program, ruleTexts []string, bound map[string]binding, resolved map[string]any) error {
	const op = "calc.evalRules"

	if len(programs) == 0 {
		return nil
	}

	activation := make(map[string]any, len(s.Parameters))
	for name := range s.Parameters {
		b, ok := bound[name]
		if !ok || !b.resolved {
			return nil
		}
		activation[name] = b.value
	}

	for i, prg := range programs {
		text := ""
		if i < len(ruleTexts) {
			text = ruleTexts[i]
		}

		out, _, err := prg.Eval(activation)
		if err != nil {
			return calcerr.NewConstraintError(op,
				fmt.Errorf("rule %q could not be evaluated: %w", text, err)).
				WithContext(map[string]any{"rule": text})
		}

		ok, isBool := out.Value().(bool)
		if !isBool {
			return calcerr.NewConfigurationError(op,
				fmt.Errorf("rule %q did not produce a boolean", text))
		}
		if !ok {
			return calcerr.NewConstraintError(op,
				fmt.Errorf("rule %q is not satisfied", text)).
				WithContext(map[string]any{"rule": text, "parameters": activation})
		}
	}

	return nil
}
