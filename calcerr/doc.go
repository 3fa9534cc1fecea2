// Package calcerr provides structured error types for the gravel calculation
// framework.
//
// Every failure raised by argument binding, parameter validation or calculation
// execution is wrapped in a *calcerr.Error carrying the operation that failed
// and a Kind classifying the failure:
//
//   - KindBinding: the call arguments and the declared schema are inconsistent
//   - KindType: a value cannot be interpreted as its declared kind
//   - KindConstraint: a value is of the right kind but violates a constraint
//   - KindExecution: the calculation body itself failed
//   - KindConfiguration: a schema or calculation definition is invalid
//
// # Error Checking
//
// Errors support errors.Is and errors.As. Matching on a kind:
//
//	if errors.Is(err, &calcerr.Error{Kind: calcerr.KindConstraint}) {
//		// a declared bound, option set or ordering requirement was violated
//	}
//
// Or, more directly:
//
//	if calcerr.KindOf(err) == calcerr.KindConstraint {
//		// ...
//	}
//
// At the propagation layer the framework deliberately funnels all kinds through
// one uniform failure channel, so bulk callers see a single behavior; the Kind
// is preserved for diagnostics and for tests that need a precise assertion.
package calcerr
