// Package batch executes one calculation over a table of parameter rows.
//
// Bulk analysis is the reason the framework defaults to fail-silent: a sweep
// over hundreds of soil profile rows must not abort because one row violates
// a bound. The Runner makes that workflow explicit. Every row is executed and
// its outcome recorded in a Report; failing rows get the calculation's
// sentinel results substituted, along with the error text and kind for
// auditing after the run.
//
//	runner, err := batch.NewRunner(gmax, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	report, err := runner.Run(ctx, rows)
//	for _, row := range report.Rows {
//		if row.Failed {
//			log.Printf("row %d: %s", row.Index, row.Error)
//		}
//	}
//
// Each run is identified by a UUID. An optional OpenTelemetry tracer wraps
// the run in a span and an optional meter records row counts, failures and
// run duration.
package batch
