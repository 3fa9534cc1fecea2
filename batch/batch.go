package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/gravel-geo/gravel/calc"
	"github.com/gravel-geo/gravel/calcerr"
)

// RowResult holds the outcome of one input row.
type RowResult struct {
	// Index is the zero-based position of the row in the input table.
	Index int `json:"index"`

	// Input is the parameter row the calculation was executed with.
	Input map[string]any `json:"input"`

	// Results is the calculation output: the computed result map on success,
	// a copy of the sentinel result map on failure.
	Results map[string]any `json:"results"`

	// Failed reports whether the row entered the failure policy.
	Failed bool `json:"failed"`

	// Error is the text of the failure, empty on success. The structured
	// error kind is preserved in Kind.
	Error string `json:"error,omitempty"`

	// Kind classifies the failure (binding, type, constraint, execution),
	// empty on success.
	Kind string `json:"kind,omitempty"`
}

// Report summarizes one bulk run of a calculation over a table of rows.
type Report struct {
	// RunID uniquely identifies this run.
	RunID string `json:"run_id"`

	// Calculation and Version identify the executed calculation.
	Calculation string `json:"calculation"`
	Version     string `json:"version"`

	// Rows holds one result per input row, in input order.
	Rows []RowResult `json:"rows"`

	// Failures is the number of rows that entered the failure policy.
	Failures int `json:"failures"`

	// StartedAt and CompletedAt bound the run.
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// Runner executes one calculation over a table of parameter rows.
//
// Each row is executed fail-silent: a failing row is recorded in the report
// with the sentinel results substituted and the run continues, so a single
// bad row never aborts a sweep. The per-row error text and kind are kept for
// auditing after the fact.
type Runner struct {
	calculation *calc.Calculation
	logger      *slog.Logger
	tracer      trace.Tracer
	metrics     *otelMetrics
	callOpts    []calc.CallOption
}

// otelMetrics holds the metric instruments for a Runner, created once during
// NewRunner and reused for all runs.
type otelMetrics struct {
	// rows increments for each executed row
	rows metric.Int64Counter

	// failedRows increments for each row that entered the failure policy
	failedRows metric.Int64Counter

	// runDuration records run duration in milliseconds
	runDuration metric.Float64Histogram
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for per-row failure warnings.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer; when present, every Run executes
// inside a span.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Runner) {
		r.tracer = tracer
	}
}

// WithCallOptions sets extra per-call options forwarded to every row's
// Execute call, such as calc.WithSchema for a run-wide contract override.
func WithCallOptions(opts ...calc.CallOption) Option {
	return func(r *Runner) {
		r.callOpts = opts
	}
}

// NewRunner creates a Runner for the given calculation. The meter may be nil
// to skip metric instrumentation.
func NewRunner(calculation *calc.Calculation, meter metric.Meter, opts ...Option) (*Runner, error) {
	const op = "batch.NewRunner"

	if calculation == nil {
		return nil, calcerr.NewConfigurationError(op, fmt.Errorf("calculation cannot be nil"))
	}

	r := &Runner{calculation: calculation}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}

	if meter != nil {
		metrics, err := initMetrics(meter)
		if err != nil {
			return nil, calcerr.NewConfigurationError(op, err)
		}
		r.metrics = metrics
	}

	return r, nil
}

func initMetrics(meter metric.Meter) (*otelMetrics, error) {
	metrics := &otelMetrics{}
	var err error

	metrics.rows, err = meter.Int64Counter(
		"batch.rows",
		metric.WithDescription("Number of input rows executed"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create rows counter: %w", err)
	}

	metrics.failedRows, err = meter.Int64Counter(
		"batch.failed_rows",
		metric.WithDescription("Number of rows that entered the failure policy"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create failed rows counter: %w", err)
	}

	metrics.runDuration, err = meter.Float64Histogram(
		"batch.run_duration",
		metric.WithDescription("Bulk run duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create run duration histogram: %w", err)
	}

	return metrics, nil
}

// Run executes the calculation over every row in the table and returns the
// collected report. The context cancels the run between rows; rows already
// executed are kept in the report and the context error is returned alongside
// it.
func (r *Runner) Run(ctx context.Context, rows []map[string]any) (*Report, error) {
	report := &Report{
		RunID:       uuid.NewString(),
		Calculation: r.calculation.Name(),
		Version:     r.calculation.Version(),
		Rows:        make([]RowResult, 0, len(rows)),
		StartedAt:   time.Now(),
	}

	var span trace.Span
	if r.tracer != nil {
		ctx, span = r.tracer.Start(ctx, "batch.run")
		defer span.End()
		span.SetAttributes(
			attribute.String("batch.run_id", report.RunID),
			attribute.String("calc.name", report.Calculation),
			attribute.Int("batch.row_count", len(rows)),
		)
	}

	defer func() {
		report.CompletedAt = time.Now()
		if r.metrics != nil {
			r.metrics.runDuration.Record(ctx, float64(report.CompletedAt.Sub(report.StartedAt).Milliseconds()),
				metric.WithAttributes(attribute.String("calc.name", report.Calculation)))
		}
	}()

	for i, row := range rows {
		select {
		case <-ctx.Done():
			if span != nil {
				span.SetStatus(codes.Error, ctx.Err().Error())
			}
			return report, calcerr.NewExecutionError("Runner.Run", ctx.Err())
		default:
		}

		report.Rows = append(report.Rows, r.runRow(ctx, i, row))
		if report.Rows[i].Failed {
			report.Failures++
		}
	}

	if span != nil {
		span.SetAttributes(attribute.Int("batch.failures", report.Failures))
		span.SetStatus(codes.Ok, "")
	}

	return report, nil
}

// runRow executes one row strictly and collapses any failure to the sentinel
// itself, keeping the structured error for the report.
func (r *Runner) runRow(ctx context.Context, index int, row map[string]any) RowResult {
	result := RowResult{Index: index, Input: row}

	if r.metrics != nil {
		r.metrics.rows.Add(ctx, 1, metric.WithAttributes(attribute.String("calc.name", r.calculation.Name())))
	}

	opts := append([]calc.CallOption{calc.FailFast()}, r.callOpts...)
	out, err := r.calculation.Execute(ctx, row, opts...)
	if err != nil {
		result.Failed = true
		result.Error = err.Error()
		result.Kind = calcerr.KindOf(err)
		result.Results = map[string]any(r.calculation.Sentinel())

		r.logger.Warn("row failed, sentinel results substituted",
			"calculation", r.calculation.Name(),
			"row", index,
			"error", err)

		if r.metrics != nil {
			r.metrics.failedRows.Add(ctx, 1, metric.WithAttributes(
				attribute.String("calc.name", r.calculation.Name()),
				attribute.String("calc.error_kind", result.Kind),
			))
		}
		return result
	}

	result.Results = out
	return result
}
