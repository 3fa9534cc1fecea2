package calc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/cel-go/cel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/gravel-geo/gravel/calcerr"
	"github.com/gravel-geo/gravel/schema"
)

// Func is the pure calculation body wrapped by a Calculation. It receives the
// parameter map with defaults already resolved and arguments already
// validated, and returns a map of output-field name to computed value.
type Func func(params map[string]any) (map[string]any, error)

// Config holds the configuration for building a Calculation.
type Config struct {
	name        string
	version     string
	description string
	schema      schema.Schema
	sentinel    schema.Results
	fn          Func
	logger      *slog.Logger
	tracer      trace.Tracer
	meter       metric.Meter
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		version: "1.0.0",
	}
}

// SetName sets the calculation name.
func (c *Config) SetName(name string) *Config {
	c.name = name
	return c
}

// SetVersion sets the calculation version.
func (c *Config) SetVersion(version string) *Config {
	c.version = version
	return c
}

// SetDescription sets the calculation description.
func (c *Config) SetDescription(desc string) *Config {
	c.description = desc
	return c
}

// SetSchema sets the declared parameter schema.
func (c *Config) SetSchema(s schema.Schema) *Config {
	c.schema = s
	return c
}

// SetSentinel sets the sentinel result map returned on failure under
// fail-silent mode.
func (c *Config) SetSentinel(r schema.Results) *Config {
	c.sentinel = r
	return c
}

// SetFunc sets the calculation body.
func (c *Config) SetFunc(fn Func) *Config {
	c.fn = fn
	return c
}

// SetLogger sets the logger used for fail-silent warnings.
// If not provided, slog.Default() is used.
func (c *Config) SetLogger(logger *slog.Logger) *Config {
	c.logger = logger
	return c
}

// SetTracer sets an OpenTelemetry tracer; when present, every Execute call
// runs inside a span.
func (c *Config) SetTracer(tracer trace.Tracer) *Config {
	c.tracer = tracer
	return c
}

// SetMeter sets an OpenTelemetry meter; when present, execution counts,
// failures and durations are recorded.
func (c *Config) SetMeter(meter metric.Meter) *Config {
	c.meter = meter
	return c
}

// Calculation wraps a pure calculation body with its parameter contract.
//
// On every Execute call the framework resolves the effective argument values
// (defaults, caller values, override directives), validates each parameter
// against the declared schema, invokes the body, and applies the configured
// failure policy to validation and execution errors alike.
//
// A Calculation holds no per-call state: the declared schema and sentinel are
// read-only templates and every call works on private copies, so concurrent
// use from multiple goroutines is safe as long as the body itself is
// reentrant.
type Calculation struct {
	name        string
	version     string
	description string
	schema      schema.Schema
	sentinel    schema.Results
	fn          Func
	logger      *slog.Logger
	tracer      trace.Tracer
	metrics     *otelMetrics

	// rulePrograms are the CEL programs for the default schema's rules,
	// compiled once at construction time.
	rulePrograms []cel.Program
}

// otelMetrics holds the metric instruments for a Calculation. These are
// created once during New and reused for all executions.
type otelMetrics struct {
	// executions increments for each Execute call
	executions metric.Int64Counter

	// failures increments for each call that entered the failure policy
	failures metric.Int64Counter

	// duration records execution duration in milliseconds
	duration metric.Float64Histogram
}

// New creates a Calculation from the provided Config.
// Returns a configuration error if required fields (name, body) are missing,
// the schema definition is malformed, or a cross-parameter rule does not
// compile.
func New(cfg *Config) (*Calculation, error) {
	const op = "calc.New"

	if cfg == nil {
		return nil, calcerr.NewConfigurationError(op, errors.New("config cannot be nil"))
	}
	if cfg.name == "" {
		return nil, calcerr.NewConfigurationError(op, errors.New("calculation name is required"))
	}
	if cfg.fn == nil {
		return nil, calcerr.NewConfigurationError(op, errors.New("calculation body is required"))
	}

	if err := cfg.schema.Validate(); err != nil {
		return nil, err
	}

	programs, err := compileRules(cfg.schema)
	if err != nil {
		return nil, err
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	// Private copies enforce the read-only-template invariant: a caller still
	// holding the maps passed to SetSchema/SetSentinel cannot mutate the
	// contract after construction.
	calc := &Calculation{
		name:         cfg.name,
		version:      cfg.version,
		description:  cfg.description,
		schema:       cfg.schema.Clone(),
		sentinel:     cfg.sentinel.Clone(),
		fn:           cfg.fn,
		logger:       logger,
		tracer:       cfg.tracer,
		rulePrograms: programs,
	}

	if cfg.meter != nil {
		metrics, err := initMetrics(cfg.meter)
		if err != nil {
			return nil, calcerr.NewConfigurationError(op, err)
		}
		calc.metrics = metrics
	}

	return calc, nil
}

// initMetrics creates the metric instruments for a Calculation.
func initMetrics(meter metric.Meter) (*otelMetrics, error) {
	metrics := &otelMetrics{}
	var err error

	metrics.executions, err = meter.Int64Counter(
		"calc.executions",
		metric.WithDescription("Number of calculation executions"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create executions counter: %w", err)
	}

	metrics.failures, err = meter.Int64Counter(
		"calc.failures",
		metric.WithDescription("Number of executions that entered the failure policy"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create failures counter: %w", err)
	}

	metrics.duration, err = meter.Float64Histogram(
		"calc.duration",
		metric.WithDescription("Calculation execution duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	return metrics, nil
}

// Name returns the calculation name.
func (c *Calculation) Name() string {
	return c.name
}

// Version returns the calculation version.
func (c *Calculation) Version() string {
	return c.version
}

// Description returns the calculation description.
func (c *Calculation) Description() string {
	return c.description
}

// Schema returns a copy of the declared parameter schema.
func (c *Calculation) Schema() schema.Schema {
	return c.schema.Clone()
}

// Sentinel returns a copy of the declared sentinel result map.
func (c *Calculation) Sentinel() schema.Results {
	return c.sentinel.Clone()
}

// Execute runs the calculation with the given input.
//
// The input map carries ordinary parameter values plus optional override
// directives of the form "<name>__min" / "<name>__max", which relax or
// tighten a single parameter's bounds for this call only. Reserved per-call
// controls are passed as CallOptions.
//
// Under the default fail-silent policy a failing call never returns an error:
// it emits one warning through the configured logger and returns a copy of
// the sentinel result map, so bulk callers can iterate large input tables
// without per-row error handling. With FailFast the structured error is
// returned instead.
func (c *Calculation) Execute(ctx context.Context, input map[string]any, opts ...CallOption) (map[string]any, error) {
	const op = "Calculation.Execute"

	settings := callSettings{
		validate:     true,
		failSilently: true,
		schema:       c.schema,
		sentinel:     c.sentinel,
	}
	for _, opt := range opts {
		opt(&settings)
	}

	start := time.Now()

	var span trace.Span
	if c.tracer != nil {
		ctx, span = c.tracer.Start(ctx, "calc.execute")
		defer span.End()
		span.SetAttributes(
			attribute.String("calc.name", c.name),
			attribute.String("calc.version", c.version),
			attribute.Bool("calc.validate", settings.validate),
		)
	}

	if c.metrics != nil {
		c.metrics.executions.Add(ctx, 1, metric.WithAttributes(attribute.String("calc.name", c.name)))
		defer func() {
			c.metrics.duration.Record(ctx, float64(time.Since(start).Milliseconds()),
				metric.WithAttributes(attribute.String("calc.name", c.name)))
		}()
	}

	var params map[string]any
	if settings.validate {
		bound, resolved, err := bindArgs(settings.schema, input)
		if err == nil {
			err = c.checkBound(settings, bound, resolved)
		}
		if err != nil {
			return c.fail(ctx, span, settings, err)
		}
		params = resolved
	} else {
		params = resolveParams(settings.schema, input)
	}

	result, err := c.invoke(params)
	if err != nil {
		return c.fail(ctx, span, settings, calcerr.NewExecutionError(op, err))
	}

	if span != nil {
		span.SetStatus(codes.Ok, "")
	}
	return result, nil
}

// checkBound dispatches every bound entry to the validator matching its
// declared kind, then evaluates the cross-parameter rules. The loop is
// fail-fast: the first violation aborts further checks. Entries are visited
// in name order so the triggering error is deterministic.
func (c *Calculation) checkBound(settings callSettings, bound map[string]binding, resolved map[string]any) error {
	names := make([]string, 0, len(bound))
	for name := range bound {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b := bound[name]
		if !b.resolved {
			// No value could be resolved for the parameter; it cannot be
			// validated. The body decides how to treat the absence.
			continue
		}
		if err := b.entry.Check(name, b.value); err != nil {
			return err
		}
	}

	programs := c.rulePrograms
	ruleTexts := settings.schema.Rules
	if settings.schemaOverridden {
		var err error
		programs, err = compileRules(settings.schema)
		if err != nil {
			return err
		}
	}

	return evalRules(settings.schema, programs, ruleTexts, bound, resolved)
}

// invoke runs the calculation body, converting panics into execution errors
// so a misbehaving formula cannot take down a bulk run.
func (c *Calculation) invoke(params map[string]any) (result map[string]any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("calculation panicked: %v", r)
		}
	}()
	return c.fn(params)
}

// fail applies the failure policy: under fail-silent, emit one warning and
// return a copy of the sentinel results; otherwise propagate the error.
func (c *Calculation) fail(ctx context.Context, span trace.Span, settings callSettings, err error) (map[string]any, error) {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if c.metrics != nil {
		c.metrics.failures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("calc.name", c.name),
			attribute.String("calc.error_kind", calcerr.KindOf(err)),
		))
	}

	if settings.failSilently {
		c.logger.Warn("calculation failed, returning sentinel results",
			"calculation", c.name,
			"error", err)
		return map[string]any(settings.sentinel.Clone()), nil
	}

	return nil, err
}
