package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records rule evaluation metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordRuleEvaluation records a single rule evaluation with its
	// outcome, duration, and error status.
	RecordRuleEvaluation(ctx context.Context, rule string, matched bool, duration time.Duration, err error)

	// RecordBatch records a batch evaluation completion.
	RecordBatch(ctx context.Context, ruleCount int, duration time.Duration)

	// RecordCompile records a rule compilation attempt.
	RecordCompile(ctx context.Context, rule string, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	ruleEvaluations metric.Int64Counter
	ruleLatency     metric.Float64Histogram
	ruleErrors      metric.Int64Counter
	batchRuns       metric.Int64Counter
	batchLatency    metric.Float64Histogram
	compileCount    metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("condeval")

	ruleEvaluations, err := meter.Int64Counter("condeval.rule.evaluations",
		metric.WithDescription("Number of rule evaluations"),
	)
	if err != nil {
		return nil, err
	}

	ruleLatency, err := meter.Float64Histogram("condeval.rule.latency_ms",
		metric.WithDescription("Rule evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	ruleErrors, err := meter.Int64Counter("condeval.rule.errors",
		metric.WithDescription("Number of rule evaluation errors"),
	)
	if err != nil {
		return nil, err
	}

	batchRuns, err := meter.Int64Counter("condeval.batch.runs",
		metric.WithDescription("Number of batch evaluations"),
	)
	if err != nil {
		return nil, err
	}

	batchLatency, err := meter.Float64Histogram("condeval.batch.latency_ms",
		metric.WithDescription("Batch evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	compileCount, err := meter.Int64Counter("condeval.compile.count",
		metric.WithDescription("Number of rule compilations"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		ruleEvaluations: ruleEvaluations,
		ruleLatency:     ruleLatency,
		ruleErrors:      ruleErrors,
		batchRuns:       batchRuns,
		batchLatency:    batchLatency,
		compileCount:    compileCount,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordRuleEvaluation records a rule evaluation.
func (m *otelMetrics) RecordRuleEvaluation(ctx context.Context, rule string, matched bool, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("rule", rule),
		attribute.Bool("matched", matched),
	}

	m.ruleEvaluations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.ruleLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.ruleErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("rule", rule)))
	}
}

// RecordBatch records a batch evaluation.
func (m *otelMetrics) RecordBatch(ctx context.Context, ruleCount int, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.Int("rules", ruleCount),
	}
	m.batchRuns.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.batchLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordCompile records a compilation attempt.
func (m *otelMetrics) RecordCompile(ctx context.Context, rule string, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("rule", rule),
		attribute.Bool("success", err == nil),
	}
	m.compileCount.Add(ctx, 1, metric.WithAttributes(attrs...))
}
