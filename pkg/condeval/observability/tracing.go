package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the condeval tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("condeval")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartBatchSpan starts a span for an entire batch evaluation.
	// Returns the context with span and the span itself.
	StartBatchSpan(ctx context.Context, evalID string, ruleCount int) (context.Context, trace.Span)

	// StartRuleSpan starts a span for a single rule evaluation.
	// The rule span should be a child of the batch span.
	StartRuleSpan(ctx context.Context, rule string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartBatchSpan starts a span for an entire batch evaluation.
func (m *otelSpanManager) StartBatchSpan(ctx context.Context, evalID string, ruleCount int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "condeval.batch",
		trace.WithAttributes(
			attribute.String("eval.id", evalID),
			attribute.Int("eval.rules", ruleCount),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartRuleSpan starts a span for a single rule evaluation.
func (m *otelSpanManager) StartRuleSpan(ctx context.Context, rule string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "condeval.rule."+rule,
		trace.WithAttributes(
			attribute.String("rule", rule),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// Convenience functions that operate on the global tracer.
// These are useful for simple cases where you don't need the interface.

// StartBatchSpan starts a span for an entire batch evaluation.
// Uses the global OTel tracer.
func StartBatchSpan(ctx context.Context, evalID string, ruleCount int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "condeval.batch",
		trace.WithAttributes(
			attribute.String("eval.id", evalID),
			attribute.Int("eval.rules", ruleCount),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartRuleSpan starts a span for a single rule evaluation.
// Uses the global OTel tracer.
func StartRuleSpan(ctx context.Context, rule string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "condeval.rule."+rule,
		trace.WithAttributes(
			attribute.String("rule", rule),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
