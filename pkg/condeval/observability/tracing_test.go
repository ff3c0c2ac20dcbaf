package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest creates a test tracer provider with an in-memory span recorder.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	// Update the package-level tracer
	tracer = otel.Tracer("condeval")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}

	return exporter, cleanup
}

func TestStartBatchSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	t.Run("creates span with correct name and attributes", func(t *testing.T) {
		ctx := context.Background()
		_, span := StartBatchSpan(ctx, "eval-123", 7)
		require.NotNil(t, span)

		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		s := spans[0]
		assert.Equal(t, "condeval.batch", s.Name)

		var evalID string
		var ruleCount int64
		for _, attr := range s.Attributes {
			switch attr.Key {
			case "eval.id":
				evalID = attr.Value.AsString()
			case "eval.rules":
				ruleCount = attr.Value.AsInt64()
			}
		}
		assert.Equal(t, "eval-123", evalID)
		assert.Equal(t, int64(7), ruleCount)
	})

	t.Run("rule spans nest under the batch span", func(t *testing.T) {
		exporter.Reset()

		ctx := context.Background()
		ctx, batchSpan := StartBatchSpan(ctx, "eval-456", 1)
		_, ruleSpan := StartRuleSpan(ctx, "high-temp")

		ruleSpan.End()
		batchSpan.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 2)

		// The exporter records spans in end order.
		assert.Equal(t, "condeval.rule.high-temp", spans[0].Name)
		assert.Equal(t, "condeval.batch", spans[1].Name)
		assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
	})
}

func TestStartRuleSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	ctx := context.Background()
	_, span := StartRuleSpan(ctx, "comfortable")
	require.NotNil(t, span)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "condeval.rule.comfortable", spans[0].Name)

	var rule string
	for _, attr := range spans[0].Attributes {
		if attr.Key == "rule" {
			rule = attr.Value.AsString()
		}
	}
	assert.Equal(t, "comfortable", rule)
}

func TestEndSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	t.Run("sets ok status on success", func(t *testing.T) {
		exporter.Reset()

		_, span := StartRuleSpan(context.Background(), "ok-rule")
		EndSpanWithError(span, nil)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Ok, spans[0].Status.Code)
	})

	t.Run("records error and sets error status", func(t *testing.T) {
		exporter.Reset()

		_, span := StartRuleSpan(context.Background(), "bad-rule")
		EndSpanWithError(span, errors.New("undefined variable"))

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
		assert.Equal(t, "undefined variable", spans[0].Status.Description)
		require.NotEmpty(t, spans[0].Events)
		assert.Equal(t, "exception", spans[0].Events[0].Name)
	})

	t.Run("nil span is a no-op", func(t *testing.T) {
		EndSpanWithError(nil, errors.New("ignored"))
	})
}

func TestAddSpanEvent(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	t.Run("adds event to active span", func(t *testing.T) {
		exporter.Reset()

		ctx, span := StartRuleSpan(context.Background(), "evented")
		AddSpanEvent(ctx, "cache.hit", attribute.String("key", "evented"))
		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		require.Len(t, spans[0].Events, 1)
		assert.Equal(t, "cache.hit", spans[0].Events[0].Name)
	})

	t.Run("no-op without active span", func(t *testing.T) {
		exporter.Reset()

		AddSpanEvent(context.Background(), "ignored")
		assert.Empty(t, exporter.GetSpans())
	})
}

func TestSpanManager(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	mgr := NewSpanManager()

	ctx, batchSpan := mgr.StartBatchSpan(context.Background(), "eval-1", 2)
	_, ruleSpan := mgr.StartRuleSpan(ctx, "r1")
	mgr.EndSpanWithError(ruleSpan, nil)
	mgr.EndSpanWithError(batchSpan, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "condeval.rule.r1", spans[0].Name)
	assert.Equal(t, "condeval.batch", spans[1].Name)
}
