package rules

import (
	"log/slog"

	"github.com/randalmurphal/condeval/pkg/condeval"
	"github.com/randalmurphal/condeval/pkg/condeval/history"
	"github.com/randalmurphal/condeval/pkg/condeval/observability"
)

// Option configures a Set.
type Option func(*Set)

// WithLogger sets the structured logger for rule evaluation.
// A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Set) {
		s.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics collection. When the meter
// provider cannot supply instruments the set falls back to no-op metrics.
func WithMetrics(enabled bool) Option {
	return func(s *Set) {
		if enabled {
			s.metrics = observability.NewMetricsRecorder()
		} else {
			s.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry spans around batches and individual
// rule evaluations.
func WithTracing(enabled bool) Option {
	return func(s *Set) {
		if enabled {
			s.spans = observability.NewSpanManager()
		} else {
			s.spans = observability.NoopSpanManager{}
		}
	}
}

// WithHistory records every evaluation to store. Appends are best-effort
// and never fail an evaluation.
func WithHistory(store history.Store) Option {
	return func(s *Set) {
		s.store = store
	}
}

// WithEvaluator replaces the default expression evaluator, for callers
// that need custom length or depth limits.
func WithEvaluator(e *condeval.Evaluator) Option {
	return func(s *Set) {
		if e != nil {
			s.evaluator = e
		}
	}
}
