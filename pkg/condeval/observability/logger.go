// Package observability provides production-grade observability features
// for condeval rule evaluation: structured logging, metrics, and
// distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
// The core condeval package performs no logging; instrumentation lives
// at the rules layer that calls it.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds evaluation context to a logger.
// Returns a new logger with eval_id and rule fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "eval-123", "high_value")
//	enriched.Info("evaluating") // includes eval_id, rule
func EnrichLogger(logger *slog.Logger, evalID, rule string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("eval_id", evalID),
		slog.String("rule", rule),
	)
}

// LogBatchStart logs the start of a batch evaluation.
func LogBatchStart(logger *slog.Logger, evalID string, ruleCount int) {
	if logger == nil {
		return
	}
	logger.Info("batch evaluation starting",
		slog.String("eval_id", evalID),
		slog.Int("rules", ruleCount),
	)
}

// LogBatchComplete logs batch evaluation completion.
func LogBatchComplete(logger *slog.Logger, evalID string, durationMs float64, matched, failed int) {
	if logger == nil {
		return
	}
	logger.Info("batch evaluation completed",
		slog.String("eval_id", evalID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("matched", matched),
		slog.Int("failed", failed),
	)
}

// LogRuleEval logs a single rule evaluation outcome.
func LogRuleEval(logger *slog.Logger, rule string, matched bool, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("rule evaluated",
		slog.String("rule", rule),
		slog.Bool("matched", matched),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogRuleError logs a rule evaluation failure.
func LogRuleError(logger *slog.Logger, rule string, err error) {
	if logger == nil {
		return
	}
	logger.Error("rule evaluation failed",
		slog.String("rule", rule),
		slog.String("error", err.Error()),
	)
}

// LogCompile logs a rule compilation.
func LogCompile(logger *slog.Logger, rule, expression string) {
	if logger == nil {
		return
	}
	logger.Debug("rule compiled",
		slog.String("rule", rule),
		slog.String("expression", expression),
	)
}

// LogHistoryError logs a history append failure (non-fatal).
func LogHistoryError(logger *slog.Logger, rule string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("history append failed",
		slog.String("rule", rule),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
