/*
Package rules manages named condition rules compiled once and evaluated
many times.

# Overview

A Set holds rules by name, each backed by a compiled condeval expression.
Rules are compiled when added, so malformed or unsafe expressions are
rejected up front, and each evaluation is a plain AST walk against the
supplied environment. The typical pattern is one Set per rule
configuration and one EvalAll per record in a batch.

# Basic Usage

	set := rules.NewSet()
	if _, err := set.Add("high_value", "amount > 1000"); err != nil {
	    log.Fatal(err)
	}
	if _, err := set.Add("flagged", "risk >= 3 || manual_review"); err != nil {
	    log.Fatal(err)
	}

	env, _ := condeval.NewEnv(map[string]any{
	    "amount": 1500, "risk": 1, "manual_review": false,
	})
	matched, err := set.Eval(ctx, "high_value", env)

# Batch Evaluation

EvalAll evaluates every rule against one environment and reports
per-rule outcomes. A failing rule (typically an undefined variable) does
not abort the batch; its Outcome carries the error and the caller
decides whether that means "condition did not match" or a configuration
problem:

	for _, out := range set.EvalAll(ctx, env) {
	    if out.Err != nil {
	        log.Printf("rule %s failed: %v", out.Rule, out.Err)
	        continue
	    }
	    if out.Matched {
	        trigger(out.Rule)
	    }
	}

# Loading From Files

Rule definitions load from YAML or JSON:

	rules:
	  - name: high_value
	    expression: "amount > 1000"
	  - name: flagged
	    expression: "risk >= 3 || manual_review"

	set, err := rules.LoadFile("rules.yaml")

# Observability

Logging, metrics, tracing, and audit history are opt-in:

	store, _ := history.NewSQLiteStore("./history.db")
	set := rules.NewSet(
	    rules.WithLogger(slog.Default()),
	    rules.WithMetrics(true),
	    rules.WithTracing(true),
	    rules.WithHistory(store),
	)

Each EvalAll batch gets a UUID evaluation ID that appears in logs,
spans, and history records.

# Thread Safety

A Set is safe for concurrent use: rule registration takes a write lock,
evaluation a read lock, and compiled expressions are immutable.
*/
package rules
