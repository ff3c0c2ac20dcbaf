package rules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/randalmurphal/condeval/pkg/condeval"
	"github.com/randalmurphal/condeval/pkg/condeval/history"
	"github.com/randalmurphal/condeval/pkg/condeval/observability"
)

// Sentinel errors for rule management.
var (
	// ErrEmptyName indicates a rule with no name.
	ErrEmptyName = errors.New("rule name is required")

	// ErrEmptyExpression indicates a rule with no expression.
	ErrEmptyExpression = errors.New("rule expression is required")

	// ErrRuleExists indicates a duplicate rule name.
	ErrRuleExists = errors.New("rule already registered")

	// ErrRuleNotFound indicates an unknown rule name.
	ErrRuleNotFound = errors.New("rule not found")
)

// Rule is a named condition with its compiled expression.
type Rule struct {
	// ID is a generated unique identifier for the rule.
	ID string
	// Name is the caller-chosen rule name, unique within a Set.
	Name string
	// Expression is the condition source text.
	Expression string

	compiled *condeval.Compiled
}

// Vars returns the variable names the rule's expression references,
// sorted and deduplicated.
func (r *Rule) Vars() []string {
	return r.compiled.Vars()
}

// Outcome is the result of evaluating one rule.
type Outcome struct {
	// Rule is the rule name.
	Rule string
	// Value is the raw evaluation result, meaningful only when Err is nil.
	Value condeval.Value
	// Matched is the rule outcome: the Value coerced to a boolean.
	Matched bool
	// Err is the evaluation failure, if any. A failed rule does not abort
	// a batch; the caller decides whether a failure means "did not match"
	// or a configuration problem.
	Err error
	// Duration is how long the evaluation took.
	Duration time.Duration
}

// Set is a thread-safe collection of named rules.
// Create with NewSet and configure with Option functions.
type Set struct {
	mu    sync.RWMutex
	rules map[string]*Rule
	// order preserves registration order so batch results are stable.
	order []string

	evaluator *condeval.Evaluator
	logger    *slog.Logger
	metrics   observability.MetricsRecorder
	spans     observability.SpanManager
	store     history.Store
}

// NewSet creates a rule set with the given options.
func NewSet(opts ...Option) *Set {
	s := &Set{
		rules:     make(map[string]*Rule),
		evaluator: condeval.New(),
		metrics:   observability.NoopMetrics{},
		spans:     observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add compiles expression and registers it under name.
// Compilation failures surface immediately, so a Set never holds a rule
// that cannot evaluate.
func (s *Set) Add(name, expression string) (*Rule, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if expression == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyExpression, name)
	}

	compiled, err := s.evaluator.Compile(expression)
	s.metrics.RecordCompile(context.Background(), name, err)
	if err != nil {
		return nil, fmt.Errorf("compile rule %q: %w", name, err)
	}

	rule := &Rule{
		ID:         uuid.New().String(),
		Name:       name,
		Expression: expression,
		compiled:   compiled,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rules[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrRuleExists, name)
	}
	s.rules[name] = rule
	s.order = append(s.order, name)

	observability.LogCompile(s.logger, name, expression)
	return rule, nil
}

// Get returns the rule registered under name.
func (s *Set) Get(name string) (*Rule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rules[name]
	return r, ok
}

// Names returns the rule names in registration order.
func (s *Set) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Len returns the number of registered rules.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rules)
}

// Remove deletes the rule registered under name.
// Removing an unknown name is a no-op.
func (s *Set) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rules[name]; !ok {
		return
	}
	delete(s.rules, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Eval evaluates a single rule against env and returns whether it
// matched. The result is the expression value coerced to a boolean.
func (s *Set) Eval(ctx context.Context, name string, env condeval.Env) (bool, error) {
	s.mu.RLock()
	rule, ok := s.rules[name]
	s.mu.RUnlock()
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrRuleNotFound, name)
	}

	out := s.evalRule(ctx, uuid.New().String(), rule, env)
	return out.Matched, out.Err
}

// EvalAll evaluates every rule against env, in registration order, and
// returns one Outcome per rule. Individual rule failures are captured in
// their Outcome and do not abort the batch.
func (s *Set) EvalAll(ctx context.Context, env condeval.Env) []Outcome {
	s.mu.RLock()
	rules := make([]*Rule, 0, len(s.order))
	for _, name := range s.order {
		rules = append(rules, s.rules[name])
	}
	s.mu.RUnlock()

	evalID := uuid.New().String()
	logger := s.logger

	ctx, batchSpan := s.spans.StartBatchSpan(ctx, evalID, len(rules))
	observability.LogBatchStart(logger, evalID, len(rules))
	done := observability.TimedOperation()
	start := time.Now()

	outcomes := make([]Outcome, 0, len(rules))
	matched, failed := 0, 0
	for _, rule := range rules {
		out := s.evalRule(ctx, evalID, rule, env)
		if out.Err != nil {
			failed++
		} else if out.Matched {
			matched++
		}
		outcomes = append(outcomes, out)
	}

	s.metrics.RecordBatch(ctx, len(rules), time.Since(start))
	observability.LogBatchComplete(logger, evalID, done(), matched, failed)
	s.spans.EndSpanWithError(batchSpan, nil)
	return outcomes
}

// evalRule runs one rule with full instrumentation.
func (s *Set) evalRule(ctx context.Context, evalID string, rule *Rule, env condeval.Env) Outcome {
	logger := observability.EnrichLogger(s.logger, evalID, rule.Name)

	ctx, span := s.spans.StartRuleSpan(ctx, rule.Name)
	done := observability.TimedOperation()
	start := time.Now()

	value, err := rule.compiled.Run(env)
	duration := time.Since(start)

	out := Outcome{
		Rule:     rule.Name,
		Value:    value,
		Err:      err,
		Duration: duration,
	}
	if err == nil {
		out.Matched = value.Truthy()
	}

	s.metrics.RecordRuleEvaluation(ctx, rule.Name, out.Matched, duration, err)
	if err != nil {
		observability.LogRuleError(logger, rule.Name, err)
	} else {
		observability.LogRuleEval(logger, rule.Name, out.Matched, done())
	}
	s.spans.EndSpanWithError(span, err)

	if s.store != nil {
		rec := history.Record{
			EvalID:      evalID,
			Rule:        rule.Name,
			Expression:  rule.Expression,
			Matched:     out.Matched,
			EvaluatedAt: start.UTC(),
			Duration:    duration,
		}
		if err != nil {
			rec.Err = err.Error()
		}
		// History is best-effort; an append failure must not change the
		// evaluation outcome.
		if appendErr := s.store.Append(rec); appendErr != nil {
			observability.LogHistoryError(logger, rule.Name, appendErr)
		}
	}

	return out
}
