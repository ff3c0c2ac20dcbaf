// Package history provides persistent storage of rule evaluation outcomes
// for auditing and debugging rule behavior over time.
package history

import (
	"errors"
	"time"
)

// Record is one rule evaluation outcome.
type Record struct {
	// EvalID groups the records of one batch evaluation.
	EvalID string
	// Rule is the rule name.
	Rule string
	// Expression is the rule's condition source text.
	Expression string
	// Matched is the rule outcome. False when Err is non-empty.
	Matched bool
	// Err holds the evaluation error message, empty on success.
	Err string
	// EvaluatedAt is when the evaluation ran, in UTC.
	EvaluatedAt time.Time
	// Duration is how long the evaluation took.
	Duration time.Duration
}

// Store persists evaluation records.
// Implementations must be safe for concurrent use.
type Store interface {
	// Append stores a record. Records are never updated in place.
	Append(rec Record) error

	// List returns all records for a rule, oldest first.
	// Returns an empty slice (not an error) if the rule has no records.
	List(rule string) ([]Record, error)

	// ListEval returns all records for a batch evaluation, oldest first.
	// Returns an empty slice (not an error) if the evaluation is unknown.
	ListEval(evalID string) ([]Record, error)

	// Prune removes records evaluated before the cutoff and reports how
	// many were removed.
	Prune(before time.Time) (int, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for store operations.
var (
	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("history store closed")
)
