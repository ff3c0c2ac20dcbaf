package history

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// timeLayout is RFC 3339 with fixed-width nanoseconds so that stored
// timestamps sort chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore persists evaluation records to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite history store.
// The path should be a file path (e.g., "./history.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS evaluations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			eval_id TEXT NOT NULL,
			rule TEXT NOT NULL,
			expression TEXT NOT NULL,
			matched INTEGER NOT NULL,
			error TEXT NOT NULL,
			evaluated_at TEXT NOT NULL,
			duration_ns INTEGER NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_evaluations_rule
		ON evaluations(rule)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create rule index: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_evaluations_eval_id
		ON evaluations(eval_id)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create eval index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Append implements Store.
func (s *SQLiteStore) Append(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`
		INSERT INTO evaluations (eval_id, rule, expression, matched, error, evaluated_at, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.EvalID, rec.Rule, rec.Expression, boolToInt(rec.Matched), rec.Err,
		rec.EvaluatedAt.UTC().Format(timeLayout), rec.Duration.Nanoseconds())

	if err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

// List implements Store.
func (s *SQLiteStore) List(rule string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	return s.query(`
		SELECT eval_id, rule, expression, matched, error, evaluated_at, duration_ns
		FROM evaluations
		WHERE rule = ?
		ORDER BY id
	`, rule)
}

// ListEval implements Store.
func (s *SQLiteStore) ListEval(evalID string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	return s.query(`
		SELECT eval_id, rule, expression, matched, error, evaluated_at, duration_ns
		FROM evaluations
		WHERE eval_id = ?
		ORDER BY id
	`, evalID)
}

// query runs a record select and scans the rows. Callers hold the lock.
func (s *SQLiteStore) query(q string, arg any) ([]Record, error) {
	rows, err := s.db.Query(q, arg)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var rec Record
		var matched int
		var evaluatedAt string
		var durationNs int64
		if err := rows.Scan(&rec.EvalID, &rec.Rule, &rec.Expression, &matched, &rec.Err, &evaluatedAt, &durationNs); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Matched = matched != 0
		rec.EvaluatedAt, _ = time.Parse(timeLayout, evaluatedAt)
		rec.Duration = time.Duration(durationNs)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}

// Prune implements Store.
func (s *SQLiteStore) Prune(before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrStoreClosed
	}

	res, err := s.db.Exec(`
		DELETE FROM evaluations WHERE evaluated_at < ?
	`, before.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("prune records: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune rows affected: %w", err)
	}
	return int(n), nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
