// Package storage provides the SQLite session journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// MemoryDSN keeps the journal for the lifetime of the process only.
const MemoryDSN = ":memory:"

// Run outcomes.
const (
	OutcomeVictory = "victory"
	OutcomeDeath   = "death"
)

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// Run is one finished attempt at a level.
type Run struct {
	ID        int64
	SessionID string
	Mode      string
	Level     int // zero-based index in the pack
	Name      string
	Outcome   string
	Steps     int
	CreatedAt time.Time
}

// LevelSummary aggregates the runs of one level within a session.
type LevelSummary struct {
	Level     int
	Name      string
	Attempts  int
	Deaths    int
	BestSteps int // 0 when never solved
	Completed bool
}

// SessionInfo describes one recorded session.
type SessionInfo struct {
	SessionID string
	Mode      string
	Runs      int
	Solved    int
	Deaths    int
	LastPlay  time.Time
}

// NewSessionID returns a fresh random session id.
func NewSessionID() string {
	return uuid.NewString()
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// An empty path or ":memory:" opens a private in-memory journal.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		dbPath = MemoryDSN
	}
	memory := dbPath == MemoryDSN

	if !memory {
		// Expand ~ to home directory
		if dbPath[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
			}
			dbPath = filepath.Join(home, dbPath[1:])
		}

		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if memory {
		// Every new connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			mode TEXT NOT NULL DEFAULT '',
			level INTEGER NOT NULL,
			name TEXT NOT NULL,
			outcome TEXT NOT NULL,
			steps INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_session ON runs(session_id, level);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun appends a run to the journal and returns its id.
func (s *Store) RecordRun(r Run) (int64, error) {
	if r.SessionID == "" {
		return 0, fmt.Errorf("storage: run without session id")
	}
	result, err := s.db.Exec(
		"INSERT INTO runs (session_id, mode, level, name, outcome, steps) VALUES (?, ?, ?, ?, ?, ?)",
		r.SessionID, r.Mode, r.Level, r.Name, r.Outcome, r.Steps,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Runs returns every run of a session in insertion order.
func (s *Store) Runs(sessionID string) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, mode, level, name, outcome, steps, created_at
		 FROM runs
		 WHERE session_id = ?
		 ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Mode, &r.Level, &r.Name, &r.Outcome, &r.Steps, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Summary aggregates a session per level, ordered by level index.
func (s *Store) Summary(sessionID string) ([]LevelSummary, error) {
	rows, err := s.db.Query(
		`SELECT level,
		        MAX(name),
		        COUNT(*),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        COALESCE(MIN(CASE WHEN outcome = ? THEN steps END), 0),
		        MAX(CASE WHEN outcome = ? THEN 1 ELSE 0 END)
		 FROM runs
		 WHERE session_id = ?
		 GROUP BY level
		 ORDER BY level`,
		OutcomeDeath, OutcomeVictory, OutcomeVictory, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot summarise session: %w", err)
	}
	defer rows.Close()

	var out []LevelSummary
	for rows.Next() {
		var ls LevelSummary
		var completed int
		if err := rows.Scan(&ls.Level, &ls.Name, &ls.Attempts, &ls.Deaths, &ls.BestSteps, &completed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan summary row: %w", err)
		}
		ls.Completed = completed == 1
		out = append(out, ls)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// RecentSessions lists the latest sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]SessionInfo, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT session_id,
		        MAX(mode),
		        COUNT(*),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        MAX(created_at),
		        MAX(id) AS last_id
		 FROM runs
		 GROUP BY session_id
		 ORDER BY last_id DESC
		 LIMIT ?`,
		OutcomeVictory, OutcomeDeath, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionInfo
	for rows.Next() {
		var si SessionInfo
		var last any
		var lastID int64
		if err := rows.Scan(&si.SessionID, &si.Mode, &si.Runs, &si.Solved, &si.Deaths, &last, &lastID); err != nil {
			return nil, fmt.Errorf("storage: cannot scan session row: %w", err)
		}
		si.LastPlay = parseTime(last)
		out = append(out, si)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// ClearSession deletes all runs of a session.
func (s *Store) ClearSession(sessionID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE session_id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear session: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and the string form sqlite may return.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
