package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the database handle and provides access to repositories.
type Store struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at dsn, applies recommended pragmas
// and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite allows one writer; serialize access through a single conn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying handle for raw queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Exercises returns the exercise repository backed by this store.
func (s *Store) Exercises() *ExerciseRepo {
	return &ExerciseRepo{db: s.db}
}

// Feedback returns the feedback repository backed by this store.
func (s *Store) Feedback() *FeedbackRepo {
	return &FeedbackRepo{db: s.db}
}

// Progress returns the learner-progress repository backed by this store.
func (s *Store) Progress() *ProgressRepo {
	return &ProgressRepo{db: s.db}
}

// Events returns the LLM event repository backed by this store.
func (s *Store) Events() EventRepo {
	return &eventRepo{db: s.db}
}

// applyPragmas configures SQLite for single-binary use.
func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// initSchema creates the tables this engine depends on: the exercise cache,
// feedback, learner progress and the LLM event log.
func initSchema(db *sqlx.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS exercises (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			passage_language TEXT NOT NULL,
			question_language TEXT NOT NULL,
			level TEXT NOT NULL,
			content TEXT NOT NULL,
			owner_id TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exercises_lookup
			ON exercises (passage_language, question_language, level, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS feedback (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			exercise_id INTEGER NOT NULL REFERENCES exercises (id),
			learner_id TEXT NOT NULL,
			is_good BOOLEAN NOT NULL,
			chosen_key TEXT,
			was_correct BOOLEAN NOT NULL DEFAULT false,
			submitted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (exercise_id, learner_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_learner ON feedback (learner_id)`,
		`CREATE TABLE IF NOT EXISTS learner_progress (
			learner_id TEXT NOT NULL,
			language TEXT NOT NULL,
			level TEXT NOT NULL DEFAULT 'A1',
			streak INTEGER NOT NULL DEFAULT 0,
			last_practiced TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (learner_id, language)
		)`,
		`CREATE TABLE IF NOT EXISTS llm_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			purpose TEXT NOT NULL,
			input_tokens INTEGER NOT NULL DEFAULT 0,
			output_tokens INTEGER NOT NULL DEFAULT 0,
			latency_ms INTEGER NOT NULL DEFAULT 0,
			success BOOLEAN NOT NULL,
			error_message TEXT NOT NULL DEFAULT '',
			request_body TEXT NOT NULL DEFAULT '',
			response_body TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. COMPREHENDO_DB environment variable
// 2. $XDG_DATA_HOME/comprehendo/comprehendo.db
// 3. ~/.local/share/comprehendo/comprehendo.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("COMPREHENDO_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "comprehendo", "comprehendo.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
