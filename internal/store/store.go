package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store is the local usage ledger. It records metadata about calls to the
// text-generation service; prompts and generated content are never written.
type Store struct {
	db *sql.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the schema if needed.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// UsageRepo returns a UsageRepo backed by this store.
func (s *Store) UsageRepo() UsageRepo {
	return &usageRepo{db: s.db}
}

const schema = `CREATE TABLE IF NOT EXISTS llm_requests (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id        TEXT    NOT NULL DEFAULT '',
	timestamp     INTEGER NOT NULL,
	provider      TEXT    NOT NULL,
	model         TEXT    NOT NULL,
	purpose       TEXT    NOT NULL,
	input_tokens  INTEGER NOT NULL DEFAULT 0,
	output_tokens INTEGER NOT NULL DEFAULT 0,
	latency_ms    INTEGER NOT NULL DEFAULT 0,
	success       INTEGER NOT NULL,
	error_message TEXT    NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS llm_requests_purpose ON llm_requests (purpose);
CREATE INDEX IF NOT EXISTS llm_requests_timestamp ON llm_requests (timestamp);
CREATE INDEX IF NOT EXISTS llm_requests_run_id ON llm_requests (run_id);`

func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create llm_requests: %w", err)
	}
	return nil
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the ledger file path in priority order:
// 1. EDUGEN_USAGE_DB environment variable
// 2. $XDG_DATA_HOME/edugen/usage.db
// 3. ~/.local/share/edugen/usage.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("EDUGEN_USAGE_DB"); p != "" {
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

	p := filepath.Join(dataHome, "edugen", "usage.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
