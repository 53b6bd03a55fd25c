package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/jsm-agent/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driven"
)

// Store is the SQLite-backed storage for session key-value state.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.jsm-agent/data/agent.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".jsm-agent", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "agent.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Session returns a driven.SessionStore scoped to the given session id.
func (s *Store) Session(id string) driven.SessionStore {
	return &sessionStore{store: s, sessionID: id}
}

// migrate applies any embedded migrations newer than the current schema
// version.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(data)); err != nil {
			return fmt.Errorf("applying migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// sessionStore scopes the shared database to one session id.
type sessionStore struct {
	store     *Store
	sessionID string
}

// Get retrieves a value by key.
func (s *sessionStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.store.db.QueryRowContext(ctx,
		"SELECT value FROM session_values WHERE session_id = ? AND key = ?",
		s.sessionID, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get session value: %w", err)
	}
	return value, true, nil
}

// Set stores a value under key.
func (s *sessionStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO session_values (session_id, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(session_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, s.sessionID, key, value)
	if err != nil {
		return fmt.Errorf("set session value: %w", err)
	}
	return nil
}

// Clear removes the value stored under key.
func (s *sessionStore) Clear(ctx context.Context, key string) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM session_values WHERE session_id = ? AND key = ?",
		s.sessionID, key,
	)
	if err != nil {
		return fmt.Errorf("clear session value: %w", err)
	}
	return nil
}
