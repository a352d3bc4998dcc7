// Package session persists per-shell-session settings, currently the provider
// chosen with toggle, in a small SQLite database.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/iishyfishyy/lazyshell/internal/provider"

	_ "modernc.org/sqlite"
)

// DefaultMaxAge is how long an untouched session is kept
const DefaultMaxAge = 7 * 24 * time.Hour

// Store is a persistent session store using SQLite
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
	now    func() time.Time
}

// GetStorePath returns the path to the session database
func GetStorePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".lazyshell", "sessions.db"), nil
}

// Open opens (creating if needed) the session database at dbPath
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{
		db:     db,
		dbPath: dbPath,
		now:    time.Now,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		provider TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Provider returns the provider selected for sessionID. ok is false when the
// session has never toggled.
func (s *Store) Provider(ctx context.Context, sessionID string) (id provider.ID, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err = s.db.QueryRowContext(ctx,
		"SELECT provider FROM sessions WHERE id = ?", sessionID).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read session: %w", err)
	}

	return provider.ID(value), true, nil
}

// SetProvider records the provider for sessionID
func (s *Store) SetProvider(ctx context.Context, sessionID string, id provider.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, provider, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET provider = excluded.provider, updated_at = excluded.updated_at
	`, sessionID, string(id), s.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}

	return nil
}

// Prune deletes sessions not updated within maxAge and returns how many were removed
func (s *Store) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxAge).Unix()
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE updated_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune sessions: %w", err)
	}

	return res.RowsAffected()
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
