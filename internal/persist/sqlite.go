package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/beanmart/beanmart/pkg/domain"
)

// DefaultSQLiteName is the snapshot row name used when none is configured.
const DefaultSQLiteName = "default"

const sqliteSchema = `CREATE TABLE IF NOT EXISTS session_snapshot (
	name       TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteStore keeps the snapshot as one row of a local SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	name string
}

// OpenSQLiteStore opens (creating if needed) the database at path and
// ensures the snapshot table exists.
func OpenSQLiteStore(ctx context.Context, path, name string) (*SQLiteStore, error) {
	if name == "" {
		name = DefaultSQLiteName
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("persist.OpenSQLiteStore: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("persist.OpenSQLiteStore: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("persist.OpenSQLiteStore: create schema: %w", err)
	}
	return &SQLiteStore{db: db, name: name}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*domain.Session, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM session_snapshot WHERE name = ?`, s.name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("persist.SQLiteStore.Load: %w", err)
	}
	snap, err := decode([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("persist.SQLiteStore.Load: %w", err)
	}
	return snap, nil
}

func (s *SQLiteStore) Save(ctx context.Context, snap domain.Session) error {
	data, err := encode(snap)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO session_snapshot (name, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		s.name, string(data), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("persist.SQLiteStore.Save: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_snapshot WHERE name = ?`, s.name); err != nil {
		return fmt.Errorf("persist.SQLiteStore.Clear: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
