package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS ledgers (
	name     TEXT PRIMARY KEY,
	data     BLOB NOT NULL,
	saved_at TIMESTAMP NOT NULL
)`

// SQLite stores named ledgers in a SQLite database.
type SQLite struct {
	db   *sql.DB
	name string
}

// OpenSQLite opens (or creates) the database at path, for the ledger called name.
func OpenSQLite(ctx context.Context, path, name string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create ledgers table: %w", err)
	}
	return &SQLite{db: db, name: name}, nil
}

func (s *SQLite) Read(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM ledgers WHERE name = ?`, s.name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, s.name)
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger %q: %w", s.name, err)
	}
	return data, nil
}

func (s *SQLite) Write(ctx context.Context, data []byte, overwrite bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM ledgers WHERE name = ?)`, s.name).Scan(&exists); err != nil {
		return fmt.Errorf("look up ledger %q: %w", s.name, err)
	}
	if exists && !overwrite {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, s.name)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO ledgers (name, data, saved_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at`,
		s.name, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write ledger %q: %w", s.name, err)
	}
	return tx.Commit()
}

func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
