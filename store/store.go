// Package store persists encrypted ledgers, in a file or in a SQLite database.
package store

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"strings"
)

var (
	// ErrNotFound is returned when reading a ledger that was never written.
	ErrNotFound = fmt.Errorf("ledger not found: %w", fs.ErrNotExist)
	// ErrAlreadyExists is returned when writing over an existing ledger without overwrite.
	ErrAlreadyExists = fmt.Errorf("ledger already exists: %w", fs.ErrExist)
)

// Store reads and writes a single ledger blob.
type Store interface {
	// Read returns the blob, or ErrNotFound.
	Read(ctx context.Context) ([]byte, error)
	// Write saves the blob. Unless overwrite is set, it fails with ErrAlreadyExists if there is one already.
	Write(ctx context.Context, data []byte, overwrite bool) error
	io.Closer
}

const sqliteScheme = "sqlite://"

// Open returns the store described by uri.
//
// "sqlite://<path>[#<name>]" is the ledger called name (default "default")
// in the SQLite database at path. Anything else is a file path, see NewFile.
func Open(ctx context.Context, uri string) (Store, error) {
	if rest, ok := strings.CutPrefix(uri, sqliteScheme); ok {
		path, name, _ := strings.Cut(rest, "#")
		if path == "" {
			return nil, fmt.Errorf("invalid store %q: missing database path", uri)
		}
		if name == "" {
			name = "default"
		}
		return OpenSQLite(ctx, path, name)
	}
	return NewFile(uri)
}
