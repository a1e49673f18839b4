package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Extension is the extension of ledger files.
const Extension = ".mgr"

// DefaultFilename is the ledger file name used when a directory is given.
const DefaultFilename = "my_accounts" + Extension

// File stores a ledger in a file.
type File struct {
	path string
}

// NewFile returns the store for the file at path. A path not ending in
// ".mgr" is a directory, where the ledger is "my_accounts.mgr".
func NewFile(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid ledger path %q: %w", path, err)
	}
	if !strings.HasSuffix(strings.ToLower(abs), Extension) {
		abs = filepath.Join(abs, DefaultFilename)
	}
	return &File{path: abs}, nil
}

// Path returns the absolute path of the ledger file.
func (f *File) Path() string { return f.path }

func (f *File) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, f.path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read ledger %q: %w", f.path, err)
	}
	return data, nil
}

// Write writes data to a temporary file renamed over the ledger file, so that
// a failed write never leaves a truncated ledger.
func (f *File) Write(_ context.Context, data []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(f.path); err == nil {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, f.path)
		}
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("cannot create directory for ledger %q: %w", f.path, err)
	}

	tmp, err := os.CreateTemp(dir, ".*"+Extension)
	if err != nil {
		return fmt.Errorf("cannot write ledger %q: %w", f.path, err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write ledger %q: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot write ledger %q: %w", f.path, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("cannot write ledger %q: %w", f.path, err)
	}
	return nil
}

// Close does nothing, files are opened and closed by each call.
func (f *File) Close() error { return nil }
