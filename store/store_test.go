package store

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
)

// testStores returns one store of each kind, in a temporary directory.
func testStores(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	file, err := Open(ctx, filepath.Join(dir, "ledger.mgr"))
	if err != nil {
		t.Fatalf("Open(file) unexpected error: %v", err)
	}
	db, err := Open(ctx, "sqlite://"+filepath.Join(dir, "ledgers.db")+"#home")
	if err != nil {
		t.Fatalf("Open(sqlite) unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return map[string]Store{"file": file, "sqlite": db}
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Read(ctx); !errors.Is(err, ErrNotFound) || !errors.Is(err, fs.ErrNotExist) {
				t.Fatalf("Read() on empty store error = %v, want %v", err, ErrNotFound)
			}

			if err := s.Write(ctx, []byte("first"), false); err != nil {
				t.Fatalf("Write() unexpected error: %v", err)
			}
			if err := s.Write(ctx, []byte("second"), false); !errors.Is(err, ErrAlreadyExists) {
				t.Fatalf("Write() without overwrite error = %v, want %v", err, ErrAlreadyExists)
			}
			got, err := s.Read(ctx)
			if err != nil {
				t.Fatalf("Read() unexpected error: %v", err)
			}
			if !bytes.Equal(got, []byte("first")) {
				t.Errorf("Read() = %q, want %q", got, "first")
			}

			if err := s.Write(ctx, []byte("second"), true); err != nil {
				t.Fatalf("Write() with overwrite unexpected error: %v", err)
			}
			got, err = s.Read(ctx)
			if err != nil {
				t.Fatalf("Read() unexpected error: %v", err)
			}
			if !bytes.Equal(got, []byte("second")) {
				t.Errorf("Read() = %q, want %q", got, "second")
			}
		})
	}
}

func TestNewFile_Path(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		path string
		want string
	}{
		{filepath.Join(dir, "home.mgr"), filepath.Join(dir, "home.mgr")},
		{filepath.Join(dir, "HOME.MGR"), filepath.Join(dir, "HOME.MGR")},
		{dir, filepath.Join(dir, DefaultFilename)},
	}
	for _, tt := range tests {
		f, err := NewFile(tt.path)
		if err != nil {
			t.Fatalf("NewFile(%q) unexpected error: %v", tt.path, err)
		}
		if f.Path() != tt.want {
			t.Errorf("NewFile(%q).Path() = %q, want %q", tt.path, f.Path(), tt.want)
		}
	}
}

func TestOpen_InvalidSQLite(t *testing.T) {
	if _, err := Open(context.Background(), "sqlite://"); err == nil {
		t.Errorf("Open() accepted a sqlite uri without path")
	}
}
