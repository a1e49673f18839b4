package accounts

import (
	"context"
	"fmt"
)

// Store reads and writes the encrypted ledger.
type Store interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte, overwrite bool) error
}

// LoadManager reads the ledger from s, decrypts it with c, and returns the decoded manager.
func LoadManager(ctx context.Context, s Store, c Cipher, password string, opts ...Option) (*Manager, error) {
	data, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	m := NewManager(opts...)
	if err := m.Load(c, password, data); err != nil {
		return nil, fmt.Errorf("cannot load ledger: %w", err)
	}
	return m, nil
}

// SaveManager encrypts m with c and writes it to s.
func SaveManager(ctx context.Context, s Store, m *Manager, c Cipher, password string, overwrite bool) error {
	data, err := m.Save(c, password)
	if err != nil {
		return fmt.Errorf("cannot save ledger: %w", err)
	}
	return s.Write(ctx, data, overwrite)
}
