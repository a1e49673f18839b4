package accounts

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// This file contains the framing of a whole manager into a single text.
//
// The text starts with a separator of 8 hex characters, drawn at random for
// each save. Each account is then written as the separator followed by its
// account record and the records of its movements, in order:
//
//	<sep>account:...;expense:...;income:...;<sep>account:...;
//
// The text is what the Cipher encrypts.

// separatorSize is the number of random bytes of a separator.
const separatorSize = 4

// maxSeparatorDraws bounds the attempts to find a separator that does not occur in the ledger.
const maxSeparatorDraws = 32

// Cipher encrypts and decrypts the framed ledger with a password.
type Cipher interface {
	Encrypt(plaintext []byte, password string) ([]byte, error)
	Decrypt(ciphertext []byte, password string) ([]byte, error)
}

func randomSeparator() (string, error) {
	b := make([]byte, separatorSize)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// encodeChunk returns the records of an account and its movements.
func (m *Manager) encodeChunk(a *Account) (string, error) {
	var b strings.Builder
	rec, err := m.codec.Encode(a)
	if err != nil {
		return "", fmt.Errorf("account %q: %w", a.Name(), err)
	}
	b.WriteString(rec)
	for i, mv := range a.Movements() {
		rec, err := m.codec.Encode(mv)
		if err != nil {
			return "", fmt.Errorf("account %q: movement #%d: %w", a.Name(), i, err)
		}
		b.WriteString(rec)
	}
	return b.String(), nil
}

// MarshalText frames all accounts and their movements into a single text.
func (m *Manager) MarshalText() ([]byte, error) {
	chunks := make([]string, 0, m.Len())
	for a := range m.Accounts() {
		chunk, err := m.encodeChunk(a)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}

	for range maxSeparatorDraws {
		sep, err := m.separator()
		if err != nil {
			return nil, fmt.Errorf("%w: cannot draw a separator: %v", ErrSeparator, err)
		}
		if len(sep) != 2*separatorSize {
			return nil, fmt.Errorf("%w: separator %q must have %d characters", ErrSeparator, sep, 2*separatorSize)
		}
		var b strings.Builder
		for _, chunk := range chunks {
			b.WriteString(sep)
			b.WriteString(chunk)
		}
		text := b.String()
		if len(chunks) == 0 {
			text = sep
		}
		// the separator must split the text back into the very same chunks.
		if !framesExactly(text[len(sep):], sep, chunks) {
			continue
		}
		m.log.Info().Str("separator", sep).Int("accounts", len(chunks)).Msg("ledger encoded")
		return []byte(text), nil
	}
	return nil, fmt.Errorf("%w: every separator drawn occurs in the ledger", ErrSeparator)
}

func framesExactly(body, sep string, chunks []string) bool {
	if len(chunks) == 0 {
		return body == ""
	}
	got := strings.Split(body, sep)
	if len(got) != len(chunks) {
		return false
	}
	for i := range got {
		if got[i] != chunks[i] {
			return false
		}
	}
	return true
}

// UnmarshalText replaces the accounts of m by the ones framed in text.
//
// On error m is left unchanged.
func (m *Manager) UnmarshalText(text []byte) error {
	if len(text) < 2*separatorSize {
		return fmt.Errorf("%w: ledger is shorter than its separator", ErrSeparator)
	}
	sep := string(text[:2*separatorSize])
	body := string(text[2*separatorSize:])

	fresh := NewManager(WithCodec(m.codec))
	movements := 0
	if body != "" {
		for i, chunk := range strings.Split(body, sep) {
			n, err := fresh.replayChunk(chunk)
			if err != nil {
				return fmt.Errorf("account #%d: %w", i, err)
			}
			movements += n
		}
	}

	m.accounts, m.names, m.order = fresh.accounts, fresh.names, fresh.order
	m.log.Info().Str("separator", sep).Int("accounts", m.Len()).Int("movements", movements).Msg("ledger decoded")
	return nil
}

// replayChunk registers the account of a chunk and replays its movements.
// It returns the number of movements.
func (m *Manager) replayChunk(chunk string) (int, error) {
	records, err := m.codec.Parse(chunk)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 || records[0].Kind != EntityAccount {
		return 0, fmt.Errorf("%w: chunk must start with an account record", ErrUnexpectedRecord)
	}
	a, err := decodeAccount(records[0])
	if err != nil {
		return 0, err
	}
	if _, err := m.AddAccount(a); err != nil {
		return 0, err
	}

	for i, rec := range records[1:] {
		var mv Movement
		switch rec.Kind {
		case EntityExpense:
			mv, err = decodeExpense(rec)
		case EntityIncome:
			mv, err = decodeIncome(rec)
		default:
			err = fmt.Errorf("%w: %q", ErrUnsupportedMoveType, rec.Kind)
		}
		if err != nil {
			return 0, fmt.Errorf("account %q: movement #%d: %w", a.Name(), i, err)
		}
		if err := a.apply(mv); err != nil {
			return 0, fmt.Errorf("account %q: movement #%d: %w", a.Name(), i, err)
		}
	}
	return len(records) - 1, nil
}

// Save frames the manager and encrypts it with password.
func (m *Manager) Save(c Cipher, password string) ([]byte, error) {
	text, err := m.MarshalText()
	if err != nil {
		return nil, err
	}
	return c.Encrypt(text, password)
}

// Load decrypts data with password and replaces the accounts of m by the decoded ones.
//
// On error m is left unchanged.
func (m *Manager) Load(c Cipher, password string, data []byte) error {
	text, err := c.Decrypt(data, password)
	if err != nil {
		return err
	}
	return m.UnmarshalText(text)
}
