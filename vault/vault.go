// Package vault encrypts ledgers with a password.
//
// The key is derived from the password with scrypt and the ledger is sealed
// with AES-256-GCM. The sealed blob is laid out as:
//
//	magic(4) | log2(N)(1) | r(1) | p(1) | salt(16) | nonce(12) | ciphertext
//
// The header is authenticated along with the ciphertext, so the cost
// parameters cannot be tampered with.
package vault

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

// ErrAuthentication is returned when the password is wrong or the data is corrupted.
var ErrAuthentication = errors.New("wrong password or corrupted ledger")

var magic = []byte("acm\x01")

const (
	saltSize   = 16
	keySize    = 32
	headerSize = 4 + 3 + saltSize
)

// DefaultCost is log2 of the scrypt N parameter used by New.
const DefaultCost = 15

// MaxCost bounds log2(N). Key derivation needs 2^MaxCost KiB of memory with r=8.
const MaxCost = 20

// scrypt block size and parallelization parameters written by New.
const (
	blockSize   = 8
	parallelism = 1
)

// Vault is a password based cipher. Its zero value is not usable, use New.
type Vault struct {
	logN uint8
	r, p uint8
	rand io.Reader
}

// New returns a Vault deriving keys with scrypt N=2^logN, r=8, p=1.
func New(logN uint8) (*Vault, error) {
	if logN < 1 || logN > MaxCost {
		return nil, fmt.Errorf("invalid scrypt cost %d, want a value in [1, %d]", logN, MaxCost)
	}
	return &Vault{logN: logN, r: blockSize, p: parallelism, rand: rand.Reader}, nil
}

func (v *Vault) gcm(password string, header []byte) (cipher.AEAD, error) {
	logN, r, p := header[4], header[5], header[6]
	salt := header[7:headerSize]
	key, err := scrypt.Key([]byte(password), salt, 1<<logN, int(r), int(p), keySize)
	if err != nil {
		return nil, fmt.Errorf("cannot derive key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Encrypt seals plaintext with a key derived from password.
func (v *Vault) Encrypt(plaintext []byte, password string) ([]byte, error) {
	header := make([]byte, headerSize)
	copy(header, magic)
	header[4], header[5], header[6] = v.logN, v.r, v.p
	if _, err := io.ReadFull(v.rand, header[7:]); err != nil {
		return nil, fmt.Errorf("cannot draw salt: %w", err)
	}

	gcm, err := v.gcm(password, header)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(v.rand, nonce); err != nil {
		return nil, fmt.Errorf("cannot draw nonce: %w", err)
	}

	out := make([]byte, 0, headerSize+len(nonce)+len(plaintext)+gcm.Overhead())
	out = append(out, header...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plaintext, header), nil
}

// Decrypt opens data sealed by Encrypt. It fails with ErrAuthentication on a
// wrong password or corrupted data.
func (v *Vault) Decrypt(data []byte, password string) ([]byte, error) {
	if len(data) < headerSize || !bytes.Equal(data[:4], magic) {
		return nil, fmt.Errorf("%w: not a ledger", ErrAuthentication)
	}
	header := data[:headerSize]
	if logN := header[4]; logN < 1 || logN > MaxCost {
		return nil, fmt.Errorf("%w: invalid cost %d", ErrAuthentication, logN)
	}
	if r, p := header[5], header[6]; r != blockSize || p != parallelism {
		return nil, fmt.Errorf("%w: invalid scrypt parameters r=%d p=%d", ErrAuthentication, r, p)
	}

	gcm, err := v.gcm(password, header)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	rest := data[headerSize:]
	if len(rest) < gcm.NonceSize() {
		return nil, fmt.Errorf("%w: ledger too short", ErrAuthentication)
	}
	nonce, ciphertext := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, header)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}
