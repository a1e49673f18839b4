package vault

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

// testCost keeps key derivation fast in tests.
const testCost = 4

func TestRoundTrip(t *testing.T) {
	v, err := New(testCost)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	plaintext := []byte("0a1b2c3daccount:id<str>=42:name<str>=Checking;")

	sealed, err := v.Encrypt(plaintext, "secret")
	if err != nil {
		t.Fatalf("Encrypt() unexpected error: %v", err)
	}
	if bytes.Contains(sealed, []byte("Checking")) {
		t.Errorf("Encrypt() leaks the plaintext")
	}

	got, err := v.Decrypt(sealed, "secret")
	if err != nil {
		t.Fatalf("Decrypt() unexpected error: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("Decrypt() = %q, want %q", got, plaintext)
	}
}

func TestDecrypt_CostFromHeader(t *testing.T) {
	low, _ := New(testCost)
	other, _ := New(testCost + 1)

	sealed, err := low.Encrypt([]byte("ledger"), "pw")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.Decrypt(sealed, "pw"); err != nil {
		t.Errorf("Decrypt() with another configured cost failed: %v", err)
	}
}

func TestDecrypt_Errors(t *testing.T) {
	v, _ := New(testCost)
	sealed, err := v.Encrypt([]byte("ledger"), "pw")
	if err != nil {
		t.Fatal(err)
	}

	tampered := bytes.Clone(sealed)
	tampered[len(tampered)-1] ^= 0xff

	costChanged := bytes.Clone(sealed)
	costChanged[4]++

	tests := []struct {
		name     string
		data     []byte
		password string
	}{
		{"wrong password", sealed, "wrong"},
		{"tampered ciphertext", tampered, "pw"},
		{"tampered header", costChanged, "pw"},
		{"not a ledger", []byte("plain text"), "pw"},
		{"empty", nil, "pw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := v.Decrypt(tt.data, tt.password); !errors.Is(err, ErrAuthentication) {
				t.Errorf("Decrypt() error = %v, want %v", err, ErrAuthentication)
			}
		})
	}
}

func TestDecrypt_CorruptedHeader(t *testing.T) {
	v, _ := New(testCost)
	sealed, err := v.Encrypt([]byte("ledger"), "pw")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		index int
		value byte
	}{
		{"no parallelism", 6, 0},
		{"high parallelism", 6, 0xff},
		{"no block size", 5, 0},
		{"huge block size", 5, 0xff},
		{"zero cost", 4, 0},
		{"cost above max", 4, MaxCost + 1},
	}
	for i := range headerSize {
		tests = append(tests, struct {
			name  string
			index int
			value byte
		}{fmt.Sprintf("byte %d flipped", i), i, sealed[i] ^ 0xff})
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := bytes.Clone(sealed)
			data[tt.index] = tt.value
			if _, err := v.Decrypt(data, "pw"); !errors.Is(err, ErrAuthentication) {
				t.Errorf("Decrypt() error = %v, want %v", err, ErrAuthentication)
			}
		})
	}
}

func TestNew_InvalidCost(t *testing.T) {
	for _, cost := range []uint8{0, MaxCost + 1, 31} {
		if _, err := New(cost); err == nil {
			t.Errorf("New(%d) accepted an invalid cost", cost)
		}
	}
}
