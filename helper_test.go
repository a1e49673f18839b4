package accounts

import (
	"errors"
	"testing"

	"github.com/etnz/accounts/date"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
)

// D is a helper for test to create decimals from const.
func D(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// entityOpts compares entities field by field. Decimals must be written identically.
var entityOpts = []cmp.Option{
	cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) && a.Exponent() == b.Exponent() }),
	cmp.Comparer(func(a, b date.Date) bool { return a == b }),
	cmpopts.EquateEmpty(),
}

// plainCipher is a Cipher that only checks the password.
type plainCipher struct{}

var errWrongPassword = errors.New("wrong password")

func (plainCipher) Encrypt(plaintext []byte, password string) ([]byte, error) {
	return append([]byte(password+"\n"), plaintext...), nil
}

func (plainCipher) Decrypt(ciphertext []byte, password string) ([]byte, error) {
	prefix := password + "\n"
	if len(ciphertext) < len(prefix) || string(ciphertext[:len(prefix)]) != prefix {
		return nil, errWrongPassword
	}
	return ciphertext[len(prefix):], nil
}

// movements returns the movements of a as a slice.
func movements(a *Account) []Movement {
	var list []Movement
	for _, m := range a.Movements() {
		list = append(list, m)
	}
	return list
}

// assertSameLedger checks that two managers hold the same accounts and movements.
func assertSameLedger(t *testing.T, want, got *Manager) {
	t.Helper()
	if want.Len() != got.Len() {
		t.Fatalf("got %d accounts, want %d", got.Len(), want.Len())
	}
	for w := range want.Accounts() {
		g, ok := got.AccountByID(w.ID())
		if !ok {
			t.Errorf("account %q (%s) is missing", w.Name(), w.ID())
			continue
		}
		if g.Name() != w.Name() {
			t.Errorf("account %s: name = %q, want %q", w.ID(), g.Name(), w.Name())
		}
		if !g.Balance().Equal(w.Balance()) {
			t.Errorf("account %q: balance = %v, want %v", w.Name(), g.Balance(), w.Balance())
		}
		if g.LastMovementDate() != w.LastMovementDate() {
			t.Errorf("account %q: last movement = %v, want %v", w.Name(), g.LastMovementDate(), w.LastMovementDate())
		}
		if diff := cmp.Diff(movements(w), movements(g), entityOpts...); diff != "" {
			t.Errorf("account %q: movements mismatch (-want +got):\n%s", w.Name(), diff)
		}
	}
}
