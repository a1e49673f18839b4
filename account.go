package accounts

import (
	"fmt"
	"iter"

	"github.com/etnz/accounts/date"
	"github.com/shopspring/decimal"
)

// Account keeps track of the movements of a checking, savings or credit card
// account, and of the balance they result in.
//
// Every Account owns its balance and its movement log: movements are only
// appended through ApplyExpense and ApplyIncome.
type Account struct {
	id           string
	name         string
	balance      decimal.Decimal // in reference currency
	lastMovement date.Date
	movements    []Movement
}

// NewAccount creates an empty account with a fresh id.
func NewAccount(name string) *Account {
	return newAccount(newID(), name)
}

func newAccount(id, name string) *Account {
	return &Account{
		id:        id,
		name:      name,
		balance:   decimal.Zero,
		movements: make([]Movement, 0),
	}
}

func (a *Account) Kind() EntityKind            { return EntityAccount }
func (a *Account) Identity() string            { return a.id }
func (a *Account) ID() string                  { return a.id }
func (a *Account) Name() string                { return a.name }
func (a *Account) Balance() decimal.Decimal    { return a.balance }
func (a *Account) LastMovementDate() date.Date { return a.lastMovement }
func (a *Account) Len() int                    { return len(a.movements) }

// Movements returns an iterator over the movements in the order they were applied.
func (a *Account) Movements() iter.Seq2[int, Movement] {
	return func(yield func(int, Movement) bool) {
		for i, m := range a.movements {
			if e, ok := m.(Expense); ok {
				m = e.clone()
			}
			if !yield(i, m) {
				return
			}
		}
	}
}

// ApplyExpense appends e to the account and subtracts its amount in reference currency from the balance.
//
// It returns the Income that mirrors the expense, to be credited to the
// destination account of a transfer.
func (a *Account) ApplyExpense(e Expense) Income {
	e = e.clone()
	a.movements = append(a.movements, e)

	amount := e.Reference()
	a.balance = a.balance.Sub(amount)
	a.lastMovement = a.lastMovement.Max(e.Date)

	return Income{
		ID:           newID(),
		Source:       a.name,
		Amount:       amount,
		Currency:     ReferenceCurrency,
		TypeOfChange: decimal.NewFromInt(1),
		Date:         e.Date,
	}
}

// ApplyIncome appends i to the account and adds its amount in reference currency to the balance.
func (a *Account) ApplyIncome(i Income) {
	a.movements = append(a.movements, i)
	a.balance = a.balance.Add(i.Reference())
	a.lastMovement = a.lastMovement.Max(i.Date)
}

// apply routes a replayed movement.
func (a *Account) apply(m Movement) error {
	switch v := m.(type) {
	case Expense:
		a.ApplyExpense(v)
	case Income:
		a.ApplyIncome(v)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedMoveType, m.Kind())
	}
	return nil
}

// record only holds the account identity, the balance is recomputed from the movements.
func (a *Account) record() Record {
	return newRecordWriter(EntityAccount).
		Str("id", a.id).
		Str("name", a.name).
		Record()
}

func decodeAccount(rec Record) (*Account, error) {
	r := newRecordReader(rec)
	id := r.Str("id", required)
	name := r.Str("name", required)
	if err := r.Err(); err != nil {
		return nil, err
	}
	return newAccount(id, name), nil
}

// String returns a human-readable summary of the account.
func (a *Account) String() string {
	return fmt.Sprintf("[Account] %s\n[Balance] %s %s\n[Last movement] %s",
		a.name, M(a.balance, ReferenceCurrency), ReferenceCurrency, a.lastMovement)
}
