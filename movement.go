package accounts

import (
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/accounts/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReferenceCurrency is the currency of account balances.
const ReferenceCurrency = "USD"

// EntityKind is the leading token of a record.
type EntityKind string

const (
	EntityAccount EntityKind = "account"
	EntityExpense EntityKind = "expense"
	EntityIncome  EntityKind = "income"
)

// Entity is anything that can be written as a record: an *Account, an Expense or an Income.
type Entity interface {
	Kind() EntityKind
	Identity() string
	record() Record
}

// Movement is an Expense or an Income recorded in an account.
type Movement interface {
	Entity
	When() date.Date            // When returns the date of the movement.
	Reference() decimal.Decimal // Reference returns the amount converted into the reference currency.
}

// newID returns a fresh random 128-bit id, as 32 hex characters.
func newID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// Expense is money leaving an account.
type Expense struct {
	ID           string
	Amount       decimal.Decimal // in Currency
	Currency     string
	TypeOfChange decimal.Decimal // multiplier from Currency to the reference currency
	Date         date.Date
	Lat, Lon     decimal.Decimal
	Description  string
	MainCategory string
	SubCategory  string
	Keywords     []string
	IsRecurrent  bool
	IsTransfer   bool // the destination is an account of the same manager
}

func (e Expense) Kind() EntityKind           { return EntityExpense }
func (e Expense) Identity() string           { return e.ID }
func (e Expense) When() date.Date            { return e.Date }
func (e Expense) Reference() decimal.Decimal { return e.Amount.Mul(e.TypeOfChange) }

func (e Expense) record() Record {
	return newRecordWriter(EntityExpense).
		Str("id", e.ID).
		Decimal("amount", e.Amount).
		Str("currency", e.Currency).
		Decimal("type_of_change", e.TypeOfChange).
		Date("date", e.Date).
		Decimal("lat", e.Lat).
		Decimal("lon", e.Lon).
		Str("description", e.Description).
		Str("main_category", e.MainCategory).
		Str("sub_category", e.SubCategory).
		Strings("keywords", e.Keywords).
		Bool("is_recurrent", e.IsRecurrent).
		Bool("is_transfer", e.IsTransfer).
		Record()
}

func decodeExpense(rec Record) (Expense, error) {
	r := newRecordReader(rec)
	e := Expense{
		ID:           r.Str("id", required),
		Amount:       r.Decimal("amount", required),
		Currency:     r.Str("currency", required),
		TypeOfChange: r.Decimal("type_of_change", required),
		Date:         r.Date("date", required),
		Lat:          r.Decimal("lat", optional),
		Lon:          r.Decimal("lon", optional),
		Description:  r.Str("description", optional),
		MainCategory: r.Str("main_category", optional),
		SubCategory:  r.Str("sub_category", optional),
		Keywords:     r.Strings("keywords", optional),
		IsRecurrent:  r.Bool("is_recurrent", optional),
		IsTransfer:   r.Bool("is_transfer", optional),
	}
	return e, r.Err()
}

// String returns a human-readable summary of the expense.
func (e Expense) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[Expense] On %s of %s %s (%s %s)\n", e.Date.Long(), M(e.Amount, e.Currency), e.Currency, M(e.Reference(), ReferenceCurrency), ReferenceCurrency)
	fmt.Fprintf(&b, "[Description] `%s`\n", e.Description)
	fmt.Fprintf(&b, "[Category] %s (%s)\n", e.MainCategory, e.SubCategory)
	fmt.Fprintf(&b, "[Key words] %s\n", strings.Join(e.Keywords, ","))
	if e.IsRecurrent {
		b.WriteString("[Recurrent]\n")
	}
	if e.IsTransfer {
		b.WriteString("[Transfer]\n")
	}
	return b.String()
}

// clone returns a copy that shares no memory with e.
func (e Expense) clone() Expense {
	e.Keywords = slices.Clone(e.Keywords)
	return e
}

// Income is money entering an account.
type Income struct {
	ID           string
	Source       string // free text, or the name of the account the money comes from
	Amount       decimal.Decimal
	Currency     string
	TypeOfChange decimal.Decimal
	Date         date.Date
}

func (i Income) Kind() EntityKind           { return EntityIncome }
func (i Income) Identity() string           { return i.ID }
func (i Income) When() date.Date            { return i.Date }
func (i Income) Reference() decimal.Decimal { return i.Amount.Mul(i.TypeOfChange) }

func (i Income) record() Record {
	return newRecordWriter(EntityIncome).
		Str("id", i.ID).
		Str("source", i.Source).
		Decimal("amount", i.Amount).
		Str("currency", i.Currency).
		Decimal("type_of_change", i.TypeOfChange).
		Date("date", i.Date).
		Record()
}

func decodeIncome(rec Record) (Income, error) {
	r := newRecordReader(rec)
	i := Income{
		ID:           r.Str("id", required),
		Source:       r.Str("source", required),
		Amount:       r.Decimal("amount", required),
		Currency:     r.Str("currency", required),
		TypeOfChange: r.Decimal("type_of_change", required),
		Date:         r.Date("date", required),
	}
	return i, r.Err()
}

// String returns a human-readable summary of the income.
func (i Income) String() string {
	return fmt.Sprintf("[Income] On %s of %s %s (%s %s)\n[From] `%s`\n",
		i.Date.Long(), M(i.Amount, i.Currency), i.Currency, M(i.Reference(), ReferenceCurrency), ReferenceCurrency, i.Source)
}
