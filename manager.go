package accounts

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/etnz/accounts/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Manager owns a set of accounts and records the moves between them, or
// between them and the outside world.
//
// A Manager is not safe for concurrent use.
type Manager struct {
	codec     *RecordCodec
	log       zerolog.Logger
	separator func() (string, error) // draws the separator of accounts on save

	accounts map[string]*Account // index accounts by id
	names    map[string]string   // index account ids by name
	order    []string            // account ids in creation order
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger of the manager. By default nothing is logged.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithCodec sets the record codec used to save and load the manager.
func WithCodec(c *RecordCodec) Option {
	return func(m *Manager) { m.codec = c }
}

// NewManager creates a manager without accounts.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		codec:     NewRecordCodec(NewTypeCodec()),
		log:       zerolog.Nop(),
		separator: randomSeparator,
	}
	m.reset()
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// reset empties the account collection.
func (m *Manager) reset() {
	m.accounts = make(map[string]*Account)
	m.names = make(map[string]string)
	m.order = make([]string, 0)
}

// NewAccount creates an account called name and returns its id.
func (m *Manager) NewAccount(name string) (string, error) {
	return m.AddAccount(NewAccount(name))
}

// AddAccount registers an existing account and returns its id.
func (m *Manager) AddAccount(a *Account) (string, error) {
	if strings.TrimSpace(a.Name()) == "" {
		return "", ErrEmptyName
	}
	if _, exists := m.names[a.Name()]; exists {
		return "", fmt.Errorf("%w: %q", ErrDuplicateName, a.Name())
	}
	if _, exists := m.accounts[a.ID()]; exists {
		return "", fmt.Errorf("%w: %q", ErrDuplicateID, a.ID())
	}
	m.accounts[a.ID()] = a
	m.names[a.Name()] = a.ID()
	m.order = append(m.order, a.ID())
	return a.ID(), nil
}

// Account returns the account called name.
func (m *Manager) Account(name string) (*Account, bool) {
	id, ok := m.names[name]
	if !ok {
		return nil, false
	}
	return m.accounts[id], true
}

// AccountByID returns the account identified by id.
func (m *Manager) AccountByID(id string) (*Account, bool) {
	a, ok := m.accounts[id]
	return a, ok
}

// Accounts iterates over the accounts in creation order.
func (m *Manager) Accounts() iter.Seq[*Account] {
	return func(yield func(*Account) bool) {
		for _, id := range m.order {
			if !yield(m.accounts[id]) {
				return
			}
		}
	}
}

// Len returns the number of accounts.
func (m *Manager) Len() int { return len(m.order) }

// Move describes money going from an account to another. Either account can
// be unknown to the manager (or empty), in which case it stands for the
// outside world.
type Move struct {
	From, To     string          // account names
	Amount       decimal.Decimal // in Currency
	Currency     string          // defaults to the reference currency
	TypeOfChange decimal.Decimal // defaults to 1
	Date         date.Date
	Lat, Lon     decimal.Decimal
	Description  string
	MainCategory string
	SubCategory  string
	Keywords     []string
	IsRecurrent  bool
}

// RegisterMove records a move.
//
// When the source is a managed account an Expense is applied to it, and the
// Income it mirrors is applied to the destination, if managed. Otherwise an
// Income from the source is applied to the destination. It fails with
// ErrNoManagedEndpoint if neither account is managed.
func (m *Manager) RegisterMove(mv Move) error {
	from, fromManaged := m.Account(mv.From)
	to, toManaged := m.Account(mv.To)
	if !fromManaged && !toManaged {
		return fmt.Errorf("%w: from %q to %q", ErrNoManagedEndpoint, mv.From, mv.To)
	}
	if slices.Contains(mv.Keywords, "") {
		return fmt.Errorf("%w: empty keyword in %q", ErrMalformedValue, mv.Keywords)
	}
	if mv.Currency == "" {
		mv.Currency = ReferenceCurrency
	}
	if mv.TypeOfChange.IsZero() {
		mv.TypeOfChange = decimal.NewFromInt(1)
	}
	isTransfer := fromManaged && toManaged

	var income Income
	if fromManaged {
		income = from.ApplyExpense(Expense{
			ID:           newID(),
			Amount:       mv.Amount,
			Currency:     mv.Currency,
			TypeOfChange: mv.TypeOfChange,
			Date:         mv.Date,
			Lat:          mv.Lat,
			Lon:          mv.Lon,
			Description:  mv.Description,
			MainCategory: mv.MainCategory,
			SubCategory:  mv.SubCategory,
			Keywords:     mv.Keywords,
			IsRecurrent:  mv.IsRecurrent,
			IsTransfer:   isTransfer,
		})
	} else {
		income = Income{
			ID:           newID(),
			Source:       mv.From,
			Amount:       mv.Amount,
			Currency:     mv.Currency,
			TypeOfChange: mv.TypeOfChange,
			Date:         mv.Date,
		}
	}
	if toManaged {
		to.ApplyIncome(income)
	}

	m.log.Debug().
		Str("from", mv.From).
		Str("to", mv.To).
		Stringer("amount", mv.Amount).
		Str("currency", mv.Currency).
		Bool("transfer", isTransfer).
		Msg("move registered")
	return nil
}

// String lists the summary of every account.
func (m *Manager) String() string {
	var b strings.Builder
	b.WriteString(strings.Repeat("-", 10) + " [Accounts] " + strings.Repeat("-", 10))
	for a := range m.Accounts() {
		b.WriteString("\n" + strings.Repeat("-", 32) + "\n")
		b.WriteString(a.String())
	}
	b.WriteString("\n" + strings.Repeat("-", 32))
	return b.String()
}
