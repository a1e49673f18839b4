package renderer

import (
	"github.com/etnz/accounts"
	"github.com/etnz/accounts/date"
	"github.com/shopspring/decimal"
)

// Ledger is the overview of all the accounts of a manager.
type Ledger struct {
	// Total is the sum of all balances, in the reference currency.
	Total accounts.Money `json:"total"`
	// LastMovement is the date of the latest movement, in any account.
	LastMovement date.Date `json:"lastMovement"`
	// Accounts in creation order.
	Accounts []LedgerAccount `json:"accounts"`
}

// LedgerAccount is a single line of the overview.
type LedgerAccount struct {
	Name         string         `json:"name"`
	ID           string         `json:"id"`
	Balance      accounts.Money `json:"balance"`
	LastMovement date.Date      `json:"lastMovement"`
	Movements    int            `json:"movements"`
}

// NewLedger creates the overview of m.
func NewLedger(m *accounts.Manager) *Ledger {
	l := &Ledger{Accounts: make([]LedgerAccount, 0, m.Len())}
	total := decimal.Zero
	for a := range m.Accounts() {
		total = total.Add(a.Balance())
		l.LastMovement = l.LastMovement.Max(a.LastMovementDate())
		l.Accounts = append(l.Accounts, LedgerAccount{
			Name:         a.Name(),
			ID:           a.ID(),
			Balance:      accounts.M(a.Balance(), accounts.ReferenceCurrency),
			LastMovement: a.LastMovementDate(),
			Movements:    a.Len(),
		})
	}
	l.Total = accounts.M(total, accounts.ReferenceCurrency)
	return l
}
