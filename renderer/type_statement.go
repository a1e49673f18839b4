package renderer

import (
	"strings"

	"github.com/etnz/accounts"
	"github.com/etnz/accounts/date"
	"github.com/shopspring/decimal"
)

// Statement lists the movements of a single account.
type Statement struct {
	Name    string         `json:"name"`
	ID      string         `json:"id"`
	Balance accounts.Money `json:"balance"`
	// Range of the movements listed, a zero bound is open.
	Range date.Range `json:"range"`
	// Lines are the movements in the order they were recorded.
	Lines []StatementLine `json:"lines"`
	// Credits and Debits are the totals of the listed lines, in the reference currency.
	Credits accounts.Money `json:"credits"`
	Debits  accounts.Money `json:"debits"`
}

// StatementLine is a single movement of a statement.
type StatementLine struct {
	Date     date.Date      `json:"date"`
	Kind     string         `json:"kind"`
	Label    string         `json:"label"`
	Category string         `json:"category,omitempty"`
	Keywords string         `json:"keywords,omitempty"`
	Amount   accounts.Money `json:"amount"`  // signed, in the currency of the movement
	Value    accounts.Money `json:"value"`   // signed, in the reference currency
	Balance  accounts.Money `json:"balance"` // running balance after the movement
	Transfer bool           `json:"transfer"`
}

// NewStatement creates the statement of a for the movements in r.
//
// The running balance accounts for every movement, including the ones outside r.
func NewStatement(a *accounts.Account, r date.Range) *Statement {
	s := &Statement{
		Name:    a.Name(),
		ID:      a.ID(),
		Balance: accounts.M(a.Balance(), accounts.ReferenceCurrency),
		Range:   r,
		Lines:   make([]StatementLine, 0, a.Len()),
	}
	balance, credits, debits := decimal.Zero, decimal.Zero, decimal.Zero
	for _, mv := range a.Movements() {
		line := StatementLine{Date: mv.When(), Kind: string(mv.Kind())}
		value := mv.Reference()
		switch v := mv.(type) {
		case accounts.Expense:
			value = value.Neg()
			line.Label = v.Description
			line.Category = category(v.MainCategory, v.SubCategory)
			line.Keywords = strings.Join(v.Keywords, ", ")
			line.Amount = accounts.M(v.Amount.Neg(), v.Currency)
			line.Transfer = v.IsTransfer
		case accounts.Income:
			line.Label = "from " + v.Source
			if v.Source == "" {
				line.Label = "income"
			}
			line.Amount = accounts.M(v.Amount, v.Currency)
		}
		balance = balance.Add(value)
		if !r.Contains(mv.When()) {
			continue
		}
		if value.IsNegative() {
			debits = debits.Add(value)
		} else {
			credits = credits.Add(value)
		}
		line.Value = accounts.M(value, accounts.ReferenceCurrency)
		line.Balance = accounts.M(balance, accounts.ReferenceCurrency)
		s.Lines = append(s.Lines, line)
	}
	s.Credits = accounts.M(credits, accounts.ReferenceCurrency)
	s.Debits = accounts.M(debits, accounts.ReferenceCurrency)
	return s
}

func category(main, sub string) string {
	switch {
	case sub == "":
		return main
	case main == "":
		return sub
	}
	return main + "/" + sub
}
