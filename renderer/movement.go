package renderer

import (
	"fmt"

	"github.com/etnz/accounts"
)

// Movement renders a movement to a single line.
func Movement(mv accounts.Movement) string {
	switch v := mv.(type) {
	case accounts.Expense:
		what := "Spent"
		if v.IsTransfer {
			what = "Transferred"
		}
		s := fmt.Sprintf("%s %s on %s", what, accounts.M(v.Amount, v.Currency), v.Date)
		if v.Currency != accounts.ReferenceCurrency {
			s += fmt.Sprintf(" (%s)", accounts.M(v.Reference(), accounts.ReferenceCurrency))
		}
		if v.Description != "" {
			s += ": " + v.Description
		}
		return s
	case accounts.Income:
		s := fmt.Sprintf("Received %s on %s", accounts.M(v.Amount, v.Currency), v.Date)
		if v.Currency != accounts.ReferenceCurrency {
			s += fmt.Sprintf(" (%s)", accounts.M(v.Reference(), accounts.ReferenceCurrency))
		}
		if v.Source != "" {
			s += " from " + v.Source
		}
		return s
	default:
		return string(mv.Kind())
	}
}
