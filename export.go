package accounts

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/accounts/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// jsonMovement is the exported form of both Expense and Income.
type jsonMovement struct {
	Kind         EntityKind       `json:"kind"`
	ID           string           `json:"id"`
	Date         date.Date        `json:"date"`
	Amount       decimal.Decimal  `json:"amount"`
	Currency     string           `json:"currency"`
	TypeOfChange decimal.Decimal  `json:"typeOfChange"`
	Reference    decimal.Decimal  `json:"reference"`
	Source       string           `json:"source,omitempty"`
	Lat          *decimal.Decimal `json:"lat,omitempty"`
	Lon          *decimal.Decimal `json:"lon,omitempty"`
	Description  string           `json:"description,omitempty"`
	MainCategory string           `json:"mainCategory,omitempty"`
	SubCategory  string           `json:"subCategory,omitempty"`
	Keywords     []string         `json:"keywords,omitempty"`
	IsRecurrent  bool             `json:"isRecurrent,omitempty"`
	IsTransfer   bool             `json:"isTransfer,omitempty"`
}

type jsonAccount struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Balance          decimal.Decimal `json:"balance"`
	Currency         string          `json:"currency"`
	LastMovementDate date.Date       `json:"lastMovementDate"`
	Movements        []jsonMovement  `json:"movements"`
}

func exportMovement(mv Movement) jsonMovement {
	j := jsonMovement{Kind: mv.Kind(), ID: mv.Identity(), Date: mv.When(), Reference: mv.Reference()}
	switch v := mv.(type) {
	case Expense:
		j.Amount, j.Currency, j.TypeOfChange = v.Amount, v.Currency, v.TypeOfChange
		if !v.Lat.IsZero() || !v.Lon.IsZero() {
			j.Lat, j.Lon = &v.Lat, &v.Lon
		}
		j.Description, j.MainCategory, j.SubCategory = v.Description, v.MainCategory, v.SubCategory
		j.Keywords, j.IsRecurrent, j.IsTransfer = v.Keywords, v.IsRecurrent, v.IsTransfer
	case Income:
		j.Amount, j.Currency, j.TypeOfChange = v.Amount, v.Currency, v.TypeOfChange
		j.Source = v.Source
	}
	return j
}

// MarshalJSON exports the accounts, their balance and their movements.
func (m *Manager) MarshalJSON() ([]byte, error) {
	var export struct {
		Accounts []jsonAccount `json:"accounts"`
	}
	export.Accounts = make([]jsonAccount, 0, m.Len())
	for a := range m.Accounts() {
		ja := jsonAccount{
			ID:               a.ID(),
			Name:             a.Name(),
			Balance:          a.Balance(),
			Currency:         ReferenceCurrency,
			LastMovementDate: a.LastMovementDate(),
			Movements:        make([]jsonMovement, 0, a.Len()),
		}
		for _, mv := range a.Movements() {
			ja.Movements = append(ja.Movements, exportMovement(mv))
		}
		export.Accounts = append(export.Accounts, ja)
	}
	return json.Marshal(export)
}

// Query evaluates a JSONPath expression, like "$.accounts[0].balance", on the JSON export of m.
func Query(m *Manager, path string) (any, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("cannot export ledger: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("cannot export ledger: %w", err)
	}
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", path, err)
	}
	return v, nil
}
