package accounts

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestManager_MarshalJSON(t *testing.T) {
	m := newSampleManager(t)
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}

	var export struct {
		Accounts []struct {
			Name             string  `json:"name"`
			Balance          float64 `json:"balance"`
			Currency         string  `json:"currency"`
			LastMovementDate *string `json:"lastMovementDate"`
			Movements        []struct {
				Kind       string   `json:"kind"`
				Reference  float64  `json:"reference"`
				Keywords   []string `json:"keywords"`
				IsTransfer bool     `json:"isTransfer"`
			} `json:"movements"`
		} `json:"accounts"`
	}
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("Unmarshal(%s) unexpected error: %v", data, err)
	}

	var names []string
	for _, a := range export.Accounts {
		names = append(names, a.Name)
	}
	if diff := cmp.Diff([]string{"Checking", "Savings", "Credit card", "Empty"}, names); diff != "" {
		t.Errorf("account names mismatch (-want +got):\n%s", diff)
	}
	checking := export.Accounts[0]
	if checking.Balance != 796.54 || checking.Currency != "USD" {
		t.Errorf("Checking = %v %s, want 796.54 USD", checking.Balance, checking.Currency)
	}
	if checking.LastMovementDate == nil || *checking.LastMovementDate != "2023-01-31" {
		t.Errorf("Checking last movement = %v, want 2023-01-31", checking.LastMovementDate)
	}
	if len(checking.Movements) != 4 || checking.Movements[1].Kind != "expense" || !checking.Movements[1].IsTransfer {
		t.Errorf("Checking movements = %+v", checking.Movements)
	}
	if empty := export.Accounts[3]; empty.LastMovementDate != nil || len(empty.Movements) != 0 {
		t.Errorf("Empty = %+v, want no movement", empty)
	}
	card := export.Accounts[2]
	if diff := cmp.Diff([]string{"coffee", "morning, early"}, card.Movements[0].Keywords); diff != "" {
		t.Errorf("keywords mismatch (-want +got):\n%s", diff)
	}
}

func TestQuery(t *testing.T) {
	m := newSampleManager(t)
	tests := []struct {
		path string
		want any
	}{
		{"$.accounts[0].name", "Checking"},
		{"$.accounts[1].balance", 500.0},
		{"$.accounts[2].movements[0].description", "coffee: espresso; double"},
		{"$.accounts[3].lastMovementDate", nil},
		{`$.accounts[?(@.name == "Savings")].movements[0].source`, []any{"Checking"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Query(m, tt.path)
			if err != nil {
				t.Fatalf("Query(%q) unexpected error: %v", tt.path, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Query(%q) mismatch (-want +got):\n%s", tt.path, diff)
			}
		})
	}

	if _, err := Query(m, "$.accounts[?("); err == nil {
		t.Errorf("Query() with an invalid path returned no error")
	}
}
