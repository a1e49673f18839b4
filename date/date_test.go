package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNew_Normalizes(t *testing.T) {
	if got, want := New(2025, time.January, 32), New(2025, time.February, 1); got != want {
		t.Errorf("New(2025, 1, 32) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	today := Today()

	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", New(2025, time.January, 15), false},
		{"2025-7-1", New(2025, time.July, 1), false},
		{"invalid-date", Date{}, true},
		{"-1d", today.Add(-1), false},
		{"+2w", today.Add(14), false},
		{"-1y", New(today.Year()-1, today.Month(), today.Day()), false},
		{"27", New(today.Year(), today.Month(), 27), false},
		{"1-15", New(today.Year(), time.January, 15), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.err {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.err)
			}
			if got != tt.expected {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLayout(t *testing.T) {
	d := New(2023, time.January, 15)

	s, err := d.Format(DefaultLayout)
	if err != nil {
		t.Fatalf("Format() unexpected error: %v", err)
	}
	if s != "20230115" {
		t.Errorf("Format(%q) = %q, want %q", DefaultLayout, s, "20230115")
	}

	got, err := ParseLayout(DefaultLayout, s)
	if err != nil {
		t.Fatalf("ParseLayout() unexpected error: %v", err)
	}
	if got != d {
		t.Errorf("ParseLayout(%q) = %v, want %v", s, got, d)
	}

	if _, err := ParseLayout(DefaultLayout, "2023-01-15"); err == nil {
		t.Errorf("ParseLayout() accepted a date in the wrong layout")
	}
}

func TestZeroDate(t *testing.T) {
	var zero Date
	d := New(1, time.January, 2)

	if !zero.Before(d) {
		t.Errorf("zero date must be before %v", d)
	}
	if zero.After(d) || d.Before(zero) {
		t.Errorf("zero date must not be after %v", d)
	}
	if zero.Before(zero) {
		t.Errorf("zero date must not be before itself")
	}
	if got := zero.Max(d); got != d {
		t.Errorf("Max() = %v, want %v", got, d)
	}
	if New(1, time.January, 1) != zero {
		t.Errorf("New(1, January, 1) must be the zero date")
	}
	if got, err := zero.Format(DefaultLayout); err != nil || got != "00010101" {
		t.Errorf("zero.Format() = %q, %v, want %q", got, err, "00010101")
	}
	if got, err := ParseLayout(DefaultLayout, "00010101"); err != nil || !got.IsZero() {
		t.Errorf("ParseLayout(%q) = %v, %v, want the zero date", "00010101", got, err)
	}
	if zero.String() != "never" {
		t.Errorf("zero.String() = %q, want %q", zero.String(), "never")
	}
}

func TestRange_Contains(t *testing.T) {
	r := Range{From: New(2023, 1, 1), To: New(2023, 1, 31)}
	for _, tt := range []struct {
		d    Date
		want bool
	}{
		{New(2022, 12, 31), false},
		{New(2023, 1, 1), true},
		{New(2023, 1, 31), true},
		{New(2023, 2, 1), false},
	} {
		if got := r.Contains(tt.d); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}
	if !(Range{}).Contains(New(1999, 1, 1)) {
		t.Errorf("open range must contain every date")
	}
}

func TestJSON(t *testing.T) {
	d := New(2023, 2, 1)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2023-02-01"` {
		t.Errorf("Marshal() = %s", data)
	}
	var got Date
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got != d {
		t.Errorf("Unmarshal() = %v, want %v", got, d)
	}
}
