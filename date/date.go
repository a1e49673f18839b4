// Package date provides a day-granularity calendar date used by movements and accounts.
package date

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

// DefaultLayout is the strftime layout used by records when none is given.
const DefaultLayout = "%Y%m%d"

// Date represents a date with day-level granularity.
//
// The zero Date stands for 0001-01-01, the zero time.Time, and is earlier
// than any other date.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.IsZero() {
		return Date{}
	}
	return Date{t.Year(), t.Month(), t.Day()}
}

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time {
	if d.IsZero() {
		return time.Time{}
	}
	return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC)
}

func (d Date) Year() int         { return d.y }
func (d Date) Month() time.Month { return d.m }
func (d Date) Day() int          { return d.d }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether the day d is before x. The zero date is before every other date.
func (d Date) Before(x Date) bool {
	switch {
	case d.IsZero():
		return !x.IsZero()
	case x.IsZero():
		return false
	}
	return d.time().Before(x.time())
}

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return x.Before(d) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// Max returns the latest of d and x.
func (d Date) Max(x Date) Date {
	if x.After(d) {
		return x
	}
	return d
}

// String format the date in its standard format.
func (d Date) String() string {
	if d.IsZero() {
		return "never"
	}
	return d.time().Format(DateFormat)
}

// Long formats the date for human readers, like "Sunday 15 January 2023".
func (d Date) Long() string { return d.time().Format("Monday 02 January 2006") }

// Format formats the date with a strftime layout such as "%Y%m%d".
func (d Date) Format(layout string) (string, error) {
	goLayout, err := strftime.Layout(layout)
	if err != nil {
		return "", fmt.Errorf("invalid date layout %q: %w", layout, err)
	}
	return d.time().Format(goLayout), nil
}

// ParseLayout parses a date using a strftime layout such as "%Y%m%d".
func ParseLayout(layout, str string) (Date, error) {
	goLayout, err := strftime.Layout(layout)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date layout %q: %w", layout, err)
	}
	on, err := time.Parse(goLayout, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want layout %q: %w", str, layout, err)
	}
	return New(on.Date()), nil
}

var (
	relativeDateRE = regexp.MustCompile(`^([+-])(\d+)([dwmy])$`)
	monthDayDateRE = regexp.MustCompile(`^(?:(\d+)-)?(\d+)$`)
)

// Parse parses a Date from a string typed by a user.
//
// It accepts ISO dates (leniently, "2025-7-1"), relative dates ("-1d", "+2w",
// "-1m", "-1y") and days of the current year "[MM-]DD".
func Parse(str string) (Date, error) {
	str = strings.TrimSpace(str)

	if match := relativeDateRE.FindStringSubmatch(str); match != nil {
		num, err := strconv.Atoi(match[2])
		if err != nil {
			return Date{}, fmt.Errorf("invalid number in relative date %q: %w", str, err)
		}
		if match[1] == "-" {
			num = -num
		}
		today := Today()
		switch match[3] {
		case "d":
			return today.Add(num), nil
		case "w":
			return today.Add(num * 7), nil
		case "m":
			return New(today.Year(), today.Month()+time.Month(num), today.Day()), nil
		case "y":
			return New(today.Year()+num, today.Month(), today.Day()), nil
		}
	}

	if match := monthDayDateRE.FindStringSubmatch(str); match != nil && len(str) <= 5 {
		day, err := strconv.Atoi(match[2])
		if err != nil {
			return Date{}, fmt.Errorf("invalid day in date %q: %w", str, err)
		}
		today := Today()
		month := today.Month()
		if match[1] != "" {
			m, err := strconv.Atoi(match[1])
			if err != nil {
				return Date{}, fmt.Errorf("invalid month in date %q: %w", str, err)
			}
			month = time.Month(m)
		}
		return New(today.Year(), month, day), nil
	}

	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// Range represents an inclusive range of dates. A zero bound is open.
type Range struct{ From, To Date }

// Contains return true if date is included in the range (boundaries included).
func (r Range) Contains(d Date) bool {
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && d.After(r.To) {
		return false
	}
	return true
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.time().Format(DateFormat))
}

// UnmarshalJSON implements the json specific way to unmarshall a date from a json string.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	if string(bytes) == "null" {
		*d = Date{}
		return nil
	}
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return fmt.Errorf("invalid date %q, want format %q: %w", str, DateFormat, err)
	}
	*d = New(on.Date())
	return nil
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
