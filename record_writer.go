package accounts

import (
	"fmt"

	"github.com/etnz/accounts/date"
	"github.com/shopspring/decimal"
)

// recordWriter helps construct a Record with a specific field order.
type recordWriter struct {
	rec Record
}

func newRecordWriter(kind EntityKind) *recordWriter {
	return &recordWriter{rec: Record{Kind: kind}}
}

// Append adds a field to the record.
func (w *recordWriter) Append(name string, v Value) *recordWriter {
	w.rec.Fields = append(w.rec.Fields, Field{Name: name, Value: v})
	return w
}

func (w *recordWriter) Str(name, s string) *recordWriter { return w.Append(name, StrValue(s)) }
func (w *recordWriter) Decimal(name string, d decimal.Decimal) *recordWriter {
	return w.Append(name, DecimalValue(d))
}
func (w *recordWriter) Date(name string, d date.Date) *recordWriter { return w.Append(name, DateValue(d)) }
func (w *recordWriter) Bool(name string, b bool) *recordWriter      { return w.Append(name, BoolValue(b)) }

// Strings appends a list of str separated by ','.
func (w *recordWriter) Strings(name string, items []string) *recordWriter {
	return w.Append(name, StringsValue(",", items))
}

// Record returns the record built so far.
func (w *recordWriter) Record() Record { return w.rec }

const (
	optional = false
	required = true
)

// recordReader reads typed fields from a Record. Errors are accumulated and
// reported by Err, so fields can be read in sequence.
type recordReader struct {
	rec  Record
	used map[string]bool
	err  error
}

func newRecordReader(r Record) *recordReader {
	return &recordReader{rec: r, used: make(map[string]bool)}
}

// lookup returns the field called name if it exists and has the tag.
func (r *recordReader) lookup(name string, tag Tag, mandatory bool) (Value, bool) {
	if r.err != nil {
		return Value{}, false
	}
	r.used[name] = true
	v, ok := r.rec.Get(name)
	if !ok {
		if mandatory {
			r.err = fmt.Errorf("%s record: %w: %q", r.rec.Kind, ErrMissingField, name)
		}
		return Value{}, false
	}
	if v.Type().Tag != tag {
		r.err = fmt.Errorf("%s record: %w: field %q has type %s, want %s", r.rec.Kind, ErrMalformedField, name, v.Type(), tag)
		return Value{}, false
	}
	return v, true
}

func (r *recordReader) Str(name string, mandatory bool) string {
	v, _ := r.lookup(name, TagStr, mandatory)
	return v.Str()
}

// Decimal returns the decimal value, or zero if absent.
func (r *recordReader) Decimal(name string, mandatory bool) decimal.Decimal {
	if v, ok := r.lookup(name, TagDecimal, mandatory); ok {
		return v.Decimal()
	}
	return decimal.Zero
}

func (r *recordReader) Date(name string, mandatory bool) date.Date {
	v, _ := r.lookup(name, TagDate, mandatory)
	return v.Date()
}

func (r *recordReader) Bool(name string, mandatory bool) bool {
	v, _ := r.lookup(name, TagBool, mandatory)
	return v.Bool()
}

// Strings returns the items of a list of str, or nil if absent or empty.
func (r *recordReader) Strings(name string, mandatory bool) []string {
	v, ok := r.lookup(name, TagList, mandatory)
	if !ok || len(v.List()) == 0 {
		return nil
	}
	if v.Type().Elem != TagStr {
		r.err = fmt.Errorf("%s record: %w: field %q has type %s, want a list of str", r.rec.Kind, ErrMalformedField, name, v.Type())
		return nil
	}
	return v.Strings()
}

// Err returns the first error encountered, or an error if the record has a field that was never read.
func (r *recordReader) Err() error {
	if r.err != nil {
		return r.err
	}
	for _, f := range r.rec.Fields {
		if !r.used[f.Name] {
			return fmt.Errorf("%s record: %w: unknown field %q", r.rec.Kind, ErrMalformedField, f.Name)
		}
	}
	return nil
}
