package accounts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/accounts/date"
	"github.com/shopspring/decimal"
)

// Tag identifies the type of a record field.
//
// The set of tags is closed, see the constants below.
type Tag int

const (
	TagStr Tag = iota + 1
	TagInt
	TagFloat
	TagDecimal
	TagBool
	TagDate
	TagList
)

var tagNames = map[Tag]string{
	TagStr:     "str",
	TagInt:     "int",
	TagFloat:   "float",
	TagDecimal: "decimal",
	TagBool:    "bool",
	TagDate:    "date",
	TagList:    "list",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseTag returns the Tag named name.
func ParseTag(name string) (Tag, error) {
	switch name {
	case "str":
		return TagStr, nil
	case "int":
		return TagInt, nil
	case "float":
		return TagFloat, nil
	case "decimal":
		return TagDecimal, nil
	case "bool":
		return TagBool, nil
	case "date":
		return TagDate, nil
	case "list":
		return TagList, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
}

// Type is a field type as it appears between angle brackets in a record: a
// Tag and its arguments, like "str", "date %Y%m%d" or "list str[,]".
type Type struct {
	Tag    Tag
	Layout string // strftime layout of a date, or of list elements of type date.
	Elem   Tag    // element tag of a list.
	Delim  string // element delimiter of a list, a single byte.
}

// Common field types.
var (
	TypeStr     = Type{Tag: TagStr}
	TypeInt     = Type{Tag: TagInt}
	TypeFloat   = Type{Tag: TagFloat}
	TypeDecimal = Type{Tag: TagDecimal}
	TypeBool    = Type{Tag: TagBool}
	TypeDate    = Type{Tag: TagDate, Layout: date.DefaultLayout}
)

// ListOf returns the type of a list of elem separated by delim.
func ListOf(elem Tag, delim string) Type {
	t := Type{Tag: TagList, Elem: elem, Delim: delim}
	if elem == TagDate {
		t.Layout = date.DefaultLayout
	}
	return t
}

// reserved characters cannot be used as list delimiters.
const reserved = `\:;<>=[] `

// NewType builds a Type from a tag name and its (possibly empty) arguments.
func NewType(name, args string) (Type, error) {
	tag, err := ParseTag(name)
	if err != nil {
		return Type{}, err
	}
	switch tag {
	case TagDate:
		if args == "" {
			args = date.DefaultLayout
		}
		if _, err := date.New(2000, 1, 1).Format(args); err != nil {
			return Type{}, fmt.Errorf("%w: date layout %q: %v", ErrMalformedField, args, err)
		}
		return Type{Tag: TagDate, Layout: args}, nil
	case TagList:
		// args is like "str[,]"
		open := strings.IndexByte(args, '[')
		if open < 0 || !strings.HasSuffix(args, "]") {
			return Type{}, fmt.Errorf("%w: list arguments %q, want \"<type>[<delimiter>]\"", ErrMalformedField, args)
		}
		elem, err := ParseTag(args[:open])
		if err != nil {
			return Type{}, err
		}
		if elem == TagList {
			return Type{}, fmt.Errorf("%w: nested list %q", ErrUnknownType, args)
		}
		delim := args[open+1 : len(args)-1]
		if len(delim) != 1 || strings.ContainsAny(delim, reserved) {
			return Type{}, fmt.Errorf("%w: invalid list delimiter %q", ErrMalformedField, delim)
		}
		return ListOf(elem, delim), nil
	default:
		if args != "" {
			return Type{}, fmt.Errorf("%w: type %q takes no arguments, got %q", ErrMalformedField, name, args)
		}
		return Type{Tag: tag}, nil
	}
}

// ParseType parses a type as written in a record, like "list str[,]".
func ParseType(s string) (Type, error) {
	name, args, _ := strings.Cut(s, " ")
	return NewType(name, args)
}

// String returns the type as written in a record.
func (t Type) String() string {
	switch t.Tag {
	case TagDate:
		return "date " + t.Layout
	case TagList:
		return "list " + t.Elem.String() + "[" + t.Delim + "]"
	default:
		return t.Tag.String()
	}
}

// elem returns the type of list elements.
func (t Type) elem() Type {
	return Type{Tag: t.Elem, Layout: t.Layout}
}

// Value is a typed field value.
type Value struct {
	typ  Type
	str  string
	num  int64
	flt  float64
	dec  decimal.Decimal
	b    bool
	day  date.Date
	list []Value
}

func StrValue(s string) Value                { return Value{typ: TypeStr, str: s} }
func IntValue(i int64) Value                 { return Value{typ: TypeInt, num: i} }
func FloatValue(f float64) Value             { return Value{typ: TypeFloat, flt: f} }
func DecimalValue(d decimal.Decimal) Value   { return Value{typ: TypeDecimal, dec: d} }
func BoolValue(b bool) Value                 { return Value{typ: TypeBool, b: b} }
func DateValue(d date.Date) Value            { return Value{typ: TypeDate, day: d} }
func ListValue(t Type, items ...Value) Value { return Value{typ: t, list: items} }

// StringsValue returns a list of strings separated by delim.
func StringsValue(delim string, items []string) Value {
	v := Value{typ: ListOf(TagStr, delim), list: make([]Value, 0, len(items))}
	for _, s := range items {
		v.list = append(v.list, StrValue(s))
	}
	return v
}

func (v Value) Type() Type               { return v.typ }
func (v Value) Str() string              { return v.str }
func (v Value) Int() int64               { return v.num }
func (v Value) Float() float64           { return v.flt }
func (v Value) Decimal() decimal.Decimal { return v.dec }
func (v Value) Bool() bool               { return v.b }
func (v Value) Date() date.Date          { return v.day }
func (v Value) List() []Value            { return v.list }

// Strings returns the elements of a list of str.
func (v Value) Strings() []string {
	out := make([]string, 0, len(v.list))
	for _, e := range v.list {
		out = append(out, e.str)
	}
	return out
}

// Equal reports whether v and w have the same type and value. Decimals must
// also share their exponent, so that they are written identically.
func (v Value) Equal(w Value) bool {
	if v.typ != w.typ {
		return false
	}
	switch v.typ.Tag {
	case TagStr:
		return v.str == w.str
	case TagInt:
		return v.num == w.num
	case TagFloat:
		return v.flt == w.flt
	case TagDecimal:
		return v.dec.Equal(w.dec) && v.dec.Exponent() == w.dec.Exponent()
	case TagBool:
		return v.b == w.b
	case TagDate:
		return v.day == w.day
	case TagList:
		if len(v.list) != len(w.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(w.list[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// TypeCodec converts field values from and to their textual form.
type TypeCodec struct{}

// NewTypeCodec returns a codec for the closed set of tags.
func NewTypeCodec() *TypeCodec { return &TypeCodec{} }

// Parse converts raw, the unescaped text of a field, into a value of type t.
func (c *TypeCodec) Parse(t Type, raw string) (Value, error) {
	v := Value{typ: t}
	var err error
	switch t.Tag {
	case TagStr:
		v.str = raw
	case TagInt:
		v.num, err = strconv.ParseInt(raw, 10, 64)
	case TagFloat:
		v.flt, err = strconv.ParseFloat(raw, 64)
	case TagDecimal:
		v.dec, err = decimal.NewFromString(raw)
	case TagBool:
		var i int64
		i, err = strconv.ParseInt(raw, 10, 64)
		v.b = i != 0
	case TagDate:
		v.day, err = date.ParseLayout(t.Layout, raw)
	case TagList:
		v.list = make([]Value, 0)
		if raw == "" {
			break
		}
		for _, piece := range splitEscaped(raw, t.Delim[0]) {
			item, e := c.Parse(t.elem(), unescape(piece))
			if e != nil {
				return Value{}, e
			}
			v.list = append(v.list, item)
		}
	default:
		return Value{}, fmt.Errorf("%w: %v", ErrUnknownType, t.Tag)
	}
	if err != nil {
		return Value{}, fmt.Errorf("%w: %q is not a %s: %v", ErrMalformedValue, raw, t, err)
	}
	return v, nil
}

// Format returns the text of v, such that Parse(v.Type(), Format(v)) equals v.
func (c *TypeCodec) Format(v Value) (string, error) {
	switch v.typ.Tag {
	case TagStr:
		return v.str, nil
	case TagInt:
		return strconv.FormatInt(v.num, 10), nil
	case TagFloat:
		return strconv.FormatFloat(v.flt, 'g', -1, 64), nil
	case TagDecimal:
		return formatDecimal(v.dec), nil
	case TagBool:
		if v.b {
			return "1", nil
		}
		return "0", nil
	case TagDate:
		return v.day.Format(v.typ.Layout)
	case TagList:
		if len(v.list) == 1 && v.list[0].typ.Tag == TagStr && v.list[0].str == "" {
			return "", fmt.Errorf("%w: a list of a single empty string reads back as an empty list", ErrMalformedValue)
		}
		pieces := make([]string, 0, len(v.list))
		for _, item := range v.list {
			s, err := c.Format(item)
			if err != nil {
				return "", err
			}
			pieces = append(pieces, escape(s, v.typ.Delim[0]))
		}
		return strings.Join(pieces, v.typ.Delim), nil
	default:
		return "", fmt.Errorf("%w: %v", ErrUnknownType, v.typ.Tag)
	}
}

// formatDecimal writes d keeping its exponent, so that "12.50" is not shortened
// to "12.5", and 5E+2 is not read back as 500.
func formatDecimal(d decimal.Decimal) string {
	switch exp := d.Exponent(); {
	case exp < 0:
		return d.StringFixed(-exp)
	case exp > 0:
		return fmt.Sprintf("%sE+%d", d.Coefficient(), exp)
	}
	return d.String()
}
