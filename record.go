package accounts

import (
	"fmt"
	"strings"
)

// This file contains the record grammar.
//
// A record is an entity kind followed by ':'-separated fields, and terminated by ';'.
// Each field is written name<type>=value, for instance:
//
//	income:id<str>=a1b2:source<str>=Checking:amount<decimal>=12.50:currency<str>=USD:type_of_change<decimal>=1:date<date %Y%m%d>=20230115;
//
// Values are escaped with a backslash: '\', ':' and ';' are written '\\', '\:' and '\;'.
// Text without those characters is written unchanged.

const (
	fieldSep  = ':'
	recordEnd = ';'
	escapeChr = '\\'
)

// Field is a named and typed record value.
type Field struct {
	Name  string
	Value Value
}

// Record is the decoded form of one entity.
type Record struct {
	Kind   EntityKind
	Fields []Field
}

// Get returns the value of the field called name.
func (r Record) Get(name string) (Value, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// escape prefixes '\' and any of specials in s with '\'.
func escape(s string, specials ...byte) string {
	if !strings.ContainsAny(s, `\`+string(specials)) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == escapeChr || strings.IndexByte(string(specials), c) >= 0 {
			b.WriteByte(escapeChr)
		}
		b.WriteByte(c)
	}
	return b.String()
}

// unescape removes one level of escaping from s.
func unescape(s string) string {
	if strings.IndexByte(s, escapeChr) < 0 {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == escapeChr && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// splitEscaped splits s on sep, ignoring escaped occurrences. Pieces are still escaped.
func splitEscaped(s string, sep byte) []string {
	var pieces []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case escapeChr:
			i++
		case sep:
			pieces = append(pieces, s[start:i])
			start = i + 1
		}
	}
	return append(pieces, s[start:])
}

// parser is a recursive-descent parser for a sequence of records.
type parser struct {
	types *TypeCodec
	src   string
	pos   int
}

func (p *parser) eof() bool  { return p.pos >= len(p.src) }
func (p *parser) peek() byte { return p.src[p.pos] }

// errorf returns a parse error located at the current position.
func (p *parser) errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", sentinel, p.pos, fmt.Sprintf(format, args...))
}

// token reads until one of stops, and returns what was read.
func (p *parser) token(stops string) string {
	start := p.pos
	for !p.eof() && strings.IndexByte(stops, p.peek()) < 0 {
		p.pos++
	}
	return p.src[start:p.pos]
}

// expect consumes c.
func (p *parser) expect(c byte) error {
	if p.eof() {
		return p.errorf(ErrMalformedField, "unexpected end of record, want %q", c)
	}
	if p.peek() != c {
		return p.errorf(ErrMalformedField, "got %q, want %q", p.peek(), c)
	}
	p.pos++
	return nil
}

// records parses all the records until the end of the source.
func (p *parser) records() ([]Record, error) {
	var list []Record
	for !p.eof() {
		if p.peek() == recordEnd { // empty record
			p.pos++
			continue
		}
		r, err := p.record()
		if err != nil {
			return nil, fmt.Errorf("record #%d: %w", len(list), err)
		}
		list = append(list, r)
	}
	return list, nil
}

// record parses kind (':' field)* ';'
func (p *parser) record() (Record, error) {
	kind := p.token(":;")
	if kind == "" {
		return Record{}, p.errorf(ErrMalformedField, "missing record kind")
	}
	r := Record{Kind: EntityKind(kind)}
	seen := make(map[string]struct{})
	for !p.eof() && p.peek() == fieldSep {
		p.pos++
		f, err := p.field()
		if err != nil {
			return Record{}, fmt.Errorf("%s record: %w", kind, err)
		}
		if _, dup := seen[f.Name]; dup {
			return Record{}, fmt.Errorf("%s record: %w: field %q is repeated", kind, ErrMalformedField, f.Name)
		}
		seen[f.Name] = struct{}{}
		r.Fields = append(r.Fields, f)
	}
	if err := p.expect(recordEnd); err != nil {
		return Record{}, fmt.Errorf("%s record: %w", kind, err)
	}
	return r, nil
}

// field parses name '<' type '>' '=' value
func (p *parser) field() (Field, error) {
	name := p.token("<:;=")
	if name == "" {
		return Field{}, p.errorf(ErrMalformedField, "missing field name")
	}
	if err := p.expect('<'); err != nil {
		return Field{}, fmt.Errorf("field %q: %w", name, err)
	}
	tag := p.token(">:;")
	if err := p.expect('>'); err != nil {
		return Field{}, fmt.Errorf("field %q: %w", name, err)
	}
	if err := p.expect('='); err != nil {
		return Field{}, fmt.Errorf("field %q: %w", name, err)
	}
	typ, err := ParseType(tag)
	if err != nil {
		return Field{}, fmt.Errorf("field %q: %w", name, err)
	}
	raw := p.value()
	v, err := p.types.Parse(typ, raw)
	if err != nil {
		return Field{}, fmt.Errorf("field %q: %w", name, err)
	}
	return Field{Name: name, Value: v}, nil
}

// value reads an escaped value up to the next unescaped ':' or ';', and returns it unescaped.
func (p *parser) value() string {
	start := p.pos
	for !p.eof() {
		switch p.peek() {
		case escapeChr:
			p.pos++
		case fieldSep, recordEnd:
			return unescape(p.src[start:p.pos])
		}
		if !p.eof() {
			p.pos++
		}
	}
	return unescape(p.src[start:])
}

// RecordCodec encodes entities into records and decodes them back.
type RecordCodec struct {
	types *TypeCodec
}

// NewRecordCodec returns a record codec that converts values with types.
func NewRecordCodec(types *TypeCodec) *RecordCodec {
	return &RecordCodec{types: types}
}

// Parse parses a sequence of records.
func (c *RecordCodec) Parse(src string) ([]Record, error) {
	p := parser{types: c.types, src: src}
	return p.records()
}

// Format writes a record in its textual form, terminated by ';'.
func (c *RecordCodec) Format(r Record) (string, error) {
	var b strings.Builder
	b.WriteString(string(r.Kind))
	for _, f := range r.Fields {
		s, err := c.types.Format(f.Value)
		if err != nil {
			return "", fmt.Errorf("cannot format field %q: %w", f.Name, err)
		}
		b.WriteByte(fieldSep)
		b.WriteString(f.Name)
		b.WriteByte('<')
		b.WriteString(f.Value.Type().String())
		b.WriteString(">=")
		b.WriteString(escape(s, fieldSep, recordEnd))
	}
	b.WriteByte(recordEnd)
	return b.String(), nil
}

// Encode returns the record of an entity.
func (c *RecordCodec) Encode(e Entity) (string, error) {
	return c.Format(e.record())
}

// Decode parses a single record into an entity.
func (c *RecordCodec) Decode(src string) (Entity, error) {
	records, err := c.Parse(src)
	if err != nil {
		return nil, err
	}
	if len(records) != 1 {
		return nil, fmt.Errorf("%w: got %d records, want 1", ErrUnexpectedRecord, len(records))
	}
	return c.Entity(records[0])
}

// Entity builds the entity described by r.
func (c *RecordCodec) Entity(r Record) (Entity, error) {
	switch r.Kind {
	case EntityAccount:
		return decodeAccount(r)
	case EntityExpense:
		return decodeExpense(r)
	case EntityIncome:
		return decodeIncome(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMoveType, r.Kind)
	}
}
