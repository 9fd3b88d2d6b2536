// Package value defines the generic document tree consumed by the decoder.
//
// A tree is produced once by a document parser and then only read. Tables
// keep their keys in insertion order; every node may carry the source span
// it was read from.
package value

import (
	"bytes"
	"strconv"
	"strings"
)

// Kind identifies the shape of a Node.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindTable
	KindArray
	KindString
	KindInteger
	KindFloat
	KindBoolean
	KindDateTime
)

var kindNames = [...]string{
	KindInvalid:  "invalid",
	KindTable:    "table",
	KindArray:    "array",
	KindString:   "string",
	KindInteger:  "integer",
	KindFloat:    "float",
	KindBoolean:  "boolean",
	KindDateTime: "datetime",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Node is the base interface for all tree nodes.
type Node interface {
	// Kind reports which concrete node type this is.
	Kind() Kind
	// Span returns the source range of the node. The zero Span means the
	// location is unknown.
	Span() Span
	// String returns a compact, TOML-like rendering of the node.
	String() string
}

// Table is an ordered mapping from keys to nodes.
type Table struct {
	keys    []string
	entries map[string]Node
	Loc     Span
}

// NewTable returns an empty table located at loc.
func NewTable(loc Span) *Table {
	return &Table{entries: make(map[string]Node), Loc: loc}
}

func (t *Table) Kind() Kind { return KindTable }
func (t *Table) Span() Span { return t.Loc }

// Get returns the entry stored under key.
func (t *Table) Get(key string) (Node, bool) {
	n, ok := t.entries[key]
	return n, ok
}

// Keys returns the table keys in insertion order.
func (t *Table) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.keys) }

// Set stores n under key. A new key is appended to the key order; an
// existing key keeps its position. Set is meant for tree builders only.
func (t *Table) Set(key string, n Node) {
	if t.entries == nil {
		t.entries = make(map[string]Node)
	}
	if _, ok := t.entries[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.entries[key] = n
}

func (t *Table) String() string {
	var out bytes.Buffer
	pairs := make([]string, 0, len(t.keys))
	for _, k := range t.keys {
		pairs = append(pairs, QuoteKey(k)+" = "+t.entries[k].String())
	}
	out.WriteString("{")
	out.WriteString(strings.Join(pairs, ", "))
	out.WriteString("}")
	return out.String()
}

// Array is an ordered sequence of nodes.
type Array struct {
	elements []Node
	Loc      Span
}

// NewArray returns an array holding elems, located at loc.
func NewArray(loc Span, elems ...Node) *Array {
	return &Array{elements: elems, Loc: loc}
}

func (a *Array) Kind() Kind { return KindArray }
func (a *Array) Span() Span { return a.Loc }

// Elements returns the array elements. The slice must not be modified.
func (a *Array) Elements() []Node { return a.elements }

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.elements) }

// Append adds n to the end of the array. It is meant for tree builders only.
func (a *Array) Append(n Node) { a.elements = append(a.elements, n) }

func (a *Array) String() string {
	var out bytes.Buffer
	elements := make([]string, 0, len(a.elements))
	for _, el := range a.elements {
		elements = append(elements, el.String())
	}
	out.WriteString("[")
	out.WriteString(strings.Join(elements, ", "))
	out.WriteString("]")
	return out.String()
}

// String is a string scalar.
type String struct {
	Value string
	Loc   Span
}

func (s *String) Kind() Kind     { return KindString }
func (s *String) Span() Span     { return s.Loc }
func (s *String) String() string { return strconv.Quote(s.Value) }

// Integer is a 64-bit signed integer scalar.
type Integer struct {
	Value int64
	Loc   Span
}

func (i *Integer) Kind() Kind     { return KindInteger }
func (i *Integer) Span() Span     { return i.Loc }
func (i *Integer) String() string { return strconv.FormatInt(i.Value, 10) }

// Float is a 64-bit floating point scalar.
type Float struct {
	Value float64
	Loc   Span
}

func (f *Float) Kind() Kind     { return KindFloat }
func (f *Float) Span() Span     { return f.Loc }
func (f *Float) String() string { return strconv.FormatFloat(f.Value, 'g', -1, 64) }

// Boolean is a boolean scalar.
type Boolean struct {
	Value bool
	Loc   Span
}

func (b *Boolean) Kind() Kind     { return KindBoolean }
func (b *Boolean) Span() Span     { return b.Loc }
func (b *Boolean) String() string { return strconv.FormatBool(b.Value) }

// QuoteKey renders key as a bare key when possible and as a quoted key
// otherwise.
func QuoteKey(key string) string {
	if key == "" {
		return `""`
	}
	for _, r := range key {
		if !isBareKeyRune(r) {
			return strconv.Quote(key)
		}
	}
	return key
}

func isBareKeyRune(r rune) bool {
	return r == '-' || r == '_' ||
		('a' <= r && r <= 'z') ||
		('A' <= r && r <= 'Z') ||
		('0' <= r && r <= '9')
}
