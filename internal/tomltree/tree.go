// Package tomltree turns TOML documents into value trees.
//
// Parsing happens in two passes. The document is first decoded by
// go-toml into a throwaway map, which enforces the full TOML grammar. The
// unstable go-toml parser is then replayed over the same bytes to build an
// ordered value.Table with source spans. The replay tracks how every key
// was defined and reports duplicate keys and table redefinitions at the
// offending key, which go-toml does without a position.
package tomltree

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"

	cerrors "github.com/KimNorgaard/go-cargotoml/errors"
	"github.com/KimNorgaard/go-cargotoml/value"
)

// Parse parses data as a TOML document and returns its root table.
// Malformed input is reported as a *errors.SyntaxError.
func Parse(data []byte) (*value.Table, error) {
	var probe map[string]any
	probeErr := toml.Unmarshal(data, &probe)
	var de *toml.DecodeError
	if errors.As(probeErr, &de) {
		row, col := de.Position()
		return nil, &cerrors.SyntaxError{
			Message: strings.TrimPrefix(de.Error(), "toml: "),
			Line:    row,
			Column:  col,
		}
	}

	b := &builder{
		data:  data,
		lines: newLineIndex(data),
		root:  value.NewTable(value.Span{}),
	}
	if err := b.run(); err != nil {
		return nil, err
	}
	if probeErr != nil {
		// Rejected by go-toml but not located by the replay.
		return nil, &cerrors.SyntaxError{Message: strings.TrimPrefix(probeErr.Error(), "toml: ")}
	}
	return b.root, nil
}

type builder struct {
	data    []byte
	lines   lineIndex
	root    *value.Table
	current *value.Table

	seen    *seenEntry
	section *seenEntry
}

func (b *builder) run() error {
	var p unstable.Parser
	p.Reset(b.data)
	b.current = b.root
	b.seen = newScope()
	b.section = b.seen

	for p.NextExpression() {
		e := p.Expression()
		switch e.Kind {
		case unstable.KeyValue:
			if err := b.keyValue(b.current, b.section, e); err != nil {
				return err
			}
		case unstable.Table:
			b.section.close()
			t, err := b.openTable(e)
			if err != nil {
				return err
			}
			b.current = t
		case unstable.ArrayTable:
			b.section.close()
			t, err := b.appendArrayTable(e)
			if err != nil {
				return err
			}
			b.current = t
		}
	}
	if err := p.Error(); err != nil {
		return &cerrors.SyntaxError{Message: err.Error()}
	}
	return nil
}

type keyPart struct {
	name string
	span value.Span
}

func (b *builder) keyParts(e *unstable.Node) []keyPart {
	var parts []keyPart
	it := e.Key()
	for it.Next() {
		n := it.Node()
		parts = append(parts, keyPart{name: string(n.Data), span: b.span(n)})
	}
	return parts
}

// descend returns the table stored under part in t, creating an implicit
// table when the key is absent. An array of tables resolves to its last
// element.
func (b *builder) descend(t *value.Table, part keyPart) (*value.Table, error) {
	existing, ok := t.Get(part.name)
	if !ok {
		child := value.NewTable(part.span)
		t.Set(part.name, child)
		return child, nil
	}
	switch n := existing.(type) {
	case *value.Table:
		return n, nil
	case *value.Array:
		if n.Len() > 0 {
			if last, ok := n.Elements()[n.Len()-1].(*value.Table); ok {
				return last, nil
			}
		}
	}
	return nil, b.structureError(part, "key %s is not a table", value.QuoteKey(part.name))
}

func (b *builder) walk(t *value.Table, parts []keyPart) (*value.Table, error) {
	var err error
	for _, part := range parts {
		t, err = b.descend(t, part)
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

// headerScope follows the intermediate keys of a table header, creating
// implicit tables for unseen keys.
func (b *builder) headerScope(parts []keyPart) (*seenEntry, error) {
	scope := b.seen
	for _, part := range parts {
		c := scope.child(part.name)
		if c == nil {
			c = scope.add(part.name, tableKind, false, false)
		} else if c.kind == valueKind {
			return nil, b.structureError(part, "key %s is defined as %s, not a table", value.QuoteKey(part.name), c.kind)
		}
		scope = c
	}
	return scope, nil
}

func (b *builder) openTable(e *unstable.Node) (*value.Table, error) {
	parts := b.keyParts(e)
	if len(parts) == 0 {
		return b.root, nil
	}
	scope, err := b.headerScope(parts[:len(parts)-1])
	if err != nil {
		return nil, err
	}
	last := parts[len(parts)-1]
	entry := scope.child(last.name)
	switch {
	case entry == nil:
		entry = scope.add(last.name, tableKind, true, false)
	case entry.kind != tableKind:
		return nil, b.structureError(last, "key %s is defined as %s, not a table", value.QuoteKey(last.name), entry.kind)
	case entry.explicit:
		return nil, b.structureError(last, "table %s is already defined", value.QuoteKey(last.name))
	default:
		entry.explicit = true
	}
	b.section = entry

	t, err := b.walk(b.root, parts)
	if err != nil {
		return nil, err
	}
	if t.Loc.IsZero() {
		t.Loc = last.span
	}
	return t, nil
}

func (b *builder) appendArrayTable(e *unstable.Node) (*value.Table, error) {
	parts := b.keyParts(e)
	if len(parts) == 0 {
		return nil, &cerrors.SyntaxError{Message: "array table without a key"}
	}
	scope, err := b.headerScope(parts[:len(parts)-1])
	if err != nil {
		return nil, err
	}
	last := parts[len(parts)-1]
	entry := scope.child(last.name)
	switch {
	case entry == nil:
		entry = scope.add(last.name, arrayTableKind, true, false)
	case entry.kind != arrayTableKind:
		return nil, b.structureError(last, "key %s is defined as %s, not an array of tables", value.QuoteKey(last.name), entry.kind)
	default:
		entry.reset()
	}
	b.section = entry

	parent, err := b.walk(b.root, parts[:len(parts)-1])
	if err != nil {
		return nil, err
	}
	elem := value.NewTable(last.span)

	existing, ok := parent.Get(last.name)
	if !ok {
		parent.Set(last.name, value.NewArray(last.span, elem))
		return elem, nil
	}
	arr, ok := existing.(*value.Array)
	if !ok {
		return nil, b.structureError(last, "key %s is not an array of tables", value.QuoteKey(last.name))
	}
	arr.Append(elem)
	return elem, nil
}

// keyValue binds a key-value expression into t. scope tracks the keys
// already defined in t.
func (b *builder) keyValue(t *value.Table, scope *seenEntry, e *unstable.Node) error {
	parts := b.keyParts(e)
	if len(parts) == 0 {
		return &cerrors.SyntaxError{Message: "key-value pair without a key"}
	}
	for i, part := range parts {
		c := scope.child(part.name)
		switch {
		case c == nil:
			c = scope.add(part.name, tableKind, false, true)
		case i == len(parts)-1:
			return b.structureError(part, "key %s is already defined", value.QuoteKey(part.name))
		case c.kind != tableKind:
			return b.structureError(part, "key %s is defined as %s, not a table", value.QuoteKey(part.name), c.kind)
		case c.explicit:
			return b.structureError(part, "table %s cannot be extended with dotted keys", value.QuoteKey(part.name))
		}
		scope = c
	}
	scope.kind = valueKind

	parent, err := b.walk(t, parts[:len(parts)-1])
	if err != nil {
		return err
	}
	last := parts[len(parts)-1]
	v, err := b.build(e.Value(), last.span)
	if err != nil {
		return err
	}
	parent.Set(last.name, v)
	return nil
}

// build converts a value node. Containers carry no source range of their
// own in the unstable parser, so they take fallback, the span of the key
// they are bound to.
func (b *builder) build(n *unstable.Node, fallback value.Span) (value.Node, error) {
	loc := b.span(n)
	if loc.IsZero() {
		loc = fallback
	}

	switch n.Kind {
	case unstable.String:
		return &value.String{Value: string(n.Data), Loc: loc}, nil
	case unstable.Bool:
		return &value.Boolean{Value: len(n.Data) > 0 && n.Data[0] == 't', Loc: loc}, nil
	case unstable.Integer:
		i, err := parseInteger(string(n.Data))
		if err != nil {
			return nil, b.positioned(loc, err.Error())
		}
		return &value.Integer{Value: i, Loc: loc}, nil
	case unstable.Float:
		f, err := parseFloat(string(n.Data))
		if err != nil {
			return nil, b.positioned(loc, err.Error())
		}
		return &value.Float{Value: f, Loc: loc}, nil
	case unstable.DateTime:
		return &value.DateTime{Text: string(n.Data), Layout: value.OffsetDateTime, Loc: loc}, nil
	case unstable.LocalDateTime:
		return &value.DateTime{Text: string(n.Data), Layout: value.LocalDateTime, Loc: loc}, nil
	case unstable.LocalDate:
		return &value.DateTime{Text: string(n.Data), Layout: value.LocalDate, Loc: loc}, nil
	case unstable.LocalTime:
		return &value.DateTime{Text: string(n.Data), Layout: value.LocalTime, Loc: loc}, nil
	case unstable.Array:
		arr := value.NewArray(loc)
		it := n.Children()
		for it.Next() {
			child, err := b.build(it.Node(), loc)
			if err != nil {
				return nil, err
			}
			arr.Append(child)
		}
		return arr, nil
	case unstable.InlineTable:
		tbl := value.NewTable(loc)
		scope := newScope()
		it := n.Children()
		for it.Next() {
			if err := b.keyValue(tbl, scope, it.Node()); err != nil {
				return nil, err
			}
		}
		return tbl, nil
	}
	return nil, b.positioned(loc, fmt.Sprintf("unsupported value kind %s", n.Kind))
}

func (b *builder) structureError(part keyPart, format string, args ...any) error {
	return b.positioned(part.span, fmt.Sprintf(format, args...))
}

func (b *builder) positioned(loc value.Span, msg string) error {
	return &cerrors.SyntaxError{Message: msg, Line: loc.Start.Line, Column: loc.Start.Column}
}

func parseInteger(s string) (int64, error) {
	i, err := strconv.ParseInt(strings.ReplaceAll(s, "_", ""), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return i, nil
}

func parseFloat(s string) (float64, error) {
	switch strings.TrimLeft(s, "+-") {
	case "inf":
		if strings.HasPrefix(s, "-") {
			return math.Inf(-1), nil
		}
		return math.Inf(1), nil
	case "nan":
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float %q", s)
	}
	return f, nil
}
