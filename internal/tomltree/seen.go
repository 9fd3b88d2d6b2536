package tomltree

// keyKind is what a key was defined as.
type keyKind uint8

const (
	tableKind keyKind = iota
	valueKind
	arrayTableKind
)

func (k keyKind) String() string {
	switch k {
	case tableKind:
		return "a table"
	case valueKind:
		return "a value"
	case arrayTableKind:
		return "an array of tables"
	}
	return "an unknown kind"
}

// seenEntry records how a key of the document was introduced, so that
// redefinitions can be reported at the offending key. An inline table or
// an array value is a single valueKind entry: its contents are checked in
// a scope of their own and can never be extended.
type seenEntry struct {
	kind keyKind
	// explicit is set for tables opened by a header and for tables created
	// by dotted keys once their section has been closed.
	explicit bool
	// dotted marks tables created by dotted keys in the current section.
	dotted   bool
	children map[string]*seenEntry
}

func newScope() *seenEntry {
	return &seenEntry{kind: tableKind}
}

func (e *seenEntry) child(name string) *seenEntry {
	return e.children[name]
}

func (e *seenEntry) add(name string, kind keyKind, explicit, dotted bool) *seenEntry {
	c := &seenEntry{kind: kind, explicit: explicit, dotted: dotted}
	if e.children == nil {
		e.children = make(map[string]*seenEntry)
	}
	e.children[name] = c
	return c
}

// close freezes the tables created by dotted keys below e.
func (e *seenEntry) close() {
	for _, c := range e.children {
		if c.dotted {
			c.explicit = true
			c.dotted = false
		}
		c.close()
	}
}

// reset forgets the keys of an array-of-tables element when the next
// element is opened.
func (e *seenEntry) reset() {
	e.children = nil
}
