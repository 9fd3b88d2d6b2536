package value

import "fmt"

// Position is a location in the source document. Line and Column are
// 1-based; Column counts runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open source range [Start, End).
type Span struct {
	Start Position
	End   Position
}

// IsZero reports whether the span carries no location.
func (s Span) IsZero() bool {
	return s.Start.Line == 0
}

func (s Span) String() string {
	if s.IsZero() {
		return "unknown location"
	}
	return fmt.Sprintf("line %d, column %d", s.Start.Line, s.Start.Column)
}
