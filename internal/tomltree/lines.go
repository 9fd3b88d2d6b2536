package tomltree

import (
	"sort"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2/unstable"

	"github.com/KimNorgaard/go-cargotoml/value"
)

// lineIndex maps byte offsets to line and column numbers.
type lineIndex struct {
	data   []byte
	starts []int // byte offset of the first byte of every line
}

func newLineIndex(data []byte) lineIndex {
	starts := []int{0}
	for i, c := range data {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return lineIndex{data: data, starts: starts}
}

func (li lineIndex) position(offset int) value.Position {
	if offset > len(li.data) {
		offset = len(li.data)
	}
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
	start := li.starts[line]
	return value.Position{
		Offset: offset,
		Line:   line + 1,
		Column: utf8.RuneCount(li.data[start:offset]) + 1,
	}
}

// span locates n in the source. Nodes whose raw range is unset fall back
// to their data slice when it points into the source buffer.
func (b *builder) span(n *unstable.Node) value.Span {
	offset, length, ok := b.rawRange(n)
	if !ok {
		return value.Span{}
	}
	return value.Span{
		Start: b.lines.position(offset),
		End:   b.lines.position(offset + length),
	}
}

func (b *builder) rawRange(n *unstable.Node) (int, int, bool) {
	if n.Raw.Length > 0 {
		return int(n.Raw.Offset), int(n.Raw.Length), true
	}
	if off, ok := subsliceOffset(b.data, n.Data); ok {
		return off, len(n.Data), true
	}
	return 0, 0, false
}

// subsliceOffset reports the offset of sub inside data when sub shares
// data's backing array. Both slices reach the end of the same array, so
// their last addressable elements coincide.
func subsliceOffset(data, sub []byte) (int, bool) {
	if cap(sub) == 0 || cap(data) == 0 || cap(sub) > cap(data) {
		return 0, false
	}
	d := data[:cap(data)]
	s := sub[:cap(sub)]
	if &d[len(d)-1] != &s[len(s)-1] {
		return 0, false
	}
	return cap(data) - cap(sub), true
}
