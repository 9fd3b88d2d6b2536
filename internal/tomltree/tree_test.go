package tomltree

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	cerrors "github.com/KimNorgaard/go-cargotoml/errors"
	"github.com/KimNorgaard/go-cargotoml/value"
)

func mustGet(t *testing.T, tbl *value.Table, keys ...string) value.Node {
	t.Helper()
	var n value.Node = tbl
	for _, k := range keys {
		cur, ok := n.(*value.Table)
		require.True(t, ok, "expected table before key %q, got %s", k, n.Kind())
		n, ok = cur.Get(k)
		require.True(t, ok, "missing key %q", k)
	}
	return n
}

func TestParseScalars(t *testing.T) {
	input := `
str = "hello"
lit = 'C:\path'
int = 42
neg = -17
hex = 0xff
oct = 0o17
bin = 0b101
under = 1_000
flt = 3.5
exp = 1e3
inf = -inf
nan = nan
yes = true
no = false
odt = 1979-05-27T07:32:00Z
ldt = 1979-05-27T07:32:00
ld = 1979-05-27
lt = 07:32:00
`
	root, err := Parse([]byte(input))
	require.NoError(t, err)

	require.Equal(t, "hello", mustGet(t, root, "str").(*value.String).Value)
	require.Equal(t, `C:\path`, mustGet(t, root, "lit").(*value.String).Value)
	require.Equal(t, int64(42), mustGet(t, root, "int").(*value.Integer).Value)
	require.Equal(t, int64(-17), mustGet(t, root, "neg").(*value.Integer).Value)
	require.Equal(t, int64(255), mustGet(t, root, "hex").(*value.Integer).Value)
	require.Equal(t, int64(15), mustGet(t, root, "oct").(*value.Integer).Value)
	require.Equal(t, int64(5), mustGet(t, root, "bin").(*value.Integer).Value)
	require.Equal(t, int64(1000), mustGet(t, root, "under").(*value.Integer).Value)
	require.Equal(t, 3.5, mustGet(t, root, "flt").(*value.Float).Value)
	require.Equal(t, 1000.0, mustGet(t, root, "exp").(*value.Float).Value)
	require.True(t, math.IsInf(mustGet(t, root, "inf").(*value.Float).Value, -1))
	require.True(t, math.IsNaN(mustGet(t, root, "nan").(*value.Float).Value))
	require.True(t, mustGet(t, root, "yes").(*value.Boolean).Value)
	require.False(t, mustGet(t, root, "no").(*value.Boolean).Value)

	layouts := map[string]value.Layout{
		"odt": value.OffsetDateTime,
		"ldt": value.LocalDateTime,
		"ld":  value.LocalDate,
		"lt":  value.LocalTime,
	}
	for key, layout := range layouts {
		dt, ok := mustGet(t, root, key).(*value.DateTime)
		require.True(t, ok, key)
		require.Equal(t, layout, dt.Layout, key)
		_, err := dt.Time()
		require.NoError(t, err, key)
	}
}

func TestParseKeepsKeyOrder(t *testing.T) {
	input := `
zeta = 1
alpha = 2

[dependencies]
serde = "1"
anyhow = "1"
aho-corasick = { workspace = true }
`
	root, err := Parse([]byte(input))
	require.NoError(t, err)
	require.Equal(t, []string{"zeta", "alpha", "dependencies"}, root.Keys())

	deps := mustGet(t, root, "dependencies").(*value.Table)
	require.Equal(t, []string{"serde", "anyhow", "aho-corasick"}, deps.Keys())
	inline := mustGet(t, root, "dependencies", "aho-corasick").(*value.Table)
	require.Equal(t, []string{"workspace"}, inline.Keys())
}

func TestParseTablesAndArrays(t *testing.T) {
	input := `
[package]
name = "demo"
metadata.docs.rs.all-features = true

[[bin]]
name = "one"

[[bin]]
name = "two"
required-features = ["a", "b"]

[target.'cfg(unix)'.dependencies]
libc = "0.2"

[profile.release.package]

[profile.release.build-override]
opt-level = 3
`
	root, err := Parse([]byte(input))
	require.NoError(t, err)

	require.Equal(t, true, mustGet(t, root, "package", "metadata", "docs", "rs", "all-features").(*value.Boolean).Value)

	bins := mustGet(t, root, "bin").(*value.Array)
	require.Equal(t, 2, bins.Len())
	second := bins.Elements()[1].(*value.Table)
	require.Equal(t, "two", mustGet(t, second, "name").(*value.String).Value)
	features := mustGet(t, second, "required-features").(*value.Array)
	require.Equal(t, `["a", "b"]`, features.String())

	require.Equal(t, "0.2", mustGet(t, root, "target", "cfg(unix)", "dependencies", "libc").(*value.String).Value)

	empty := mustGet(t, root, "profile", "release", "package").(*value.Table)
	require.Equal(t, 0, empty.Len())
	require.Equal(t, int64(3), mustGet(t, root, "profile", "release", "build-override", "opt-level").(*value.Integer).Value)
}

func TestParseSubTableOfArrayTable(t *testing.T) {
	input := `
[[package]]
name = "a"

[package.metadata]
kind = "first"

[[package]]
name = "b"
`
	root, err := Parse([]byte(input))
	require.NoError(t, err)

	pkgs := mustGet(t, root, "package").(*value.Array)
	require.Equal(t, 2, pkgs.Len())
	first := pkgs.Elements()[0].(*value.Table)
	require.Equal(t, "first", mustGet(t, first, "metadata", "kind").(*value.String).Value)
	second := pkgs.Elements()[1].(*value.Table)
	_, ok := second.Get("metadata")
	require.False(t, ok)
}

func TestParseSpans(t *testing.T) {
	input := "[package]\nname = \"demo\"\n\n[profile.dev]\ndebug = 2\n"
	root, err := Parse([]byte(input))
	require.NoError(t, err)

	pkg := mustGet(t, root, "package")
	require.Equal(t, 1, pkg.Span().Start.Line)
	require.Equal(t, 2, pkg.Span().Start.Column)

	name := mustGet(t, root, "package", "name")
	require.Equal(t, 2, name.Span().Start.Line)

	debug := mustGet(t, root, "profile", "dev", "debug")
	require.Equal(t, 5, debug.Span().Start.Line)
}

func TestParseSyntaxErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		line  int
	}{
		{
			name:  "Unterminated string",
			input: "name = \"demo\n",
			line:  1,
		},
		{
			name:  "Duplicate key",
			input: "[package]\nname = \"a\"\nname = \"b\"\n",
			line:  3,
		},
		{
			name:  "Missing value",
			input: "[package]\nname =\n",
			line:  2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.input))
			require.Error(t, err)

			var se *cerrors.SyntaxError
			require.True(t, errors.As(err, &se), "expected SyntaxError, got %T", err)
			require.NotEmpty(t, se.Message)
			require.Equal(t, tc.line, se.Line)
		})
	}
}

func TestParseRedefinitions(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		message string
		line    int
		column  int
	}{
		{
			name:    "Duplicate key",
			input:   "[package]\nname = \"a\"\nname = \"b\"\n",
			message: "key name is already defined",
			line:    3,
			column:  1,
		},
		{
			name:    "Table opened twice",
			input:   "[a]\nx = 1\n[a]\n",
			message: "table a is already defined",
			line:    3,
			column:  2,
		},
		{
			name:    "Header over a value",
			input:   "x = 1\n[x]\n",
			message: "key x is defined as a value, not a table",
			line:    2,
			column:  2,
		},
		{
			name:    "Dotted key through a value",
			input:   "a = 1\na.b = 2\n",
			message: "key a is defined as a value, not a table",
			line:    2,
			column:  1,
		},
		{
			name:    "Inline table extended",
			input:   "a = { b = 1 }\na.c = 2\n",
			message: "key a is defined as a value, not a table",
			line:    2,
			column:  1,
		},
		{
			name:    "Header over a dotted table",
			input:   "a.b = 1\n[a]\n",
			message: "table a is already defined",
			line:    2,
			column:  2,
		},
		{
			name:    "Dotted key into a header table",
			input:   "[a.b]\nx = 1\n[a]\nb.y = 2\n",
			message: "table b cannot be extended with dotted keys",
			line:    4,
			column:  1,
		},
		{
			name:    "Array of tables over a table",
			input:   "[a]\n[[a]]\n",
			message: "key a is defined as a table, not an array of tables",
			line:    2,
			column:  3,
		},
		{
			name:    "Duplicate key in inline table",
			input:   "a = { b = 1, b = 2 }\n",
			message: "key b is already defined",
			line:    1,
			column:  14,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.input))

			var se *cerrors.SyntaxError
			require.ErrorAs(t, err, &se)
			require.Equal(t, tc.message, se.Message)
			require.Equal(t, tc.line, se.Line)
			require.Equal(t, tc.column, se.Column)
		})
	}
}

func TestParseValidExtensions(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		path  []string
	}{
		{
			name:  "Sub-table under dotted keys",
			input: "[fruit]\napple.color = \"red\"\napple.taste.sweet = true\n[fruit.apple.texture]\nsmooth = true\n",
			path:  []string{"fruit", "apple", "texture", "smooth"},
		},
		{
			name:  "Implicit table opened later",
			input: "[a.b.c]\nx = 1\n[a]\ny = 2\n",
			path:  []string{"a", "y"},
		},
		{
			name:  "Dotted keys in one section",
			input: "[dependencies]\nserde.workspace = true\nserde.features = [\"derive\"]\n",
			path:  []string{"dependencies", "serde", "features"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			root, err := Parse([]byte(tc.input))
			require.NoError(t, err)
			mustGet(t, root, tc.path...)
		})
	}
}

func TestParseArrayTableElementsAreFresh(t *testing.T) {
	input := "[[fruit]]\nname = \"apple\"\n[fruit.physical]\ncolor = \"red\"\n\n" +
		"[[fruit]]\nname = \"banana\"\n[fruit.physical]\ncolor = \"yellow\"\n"
	root, err := Parse([]byte(input))
	require.NoError(t, err)

	fruit, ok := mustGet(t, root, "fruit").(*value.Array)
	require.True(t, ok)
	require.Equal(t, 2, fruit.Len())

	second, ok := fruit.Elements()[1].(*value.Table)
	require.True(t, ok)
	color := mustGet(t, second, "physical", "color").(*value.String)
	require.Equal(t, "yellow", color.Value)
}

func TestLineIndex(t *testing.T) {
	li := newLineIndex([]byte("ab\nçd\n\nx"))

	require.Equal(t, value.Position{Offset: 0, Line: 1, Column: 1}, li.position(0))
	require.Equal(t, value.Position{Offset: 3, Line: 2, Column: 1}, li.position(3))
	// "ç" is two bytes wide but one column.
	require.Equal(t, value.Position{Offset: 5, Line: 2, Column: 2}, li.position(5))
	require.Equal(t, value.Position{Offset: 8, Line: 4, Column: 1}, li.position(8))
}

func TestSubsliceOffset(t *testing.T) {
	data := []byte("hello world")
	off, ok := subsliceOffset(data, data[6:])
	require.True(t, ok)
	require.Equal(t, 6, off)

	off, ok = subsliceOffset(data, data[6:8])
	require.True(t, ok)
	require.Equal(t, 6, off)

	_, ok = subsliceOffset(data, []byte("world"))
	require.False(t, ok)

	_, ok = subsliceOffset(data, nil)
	require.False(t, ok)
}
