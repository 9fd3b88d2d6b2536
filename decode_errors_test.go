package cargotoml_test

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-cargotoml"
	cerrors "github.com/KimNorgaard/go-cargotoml/errors"
	"github.com/KimNorgaard/go-cargotoml/value"
)

func at(line, col int) value.Span {
	return value.Span{
		Start: value.Position{Line: line, Column: col},
		End:   value.Position{Line: line, Column: col + 1},
	}
}

func table(loc value.Span, kv ...any) *value.Table {
	t := value.NewTable(loc)
	for i := 0; i < len(kv); i += 2 {
		t.Set(kv[i].(string), kv[i+1].(value.Node))
	}
	return t
}

func TestDecode_ErrorMessages(t *testing.T) {
	type bin struct{ Name string }
	type pkg struct {
		Name    string
		Edition *cargotoml.Spanned[cargotoml.Edition]
	}
	type manifest struct {
		Package pkg
		Bin     []bin
		Target  map[string]struct{ Dependencies map[string]cargotoml.Dependency }
	}
	validPackage := table(at(1, 1), "name", &value.String{Value: "demo", Loc: at(2, 8)})

	testCases := []struct {
		name        string
		root        *value.Table
		expectedErr string
	}{
		{
			name:        "Missing field",
			root:        table(value.Span{}, "package", table(at(1, 2))),
			expectedErr: "package: missing field `name` in pkg at line 1, column 2",
		},
		{
			name: "Type mismatch in array element",
			root: table(value.Span{},
				"package", validPackage,
				"bin", value.NewArray(at(4, 3),
					table(at(4, 3), "name", &value.String{Value: "ok"}),
					table(at(7, 3), "name", &value.Integer{Value: 42, Loc: at(8, 8)}),
				),
			),
			expectedErr: "bin[1].name: invalid type: expected string, found integer at line 8, column 8",
		},
		{
			name: "Unknown enum variant",
			root: table(value.Span{},
				"package", table(at(1, 1),
					"name", &value.String{Value: "demo"},
					"edition", &value.String{Value: "2019", Loc: at(3, 11)},
				),
			),
			expectedErr: "package.edition: unknown variant `2019` for Edition, expected one of `2015`, `2018`, `2021`, `2024` at line 3, column 11",
		},
		{
			name: "Quoted path segment",
			root: table(value.Span{},
				"package", validPackage,
				"target", table(value.Span{},
					"cfg(unix)", table(value.Span{},
						"dependencies", table(value.Span{},
							"libc", &value.Integer{Value: 2, Loc: at(6, 8)},
						),
					),
				),
			),
			expectedErr: `target."cfg(unix)".dependencies.libc: data did not match any variant of Dependency: ` +
				"Version (invalid type: expected string, found integer at line 6, column 8); " +
				"Workspace (invalid type: expected table, found integer at line 6, column 8); " +
				"Detailed (invalid type: expected table, found integer at line 6, column 8) at line 6, column 8",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var v manifest
			err := cargotoml.Decode(tc.root, &v)
			require.EqualError(t, err, tc.expectedErr)
		})
	}
}

func TestUnmarshal_ErrorTaxonomy(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		check func(t *testing.T, err error)
	}{
		{
			name:  "Syntax error",
			input: "[package]\nname = \"broken\n",
			check: func(t *testing.T, err error) {
				var syntax *cerrors.SyntaxError
				require.ErrorAs(t, err, &syntax)
				require.Equal(t, 2, syntax.Line)
			},
		},
		{
			name:  "Duplicate key",
			input: "[package]\nname = \"a\"\nname = \"b\"\n",
			check: func(t *testing.T, err error) {
				var syntax *cerrors.SyntaxError
				require.ErrorAs(t, err, &syntax)
				require.Equal(t, 3, syntax.Line)
				require.Equal(t, 1, syntax.Column)
				require.Equal(t, "key name is already defined", syntax.Message)
				require.EqualError(t, err, "cargotoml: parse error: line 3, column 1: key name is already defined")
			},
		},
		{
			name:  "Typo next to workspace marker",
			input: "[dependencies]\nserde = { workspace = true, featurs = [] }\n",
			check: func(t *testing.T, err error) {
				require.NoError(t, err, "a typo next to the marker falls through to the detailed form")
			},
		},
		{
			name:  "Missing lint level",
			input: "[lints.rust]\nunsafe_code = { priority = 1 }\n",
			check: func(t *testing.T, err error) {
				var noMatch *cargotoml.NoMatchingVariantError
				require.ErrorAs(t, err, &noMatch)
				require.Equal(t, "lints.rust.unsafe_code", noMatch.Path)
				require.Equal(t, "LintLevel", noMatch.Shape)

				var missing *cargotoml.MissingFieldError
				require.ErrorAs(t, noMatch.Attempts[0].Err, &missing)
				require.Equal(t, "level", missing.Field)
				require.Equal(t, "LintConfig", missing.Shape)
			},
		},
		{
			name:  "Out of range codegen units",
			input: "[profile.release]\ncodegen-units = -4\n",
			check: func(t *testing.T, err error) {
				var rangeErr *cargotoml.IntegerOutOfRangeError
				require.ErrorAs(t, err, &rangeErr)
				require.Equal(t, "profile.release.codegen-units", rangeErr.Path)
				require.Equal(t, int64(-4), rangeErr.Value)
				require.Equal(t, "uint32", rangeErr.Target)
				require.Equal(t, 32, rangeErr.Bits)
				require.False(t, rangeErr.Signed)
			},
		},
		{
			name:  "Unknown panic strategy",
			input: "[profile.release]\npanic = \"explode\"\n",
			check: func(t *testing.T, err error) {
				var unknown *cargotoml.UnknownVariantError
				require.ErrorAs(t, err, &unknown)
				require.Equal(t, "explode", unknown.Value)
				require.Equal(t, "PanicStrategy", unknown.Shape)
				require.Equal(t, []string{"unwind", "abort", "immediate-abort"}, unknown.Expected)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := cargotoml.ParseManifest([]byte(tc.input))
			if err != nil {
				var parseErr *cargotoml.ParseError
				require.ErrorAs(t, err, &parseErr)
			}
			tc.check(t, err)
		})
	}
}

func TestReadManifest_Errors(t *testing.T) {
	t.Run("Missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "Cargo.toml")
		_, err := cargotoml.ReadManifest(path)

		var ioErr *cargotoml.IOError
		require.ErrorAs(t, err, &ioErr)
		require.Equal(t, path, ioErr.Path)
		require.Contains(t, ioErr.Message, "no such file or directory")
		require.Nil(t, errors.Unwrap(ioErr))
		require.False(t, errors.Is(err, fs.ErrNotExist))
		require.Contains(t, err.Error(), "cargotoml: failed to read "+path)
	})

	t.Run("Parse error names the file", func(t *testing.T) {
		path := writeFile(t, "Cargo.toml", "[package]\nname = 1\n")
		_, err := cargotoml.ReadManifest(path)

		var parseErr *cargotoml.ParseError
		require.ErrorAs(t, err, &parseErr)
		require.Equal(t, path, parseErr.Filename)
		require.Contains(t, err.Error(), "cargotoml: parse error: "+path+": package.name: invalid type: expected string, found integer")
	})
}
