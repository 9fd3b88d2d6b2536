// Package testutil exposes the manifest and lockfile fixtures shared by the
// tests of this module.
package testutil

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// TestdataFS holds the embedded test data files.
//
//go:embed testdata
var TestdataFS embed.FS

// ReadTestData reads and returns the content of an embedded test file.
func ReadTestData(name string) ([]byte, error) {
	p := fmt.Sprintf("testdata/%s", name)
	data, err := fs.ReadFile(TestdataFS, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file '%s': %w", name, err)
	}
	return data, nil
}

// Manifests returns the names of all embedded manifest fixtures, sorted.
// Fixtures whose name starts with "bad-" are expected to fail decoding.
func Manifests() []string {
	entries, err := fs.ReadDir(TestdataFS, "testdata")
	if err != nil {
		panic(err)
	}
	var names []string
	for _, e := range entries {
		if path.Ext(e.Name()) == ".toml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// IsInvalid reports whether the fixture name marks an input that must not
// decode.
func IsInvalid(name string) bool {
	return strings.HasPrefix(name, "bad-")
}
