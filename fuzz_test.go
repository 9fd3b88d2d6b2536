package cargotoml_test

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-cargotoml"
	"github.com/KimNorgaard/go-cargotoml/internal/testutil"
)

func FuzzParseManifest(f *testing.F) {
	// Seed the corpus with the manifest fixtures. This gives the fuzzer good
	// starting points for valid syntax.
	for _, name := range testutil.Manifests() {
		data, err := testutil.ReadTestData(name)
		if err != nil {
			f.Fatalf("failed to read seed file %s: %v", name, err)
		}
		f.Add(data)
	}

	// Add some simple but important edge cases manually.
	f.Add([]byte(""))
	f.Add([]byte("[package]"))
	f.Add([]byte("[dependencies]\nx = {}"))
	f.Add([]byte("[profile.dev]\ndebug = 2"))
	f.Add([]byte("[[bin]]\n[[bin]]"))

	exportAll := cmp.Exporter(func(reflect.Type) bool { return true })

	f.Fuzz(func(t *testing.T, data []byte) {
		// Invalid input is expected; the fuzz engine detects panics on its own.
		m1, err := cargotoml.ParseManifest(data)
		if err != nil {
			require.Nil(t, m1)
			return
		}

		// Decoding the same bytes again must yield the same model.
		m2, err := cargotoml.ParseManifest(data)
		require.NoError(t, err)
		require.Empty(t, cmp.Diff(m1, m2, exportAll, cmpopts.EquateNaNs()))
	})
}

func FuzzParseLockfile(f *testing.F) {
	data, err := testutil.ReadTestData("Cargo.lock")
	if err != nil {
		f.Fatalf("failed to read seed file: %v", err)
	}
	f.Add(data)
	f.Add([]byte(lockV3))
	f.Add([]byte("version = 4"))

	f.Fuzz(func(t *testing.T, data []byte) {
		lock, err := cargotoml.ParseLockfile(data)
		if err != nil {
			return
		}
		require.NotNil(t, lock.Packages)
		for _, p := range lock.Packages {
			require.NotNil(t, p.Dependencies)
		}
	})
}
