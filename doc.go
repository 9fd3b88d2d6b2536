/*
Package cargotoml decodes Cargo.toml manifests and Cargo.lock lockfiles into
typed Go values.

Decoding happens in two steps. The TOML text is first parsed into a generic
value tree (see package value), which records where every node came from.
The tree is then mapped onto a Go type by a reflection-based decoder that
checks every key and every scalar against the target shape and reports
failures with the key path and source position.

Example of reading a manifest:

	m, err := cargotoml.ReadManifest("Cargo.toml")
	if err != nil {
		// handle error
	}
	if m.Package != nil && m.Package.Name != nil {
		fmt.Println(m.Package.Name.Value)
	}

The decoder is not tied to the Cargo model. Unmarshal and Decode accept any
struct:

	type Config struct {
		Name    string
		Retries uint8 `cargo:"max-retries"`
	}

	var cfg Config
	err := cargotoml.Unmarshal([]byte("name = \"x\"\nmax-retries = 3"), &cfg)

Keys are taken from the `cargo` struct tag, or rendered from the field name
in kebab-case (DevDependencies is looked up as "dev-dependencies"). A tag of
"-" skips the field. Pointer, slice, map and interface fields are optional;
every other field must be present.

Integers are converted to the field's integer type only when the value fits
exactly. Strings, booleans and numbers are never converted into each other.

A struct whose first field is the blank marker `_ Untagged` is an untagged
union: its remaining pointer fields are tried in declaration order and the
first one that decodes is kept. A blank `_ Closed` field rejects unknown
keys. Wrapping a field type in Spanned records the source span of the value.

Decoding either succeeds completely or leaves the target untouched.
*/
package cargotoml
