package cargotoml

import (
	"os"

	"github.com/KimNorgaard/go-cargotoml/internal/tomltree"
)

// ParseManifest decodes the contents of a Cargo.toml.
func ParseManifest(data []byte, opts ...Option) (*Manifest, error) {
	var m Manifest
	if err := Unmarshal(data, &m, opts...); err != nil {
		return nil, err
	}
	return &m, nil
}

// ReadManifest reads and decodes the Cargo.toml at path.
func ReadManifest(path string, opts ...Option) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Message: err.Error()}
	}
	return ParseManifest(data, append([]Option{Filename(path)}, opts...)...)
}

// ParseLockfile decodes the contents of a Cargo.lock. A missing version key
// means format version 3.
func ParseLockfile(data []byte, opts ...Option) (*Lockfile, error) {
	var raw rawLockfile
	if err := Unmarshal(data, &raw, opts...); err != nil {
		return nil, err
	}
	return raw.lockfile(), nil
}

// ReadLockfile reads and decodes the Cargo.lock at path.
func ReadLockfile(path string, opts ...Option) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Message: err.Error()}
	}
	return ParseLockfile(data, append([]Option{Filename(path)}, opts...)...)
}

// Unmarshal parses the TOML-encoded data and stores the result in the value
// pointed to by v. Syntax and decode errors are returned as a *ParseError.
func Unmarshal(data []byte, v any, opts ...Option) error {
	o, err := newOptions(opts)
	if err != nil {
		return err
	}

	root, err := tomltree.Parse(data)
	if err != nil {
		return &ParseError{Filename: o.filename, Err: err}
	}
	if err := decodeNode(root, v, o); err != nil {
		return &ParseError{Filename: o.filename, Err: err}
	}
	return nil
}
