package cargotoml

import "fmt"

const defaultMaxDepth = 1000

// Option configures decoding.
type Option func(*options) error

type options struct {
	maxDepth int
	strict   bool
	filename string
}

func newOptions(opts []Option) (*options, error) {
	o := &options{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// MaxDepth returns an Option that sets the maximum nesting depth of tables
// and arrays, counting the root table, that the decoder accepts. Deeper
// documents fail with ErrMaxDepth.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("cargotoml: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}

// DisallowUnknownFields returns an Option that makes every struct behave as
// a closed table: a key that no field declares fails the decode with an
// UnknownFieldError. Maps and values decoded into interfaces are not
// affected.
func DisallowUnknownFields() Option {
	return func(o *options) error {
		o.strict = true
		return nil
	}
}

// Filename returns an Option that names the source document in parse
// errors. The path-based entry points set it automatically.
func Filename(name string) Option {
	return func(o *options) error {
		o.filename = name
		return nil
	}
}
