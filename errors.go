package cargotoml

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/KimNorgaard/go-cargotoml/value"
)

// ErrMaxDepth is returned when tables and arrays nest deeper than the
// configured maximum depth.
var ErrMaxDepth = errors.New("cargotoml: reached max nesting depth")

// An IOError reports a failure to read a manifest or lockfile from disk.
// The operating system error is kept as text only.
type IOError struct {
	Path    string
	Message string
}

func (e *IOError) Error() string {
	return "cargotoml: failed to read " + e.Path + ": " + e.Message
}

// A ParseError reports a document that could not be turned into the target
// model. Err is either a *errors.SyntaxError from the TOML layer or one of
// the decode errors of this package.
type ParseError struct {
	Filename string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Filename != "" {
		return "cargotoml: parse error: " + e.Filename + ": " + e.Err.Error()
	}
	return "cargotoml: parse error: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// A MissingFieldError reports a required key absent from its table.
type MissingFieldError struct {
	Path  string // key path of the enclosing table
	Field string
	Shape string
	Span  value.Span
}

func (e *MissingFieldError) Error() string {
	return located(e.Path, e.Span, fmt.Sprintf("missing field `%s` in %s", e.Field, e.Shape))
}

// An UnknownFieldError reports a key that a closed table does not declare.
type UnknownFieldError struct {
	Path  string // key path of the enclosing table
	Field string
	Shape string
	Span  value.Span
}

func (e *UnknownFieldError) Error() string {
	return located(e.Path, e.Span, fmt.Sprintf("unknown field `%s` in %s", e.Field, e.Shape))
}

// A TypeMismatchError reports a node whose kind does not fit the target.
type TypeMismatchError struct {
	Path     string
	Expected string
	Found    string
	Span     value.Span
}

func (e *TypeMismatchError) Error() string {
	return located(e.Path, e.Span, fmt.Sprintf("invalid type: expected %s, found %s", e.Expected, e.Found))
}

// An IntegerOutOfRangeError reports an integer that the target integer type
// cannot represent exactly.
type IntegerOutOfRangeError struct {
	Path   string
	Value  int64
	Target string // Go kind of the target, e.g. "uint8"
	Bits   int
	Signed bool
	Span   value.Span
}

func (e *IntegerOutOfRangeError) Error() string {
	return located(e.Path, e.Span, fmt.Sprintf("integer %d out of range for %s", e.Value, e.Target))
}

// A FloatOutOfRangeError reports a float that overflows a float32 target.
type FloatOutOfRangeError struct {
	Path   string
	Value  float64
	Target string
	Span   value.Span
}

func (e *FloatOutOfRangeError) Error() string {
	return located(e.Path, e.Span, fmt.Sprintf("float %g out of range for %s", e.Value, e.Target))
}

// A VariantAttempt records why one variant of an untagged union did not
// match.
type VariantAttempt struct {
	Variant string
	Err     error
}

// A NoMatchingVariantError reports a node that matched none of the variants
// of an untagged union. Attempts keeps every failure in declaration order.
type NoMatchingVariantError struct {
	Path     string
	Shape    string
	Attempts []VariantAttempt
	Span     value.Span
}

func (e *NoMatchingVariantError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "data did not match any variant of %s", e.Shape)
	for i, a := range e.Attempts {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		msg := a.Err.Error()
		if e.Path != "" {
			msg = strings.TrimPrefix(msg, e.Path+": ")
		}
		b.WriteString(a.Variant + " (" + msg + ")")
	}
	return located(e.Path, e.Span, b.String())
}

// An UnknownVariantError reports a string that names none of the variants
// of an enumerated type.
type UnknownVariantError struct {
	Path     string
	Value    string
	Shape    string
	Expected []string
	Span     value.Span
}

func (e *UnknownVariantError) Error() string {
	quoted := make([]string, len(e.Expected))
	for i, v := range e.Expected {
		quoted[i] = "`" + v + "`"
	}
	return located(e.Path, e.Span, fmt.Sprintf("unknown variant `%s` for %s, expected one of %s",
		e.Value, e.Shape, strings.Join(quoted, ", ")))
}

// An UnsupportedTypeError is returned when the decode target contains a Go
// type the decoder cannot fill.
type UnsupportedTypeError struct {
	Path string
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return located(e.Path, value.Span{}, "cannot decode into Go value of type "+e.Type.String())
}

// An UnmarshalerError represents an error from calling an UnmarshalTOMLValue
// or UnmarshalText method.
type UnmarshalerError struct {
	Path string
	Type reflect.Type
	Err  error
}

func (e *UnmarshalerError) Error() string {
	return located(e.Path, value.Span{}, "error calling unmarshaler for type "+e.Type.String()+": "+e.Err.Error())
}

func (e *UnmarshalerError) Unwrap() error { return e.Err }

func located(path string, span value.Span, msg string) string {
	if !span.IsZero() {
		msg += " at " + span.String()
	}
	if path != "" {
		return path + ": " + msg
	}
	return msg
}
