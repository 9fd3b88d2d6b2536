package cargotoml

import (
	"reflect"

	"github.com/KimNorgaard/go-cargotoml/value"
)

// coerceInteger converts v to the integer type t. It reports false when v
// is not exactly representable in t; values are never truncated.
func coerceInteger(v int64, t reflect.Type) (reflect.Value, bool) {
	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if out.OverflowInt(v) {
			return out, false
		}
		out.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v < 0 || out.OverflowUint(uint64(v)) {
			return out, false
		}
		out.SetUint(uint64(v))
	default:
		return out, false
	}
	return out, true
}

func isSigned(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func (ds *decodeState) decodeInteger(n value.Node, rv reflect.Value) error {
	i, ok := n.(*value.Integer)
	if !ok {
		return ds.mismatch("integer", n)
	}
	out, ok := coerceInteger(i.Value, rv.Type())
	if !ok {
		return &IntegerOutOfRangeError{
			Path:   ds.pathString(),
			Value:  i.Value,
			Target: rv.Kind().String(),
			Bits:   rv.Type().Bits(),
			Signed: isSigned(rv.Kind()),
			Span:   n.Span(),
		}
	}
	rv.Set(out)
	return nil
}

// decodeFloat accepts float nodes only; integers are not widened.
func (ds *decodeState) decodeFloat(n value.Node, rv reflect.Value) error {
	f, ok := n.(*value.Float)
	if !ok {
		return ds.mismatch("float", n)
	}
	if rv.OverflowFloat(f.Value) {
		return &FloatOutOfRangeError{
			Path:   ds.pathString(),
			Value:  f.Value,
			Target: rv.Kind().String(),
			Span:   n.Span(),
		}
	}
	rv.SetFloat(f.Value)
	return nil
}
