package cargotoml

import (
	"errors"
	"reflect"

	"github.com/KimNorgaard/go-cargotoml/value"
)

// decodeUnion resolves an untagged union. Variants are tried in declaration
// order and the first one that decodes wins. Every attempt decodes into a
// fresh value, so a partial match never leaks into the next attempt or into
// the result.
func (ds *decodeState) decodeUnion(n value.Node, rv reflect.Value) error {
	u := cachedUnion(rv.Type())
	attempts := make([]VariantAttempt, 0, len(u.variants))
	for _, v := range u.variants {
		trial := reflect.New(v.typ)
		err := ds.decodeValue(n, trial.Elem())
		if err == nil {
			out := reflect.New(rv.Type()).Elem()
			out.FieldByIndex(v.idx).Set(trial)
			rv.Set(out)
			return nil
		}
		if errors.Is(err, ErrMaxDepth) {
			return err
		}
		attempts = append(attempts, VariantAttempt{Variant: v.name, Err: err})
	}
	return &NoMatchingVariantError{
		Path:     ds.pathString(),
		Shape:    u.name,
		Attempts: attempts,
		Span:     n.Span(),
	}
}
