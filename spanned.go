package cargotoml

import (
	"reflect"

	"github.com/KimNorgaard/go-cargotoml/value"
)

// Spanned wraps a decoded value together with the source span it was read
// from.
type Spanned[T any] struct {
	Value T
	Span  value.Span
}

// Get returns the wrapped value.
func (s Spanned[T]) Get() T { return s.Value }

func (s *Spanned[T]) setSpan(sp value.Span) { s.Span = sp }

// spanSetter is implemented by *Spanned[T] for every T.
type spanSetter interface {
	setSpan(value.Span)
}

var spanSetterType = reflect.TypeOf((*spanSetter)(nil)).Elem()

func isSpanned(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && reflect.PointerTo(t).Implements(spanSetterType)
}
